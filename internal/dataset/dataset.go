// Package dataset resolves (sector, district) pairs to their generated
// documents. Documents are loaded once and treated as immutable reference
// data; unknown districts silently resolve to the canonical district so the
// dashboard always has something to render.
package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahyadri-labs/distdash/internal/sector"
)

// Store holds every generated document keyed by sector and district slug.
type Store struct {
	docs      map[sector.Key]map[string]sector.Document
	canonical string
}

// Load scans dir for generated {sector}--{slug}.json documents. Files that do
// not match the naming convention or name an unknown sector are ignored, so
// templates and unrelated files can share the directory.
func Load(dir, canonicalSlug string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dataset directory: %w", err)
	}

	s := &Store{
		docs:      make(map[sector.Key]map[string]sector.Document),
		canonical: canonicalSlug,
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ".json")
		key, slug, ok := strings.Cut(base, "--")
		if !ok || slug == "" {
			continue
		}
		sk := sector.Key(key)
		if !sk.Valid() {
			logger.Warn("ignoring file with unknown sector", "file", e.Name())
			continue
		}
		doc, err := sector.ReadDocument(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", e.Name(), err)
		}
		if s.docs[sk] == nil {
			s.docs[sk] = make(map[string]sector.Document)
		}
		s.docs[sk][slug] = doc
	}
	logger.Debug("dataset store loaded", "sectors", len(s.docs))
	return s, nil
}

// Resolve returns the dataset for a sector and district slug. Unknown sector:
// nil (nothing to render). Unknown district: the canonical district's dataset
// for that sector. Callers must not mutate the returned document.
func (s *Store) Resolve(key sector.Key, slug string) sector.Document {
	byDistrict, ok := s.docs[key]
	if !ok {
		return nil
	}
	if doc, ok := byDistrict[slug]; ok {
		return doc
	}
	return byDistrict[s.canonical]
}

// Sectors returns the sector keys present in the store, sorted.
func (s *Store) Sectors() []sector.Key {
	out := make([]sector.Key, 0, len(s.docs))
	for k := range s.docs {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Districts returns the district slugs present for a sector, sorted.
func (s *Store) Districts(key sector.Key) []string {
	byDistrict := s.docs[key]
	out := make([]string, 0, len(byDistrict))
	for slug := range byDistrict {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}
