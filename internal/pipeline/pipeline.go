// Package pipeline drives the batch synthesis of per-district sector files:
// every (sector, district) pair gets one output document, either a verbatim
// copy of the canonical template or a deterministically scaled variant.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sahyadri-labs/distdash/internal/district"
	"github.com/sahyadri-labs/distdash/internal/sector"
	"github.com/sahyadri-labs/distdash/internal/transform"
)

// Config holds the pipeline inputs and output location.
type Config struct {
	// DataDir contains one canonical template per sector ({sector}.json).
	DataDir string

	// OutDir receives the generated {sector}--{slug}.json documents.
	// Defaults to DataDir, matching the dashboard's static data layout.
	OutDir string

	// DistrictsFile is the district reference file.
	DistrictsFile string

	// Sectors restricts the run to a subset; empty means all eleven.
	Sectors []sector.Key

	// Districts restricts the run to a subset of slugs; empty means all.
	Districts []string

	// Workers bounds optional parallelism across (sector, district) units.
	// Zero or one runs sequentially. Output is identical either way: every
	// random draw is seeded from unit identity, never from execution order.
	Workers int

	// Logger receives progress and skip diagnostics. Nil discards.
	Logger *slog.Logger
}

// Result summarizes one pipeline run.
type Result struct {
	ID      string // unique run identifier, for log correlation
	Written []Output
	Skipped []sector.Key // sectors whose template file was missing
}

// Output describes one generated document.
type Output struct {
	Sector   sector.Key
	District string
	Path     string
	Scaled   bool // false for the canonical district's verbatim copy
}

// Runner executes the synthesis pipeline.
type Runner struct {
	cfg Config
	reg *district.Registry
	log *slog.Logger
}

// New loads the district registry and prepares a runner.
func New(cfg Config) (*Runner, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = cfg.DataDir
	}
	if cfg.DistrictsFile == "" {
		cfg.DistrictsFile = filepath.Join(cfg.DataDir, "districts.json")
	}
	if len(cfg.Sectors) == 0 {
		cfg.Sectors = sector.Keys
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	reg, err := district.Load(cfg.DistrictsFile)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, reg: reg, log: log}, nil
}

// Registry exposes the loaded district registry.
func (r *Runner) Registry() *district.Registry { return r.reg }

// Run produces every (sector, district) output document. A missing template
// skips that sector with a warning; the rest of the run continues. Re-running
// with unchanged inputs reproduces identical bytes.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := os.MkdirAll(r.cfg.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	templates := make(map[sector.Key]sector.Document, len(r.cfg.Sectors))
	res := &Result{ID: uuid.NewString()}
	for _, key := range r.cfg.Sectors {
		path := filepath.Join(r.cfg.DataDir, string(key)+".json")
		doc, err := sector.ReadDocument(path)
		if err != nil {
			if os.IsNotExist(err) {
				r.log.Warn("template not found, skipping sector", "sector", key, "path", path)
				res.Skipped = append(res.Skipped, key)
				continue
			}
			return nil, fmt.Errorf("load template %s: %w", key, err)
		}
		templates[key] = doc
	}

	districts := r.selectedDistricts()

	type unit struct {
		d   district.Info
		key sector.Key
	}
	var units []unit
	for _, d := range districts {
		for _, key := range r.cfg.Sectors {
			if _, ok := templates[key]; ok {
				units = append(units, unit{d, key})
			}
		}
	}

	var mu sync.Mutex
	run := func(u unit) error {
		out, err := r.generate(templates[u.key], u.d, u.key)
		if err != nil {
			return err
		}
		mu.Lock()
		res.Written = append(res.Written, out)
		mu.Unlock()
		return nil
	}

	if r.cfg.Workers > 1 {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(r.cfg.Workers)
		for _, u := range units {
			u := u
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return run(u)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for _, u := range units {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := run(u); err != nil {
				return nil, err
			}
		}
	}

	r.log.Info("pipeline run complete",
		"run_id", res.ID,
		"written", len(res.Written),
		"skipped_sectors", len(res.Skipped),
		"districts", len(districts))
	return res, nil
}

// generate writes the output document for one (sector, district) unit. The
// canonical district gets a structural copy of the template; every other
// district gets the scaled transform.
func (r *Runner) generate(template sector.Document, d district.Info, key sector.Key) (Output, error) {
	scaled := d.Slug != r.reg.Canonical()
	doc := template.Clone()
	if scaled {
		doc = transform.Apply(template, d, key)
	}

	path := filepath.Join(r.cfg.OutDir, fmt.Sprintf("%s--%s.json", key, d.Slug))
	if err := sector.WriteDocument(path, doc); err != nil {
		return Output{}, fmt.Errorf("write %s: %w", path, err)
	}

	r.log.Debug("generated district dataset",
		"sector", key, "district", d.Slug,
		"scaled", scaled, "factor", district.ScaleFactor(d.Slug))
	return Output{Sector: key, District: d.Slug, Path: path, Scaled: scaled}, nil
}

func (r *Runner) selectedDistricts() []district.Info {
	all := r.reg.All()
	if len(r.cfg.Districts) == 0 {
		return all
	}
	want := make(map[string]bool, len(r.cfg.Districts))
	for _, slug := range r.cfg.Districts {
		want[slug] = true
	}
	var out []district.Info
	for _, d := range all {
		if want[d.Slug] {
			out = append(out, d)
		}
	}
	return out
}
