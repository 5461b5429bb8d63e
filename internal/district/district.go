// Package district holds the static reference data for the six districts:
// descriptors (name, map viewport, taluka list), the per-district scale
// factor table, and the taluka color palette.
//
// Descriptors are loaded once from the districts reference file and are
// read-only for the lifetime of the process.
package district

import (
	"encoding/json"
	"fmt"
	"os"
)

// CanonicalSlug is the district whose datasets are authored directly.
// Every other district's data is a scaled derivative of it.
const CanonicalSlug = "ahilyanagar"

// Taluka is a sub-district unit, the finest selectable geography.
type Taluka struct {
	Name string  `json:"name"`
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
}

// Info describes one district.
type Info struct {
	Slug    string     `json:"slug"`
	Name    string     `json:"name"`
	Center  [2]float64 `json:"center"` // [lng, lat]
	Zoom    float64    `json:"zoom"`
	Talukas []Taluka   `json:"talukas"`
}

// scaleFactors maps district slug to its magnitude relative to the canonical
// district. Unknown slugs fall back to defaultScale.
var scaleFactors = map[string]float64{
	"ahilyanagar": 1.0,
	"akola":       0.55,
	"amravati":    0.75,
	"beed":        0.65,
	"bhandara":    0.40,
	"dhule":       0.45,
}

const defaultScale = 0.5

// ScaleFactor returns the scale factor for a district slug.
func ScaleFactor(slug string) float64 {
	if f, ok := scaleFactors[slug]; ok {
		return f
	}
	return defaultScale
}

// KnownScale reports whether slug has an explicit entry in the factor table.
func KnownScale(slug string) bool {
	_, ok := scaleFactors[slug]
	return ok
}

// TalukaColors is the palette cycled across rebuilt taluka lists.
var TalukaColors = []string{
	"#2c699a", "#008450", "#cf5c36", "#3c4e6a", "#d4af37",
	"#10b981", "#e07b39", "#dc2626", "#7c3aed", "#0891b2",
	"#65a30d", "#c026d3", "#ea580c", "#0d9488",
}

// TalukaColor returns the palette color for taluka index i.
func TalukaColor(i int) string {
	return TalukaColors[i%len(TalukaColors)]
}

// Registry resolves district slugs to descriptors. Unknown slugs resolve to
// the canonical district so callers always get something renderable.
type Registry struct {
	districts []Info
	bySlug    map[string]Info
	canonical string
}

// NewRegistry builds a registry from an ordered district list. The canonical
// district is CanonicalSlug when present, otherwise the first entry.
func NewRegistry(districts []Info) (*Registry, error) {
	if len(districts) == 0 {
		return nil, fmt.Errorf("district list is empty")
	}
	bySlug := make(map[string]Info, len(districts))
	for _, d := range districts {
		if d.Slug == "" {
			return nil, fmt.Errorf("district %q has no slug", d.Name)
		}
		if _, dup := bySlug[d.Slug]; dup {
			return nil, fmt.Errorf("duplicate district slug %q", d.Slug)
		}
		bySlug[d.Slug] = d
	}
	canonical := districts[0].Slug
	if _, ok := bySlug[CanonicalSlug]; ok {
		canonical = CanonicalSlug
	}
	return &Registry{districts: districts, bySlug: bySlug, canonical: canonical}, nil
}

// Load reads the district reference file ({"districts": [...]}) and builds a
// registry from it.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read districts file: %w", err)
	}
	var doc struct {
		Districts []Info `json:"districts"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse districts file %s: %w", path, err)
	}
	return NewRegistry(doc.Districts)
}

// All returns the districts in file order.
func (r *Registry) All() []Info { return r.districts }

// Canonical returns the canonical district's slug.
func (r *Registry) Canonical() string { return r.canonical }

// Get resolves a slug, falling back to the canonical district when unknown.
func (r *Registry) Get(slug string) Info {
	if d, ok := r.bySlug[slug]; ok {
		return d
	}
	return r.bySlug[r.canonical]
}

// Has reports whether slug names a known district.
func (r *Registry) Has(slug string) bool {
	_, ok := r.bySlug[slug]
	return ok
}
