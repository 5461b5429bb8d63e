// Package transform applies the per-sector scaling rules that turn a
// canonical sector template into a derived district variant.
//
// The transform is structure-preserving: the output document has the same
// field set and array lengths as the template, with numeric magnitudes scaled
// by the district's factor plus seeded jitter. Fields with no rule, and
// fields that turn out to be malformed, pass through unchanged; a bad field
// never aborts a document.
package transform

import (
	"github.com/sahyadri-labs/distdash/internal/district"
	"github.com/sahyadri-labs/distdash/internal/scale"
	"github.com/sahyadri-labs/distdash/internal/sector"
)

// Seed strides keep the per-collection jitter streams apart. Within a
// collection the seed is distSeed + index*stride (+ field hash for row
// collections), so a value's jitter depends only on its identity, never on
// enumeration order.
const (
	strideChart     = 100
	strideTable     = 200
	strideWaterfall = 300
	strideRelated   = 400
	strideLivestock = 500
	strideService   = 600
	strideInfra     = 700
	strideMilk      = 800
	strideFundFlow  = 900
	strideProducts  = 1000
	strideBreakdown = 1100
)

// Identifier and categorical fields that must never be rescaled as
// magnitudes.
var rowSkip = map[string]bool{
	"year":        true,
	"month":       true,
	"category":    true,
	"status":      true,
	"statusColor": true,
	"pct":         true,
	"topTaluka":   true,
}

// Taluka identity fields come from the target district, not the template.
var talukaSkip = map[string]bool{
	"name":  true,
	"lng":   true,
	"lat":   true,
	"color": true,
}

// Apply derives a district variant of the template for the given sector.
// The template itself is never mutated.
func Apply(template sector.Document, d district.Info, key sector.Key) sector.Document {
	factor := district.ScaleFactor(d.Slug)
	distSeed := scale.HashString(d.Slug + string(key))
	doc := template.Clone()

	scaleKPIs(doc, factor, distSeed)
	scaleRowCollection(doc, "chartData", factor, distSeed, strideChart)
	scaleRowCollection(doc, "tableData", factor, distSeed, strideTable)
	rebuildTalukas(doc, d, factor, distSeed)
	scaleWaterfall(doc, "waterfallData", factor, distSeed, strideWaterfall)
	scaleRelatedMetrics(doc, factor, distSeed)
	scaleValueEntries(doc, "livestockComposition", factor, distSeed, strideLivestock)
	scaleRowCollection(doc, "serviceTrends", factor, distSeed, strideService)
	scaleInfraSummary(doc, factor, distSeed)
	scaleRowCollection(doc, "milkTrends", factor, distSeed, strideMilk)
	scaleWaterfall(doc, "fundingWaterfall", factor, distSeed, strideFundFlow)
	scaleValueEntries(doc, "byProducts", factor, distSeed, strideProducts)
	scaleLivestockBreakdown(doc, factor, distSeed)

	// Viewport parameters are display state, not magnitudes: the derived
	// district gets its own map center and zoom.
	if key == sector.Geographic {
		doc["center"] = []any{d.Center[0], d.Center[1]}
		doc["zoom"] = d.Zoom
	}

	return doc
}

// scaleKPIs rescales the number embedded in each KPI display string and
// independently perturbs its trend percentage. KPI strings carry Indian digit
// grouping and unit suffixes, both of which are preserved.
func scaleKPIs(doc sector.Document, factor float64, distSeed int) {
	kpis, ok := doc["kpis"].([]any)
	if !ok {
		return
	}
	for i, item := range kpis {
		kpi, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := kpi["value"].(string); ok {
			kpi["value"] = scale.Embedded(v, factor, distSeed+i)
		}
		if trend, ok := kpi["trend"].(map[string]any); ok {
			if tv, ok := trend["value"].(string); ok {
				trend["value"] = scale.Trend(tv, distSeed+i+100)
			}
		}
	}
}

// scaleRowCollection scales every numeric field of each row except the
// identifier/categorical set.
func scaleRowCollection(doc sector.Document, field string, factor float64, distSeed, stride int) {
	rows, ok := doc[field].([]any)
	if !ok {
		return
	}
	for ri, item := range rows {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for k, v := range row {
			if rowSkip[k] {
				continue
			}
			row[k] = scale.Value(v, factor, distSeed+ri*stride+scale.HashString(k))
		}
	}
}

// rebuildTalukas replaces the template's taluka list with one entry per
// target-district taluka. Template records are reused cyclically as the
// source of sector-specific field values (index i pulls from template index
// i mod len(template)); identity fields come from the district descriptor and
// the palette. This is a deliberate approximation for synthetic data: the
// borrowed records carry plausible structure, not authentic per-taluka
// relationships.
func rebuildTalukas(doc sector.Document, d district.Info, factor float64, distSeed int) {
	templateTalukas, ok := doc["talukas"].([]any)
	if !ok || len(templateTalukas) == 0 || len(d.Talukas) == 0 {
		return
	}
	out := make([]any, len(d.Talukas))
	for ti, dt := range d.Talukas {
		tmpl, ok := templateTalukas[ti%len(templateTalukas)].(map[string]any)
		if !ok {
			continue
		}
		rec := make(map[string]any, len(tmpl)+1)
		for k, v := range tmpl {
			rec[k] = v
		}
		rec["name"] = dt.Name
		rec["lng"] = dt.Lng
		rec["lat"] = dt.Lat
		rec["color"] = district.TalukaColor(ti)
		for k, v := range rec {
			if talukaSkip[k] {
				continue
			}
			rec[k] = scale.Value(v, factor, distSeed+ti*50+scale.HashString(k))
		}
		out[ti] = rec
	}
	doc["talukas"] = out
}

// scaleWaterfall scales the base and value fields of each breakdown entry
// with separate seeds so the two do not move in lockstep.
func scaleWaterfall(doc sector.Document, field string, factor float64, distSeed, stride int) {
	entries, ok := doc[field].([]any)
	if !ok {
		return
	}
	for i, item := range entries {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if base, ok := entry["base"]; ok {
			entry["base"] = scale.Value(base, factor, distSeed+i*stride)
		}
		if value, ok := entry["value"]; ok {
			entry["value"] = scale.Value(value, factor, distSeed+i*(stride+1))
		}
	}
}

// scaleRelatedMetrics scales the inline series of each mini-chart descriptor.
func scaleRelatedMetrics(doc sector.Document, factor float64, distSeed int) {
	metrics, ok := doc["relatedMetrics"].([]any)
	if !ok {
		return
	}
	for mi, item := range metrics {
		metric, ok := item.(map[string]any)
		if !ok {
			continue
		}
		data, ok := metric["data"].([]any)
		if !ok {
			continue
		}
		for di, d := range data {
			point, ok := d.(map[string]any)
			if !ok {
				continue
			}
			if value, ok := point["value"]; ok {
				point["value"] = scale.Value(value, factor, distSeed+mi*strideRelated+di)
			}
		}
	}
}

// scaleValueEntries scales the value field of each entry in a simple
// {label, value} style array.
func scaleValueEntries(doc sector.Document, field string, factor float64, distSeed, stride int) {
	entries, ok := doc[field].([]any)
	if !ok {
		return
	}
	for i, item := range entries {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if value, ok := entry["value"]; ok {
			entry["value"] = scale.Value(value, factor, distSeed+i*stride)
		}
	}
}

// scaleInfraSummary rescales the integer embedded in each summary string,
// same extraction/reformat approach as KPIs.
func scaleInfraSummary(doc sector.Document, factor float64, distSeed int) {
	entries, ok := doc["infraSummary"].([]any)
	if !ok {
		return
	}
	for i, item := range entries {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := entry["value"].(string); ok {
			entry["value"] = scale.EmbeddedInt(v, factor, distSeed+i*strideInfra)
		}
	}
}

// scaleLivestockBreakdown handles both shapes the field appears in: a plain
// array of entries, or a mapping from year to entry array.
func scaleLivestockBreakdown(doc sector.Document, factor float64, distSeed int) {
	switch bd := doc["livestockBreakdown"].(type) {
	case []any:
		for i, item := range bd {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if value, ok := entry["value"]; ok {
				entry["value"] = scale.Value(value, factor, distSeed+i*strideBreakdown)
			}
		}
	case map[string]any:
		for year, v := range bd {
			entries, ok := v.([]any)
			if !ok {
				continue
			}
			for i, item := range entries {
				entry, ok := item.(map[string]any)
				if !ok {
					continue
				}
				if value, ok := entry["value"]; ok {
					entry["value"] = scale.Value(value, factor, distSeed+i*strideBreakdown+scale.HashString(year))
				}
			}
		}
	}
}
