// Package view projects sector documents into the flat shapes the
// presentation components consume: label/value series for simple charts, map
// markers, and KPI card records. Projections are read-only; documents are
// shared reference data.
package view

import (
	"github.com/sahyadri-labs/distdash/internal/scale"
	"github.com/sahyadri-labs/distdash/internal/sector"
)

// Point is one entry of a simple chart series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Marker is one map marker derived from a taluka record.
type Marker struct {
	Lng   float64 `json:"lng"`
	Lat   float64 `json:"lat"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Trend mirrors the KPI trend descriptor.
type Trend struct {
	Direction string `json:"direction"`
	Value     string `json:"value"`
	Context   string `json:"context"`
}

// Progress mirrors the KPI progress descriptor.
type Progress struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// KPI is one summary card record.
type KPI struct {
	Label    string    `json:"label"`
	Value    string    `json:"value"`
	Icon     string    `json:"icon"`
	Trend    *Trend    `json:"trend,omitempty"`
	Progress *Progress `json:"progress,omitempty"`
}

// Series extracts {label, value} points from rows, labeling each point by
// labelField and reading its magnitude from valueField. Rows missing either
// field are skipped.
func Series(rows []map[string]any, labelField, valueField string) []Point {
	var out []Point
	for _, row := range rows {
		label, ok := asLabel(row[labelField])
		if !ok {
			continue
		}
		value, ok := scale.Number(row[valueField])
		if !ok {
			continue
		}
		out = append(out, Point{Label: label, Value: value})
	}
	return out
}

// Markers builds map markers from taluka records, reading the marker
// magnitude from valueField. Talukas without coordinates are skipped.
func Markers(talukas []map[string]any, valueField string) []Marker {
	var out []Marker
	for _, row := range talukas {
		lng, okLng := scale.Number(row["lng"])
		lat, okLat := scale.Number(row["lat"])
		if !okLng || !okLat {
			continue
		}
		name, _ := row["name"].(string)
		color, _ := row["color"].(string)
		value, _ := scale.Number(row[valueField])
		out = append(out, Marker{Lng: lng, Lat: lat, Label: name, Value: value, Color: color})
	}
	return out
}

// KPIs extracts the summary card records from a document.
func KPIs(doc sector.Document) []KPI {
	var out []KPI
	for _, row := range doc.Rows("kpis") {
		kpi := KPI{}
		kpi.Label, _ = row["label"].(string)
		kpi.Value, _ = row["value"].(string)
		kpi.Icon, _ = row["icon"].(string)
		if trend, ok := row["trend"].(map[string]any); ok {
			t := &Trend{}
			t.Direction, _ = trend["direction"].(string)
			t.Value, _ = trend["value"].(string)
			t.Context, _ = trend["context"].(string)
			kpi.Trend = t
		}
		if progress, ok := row["progress"].(map[string]any); ok {
			p := &Progress{}
			p.Value, _ = scale.Number(progress["value"])
			p.Label, _ = progress["label"].(string)
			kpi.Progress = p
		}
		out = append(out, kpi)
	}
	return out
}

// ProjectMetrics narrows each row to the selected metric fields plus the
// series discriminators (year, month, category, label). An empty selection
// keeps every field.
func ProjectMetrics(rows []map[string]any, metrics []string) []map[string]any {
	if len(metrics) == 0 {
		return rows
	}
	keep := map[string]bool{"year": true, "month": true, "category": true, "label": true}
	for _, m := range metrics {
		keep[m] = true
	}
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		narrowed := make(map[string]any)
		for k, v := range row {
			if keep[k] {
				narrowed[k] = v
			}
		}
		out[i] = narrowed
	}
	return out
}

func asLabel(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if n, ok := v.(interface{ String() string }); ok {
		return n.String(), true
	}
	return "", false
}
