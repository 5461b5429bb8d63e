package view

import (
	"encoding/json"
	"testing"

	"github.com/sahyadri-labs/distdash/internal/sector"
)

func num(s string) json.Number { return json.Number(s) }

func TestSeries(t *testing.T) {
	rows := []map[string]any{
		{"year": num("2020"), "districtTotal": num("800")},
		{"year": num("2021"), "districtTotal": num("850")},
		{"year": num("2022")}, // no value, skipped
		{"districtTotal": num("900")}, // no label, skipped
	}
	got := Series(rows, "year", "districtTotal")
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got))
	}
	if got[0] != (Point{Label: "2020", Value: 800}) {
		t.Errorf("point 0 = %+v", got[0])
	}
	if got[1].Value != 850 {
		t.Errorf("point 1 = %+v", got[1])
	}
}

func TestMarkers(t *testing.T) {
	talukas := []map[string]any{
		{"name": "Tumsar", "lng": num("79.74"), "lat": num("21.38"), "color": "#2c699a", "milkProduction": num("74000")},
		{"name": "NoCoords", "milkProduction": num("100")},
	}
	got := Markers(talukas, "milkProduction")
	if len(got) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(got))
	}
	m := got[0]
	if m.Label != "Tumsar" || m.Lng != 79.74 || m.Lat != 21.38 || m.Color != "#2c699a" || m.Value != 74000 {
		t.Errorf("marker = %+v", m)
	}
}

func TestKPIs(t *testing.T) {
	doc := sector.Document{
		"kpis": []any{
			map[string]any{
				"label": "Daily Collection",
				"value": "12,45,600 L",
				"icon":  "water_drop",
				"trend": map[string]any{"direction": "up", "value": "+12.5%", "context": "vs last year"},
			},
			map[string]any{
				"label":    "AI Coverage",
				"value":    "68%",
				"icon":     "vaccines",
				"progress": map[string]any{"value": num("68"), "label": "of 2025 target"},
			},
		},
	}
	got := KPIs(doc)
	if len(got) != 2 {
		t.Fatalf("expected 2 KPIs, got %d", len(got))
	}
	if got[0].Trend == nil || got[0].Trend.Direction != "up" {
		t.Errorf("kpi 0 trend = %+v", got[0].Trend)
	}
	if got[0].Progress != nil {
		t.Error("kpi 0 should have no progress")
	}
	if got[1].Progress == nil || got[1].Progress.Value != 68 {
		t.Errorf("kpi 1 progress = %+v", got[1].Progress)
	}
}

func TestProjectMetrics(t *testing.T) {
	rows := []map[string]any{
		{"year": num("2020"), "districtTotal": num("800"), "stateAvg": num("640"), "cooperatives": num("120")},
	}

	all := ProjectMetrics(rows, nil)
	if len(all[0]) != 4 {
		t.Errorf("empty selection must keep all fields, got %v", all[0])
	}

	narrowed := ProjectMetrics(rows, []string{"districtTotal"})
	row := narrowed[0]
	if _, ok := row["districtTotal"]; !ok {
		t.Error("selected metric missing")
	}
	if _, ok := row["year"]; !ok {
		t.Error("discriminator must survive projection")
	}
	if _, ok := row["stateAvg"]; ok {
		t.Error("unselected metric must be dropped")
	}
}
