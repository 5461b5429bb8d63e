package transform

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahyadri-labs/distdash/internal/district"
	"github.com/sahyadri-labs/distdash/internal/sector"
)

func num(s string) json.Number { return json.Number(s) }

func bhandara() district.Info {
	return district.Info{
		Slug:   "bhandara",
		Name:   "Bhandara",
		Center: [2]float64{79.65, 21.17},
		Zoom:   10,
		Talukas: []district.Taluka{
			{Name: "Tumsar", Lng: 79.74, Lat: 21.38},
			{Name: "Pauni", Lng: 79.63, Lat: 20.79},
			{Name: "Sakoli", Lng: 79.98, Lat: 21.08},
		},
	}
}

func milkTemplate() sector.Document {
	return sector.Document{
		"kpis": []any{
			map[string]any{
				"label": "Daily Collection",
				"value": "12,45,600 L",
				"icon":  "water_drop",
				"trend": map[string]any{
					"direction": "up",
					"value":     "+12.5%",
					"context":   "vs last year",
				},
			},
		},
		"chartData": []any{
			map[string]any{"year": num("2020"), "districtTotal": num("800"), "stateAvg": num("640")},
			map[string]any{"year": num("2021"), "districtTotal": num("850"), "stateAvg": num("655")},
		},
		"tableData": []any{
			map[string]any{
				"year": num("2021"), "category": "Cooperative", "status": "On Track",
				"statusColor": "#008450", "pct": num("82"), "topTaluka": "Sangamner",
				"collection": num("420000"),
			},
		},
		"talukas": []any{
			map[string]any{"name": "Sangamner", "lng": 74.21, "lat": 19.57, "color": "#2c699a", "milkProduction": num("185000")},
			map[string]any{"name": "Kopargaon", "lng": 74.48, "lat": 19.88, "color": "#008450", "milkProduction": num("142000")},
		},
		"relatedMetrics": []any{
			map[string]any{
				"title":     "Chilling Centers",
				"chartType": "bar",
				"data": []any{
					map[string]any{"label": "2020", "value": num("48")},
					map[string]any{"label": "2021", "value": num("52")},
				},
			},
		},
	}
}

func TestApply_Deterministic(t *testing.T) {
	tmpl := milkTemplate()
	a := Apply(tmpl, bhandara(), sector.MilkProduction)
	b := Apply(tmpl, bhandara(), sector.MilkProduction)
	require.True(t, reflect.DeepEqual(a, b), "same inputs must produce identical documents")
}

func TestApply_TemplateUntouched(t *testing.T) {
	tmpl := milkTemplate()
	want := milkTemplate()
	_ = Apply(tmpl, bhandara(), sector.MilkProduction)
	require.True(t, reflect.DeepEqual(tmpl, want), "transform must not mutate the template")
}

func TestApply_StructurePreserved(t *testing.T) {
	tmpl := milkTemplate()
	out := Apply(tmpl, bhandara(), sector.MilkProduction)

	require.ElementsMatch(t, keys(tmpl), keys(out))
	assert.Len(t, out["chartData"], len(tmpl["chartData"].([]any)))
	assert.Len(t, out["tableData"], len(tmpl["tableData"].([]any)))
	assert.Len(t, out["kpis"], len(tmpl["kpis"].([]any)))

	// Per-row field names survive.
	origRow := tmpl["chartData"].([]any)[0].(map[string]any)
	newRow := out["chartData"].([]any)[0].(map[string]any)
	require.ElementsMatch(t, keys(origRow), keys(newRow))
}

func keys(m any) []string {
	var out []string
	switch t := m.(type) {
	case map[string]any:
		for k := range t {
			out = append(out, k)
		}
	case sector.Document:
		for k := range t {
			out = append(out, k)
		}
	}
	return out
}

func TestApply_CategoricalPassthrough(t *testing.T) {
	out := Apply(milkTemplate(), bhandara(), sector.MilkProduction)
	row := out["tableData"].([]any)[0].(map[string]any)

	assert.Equal(t, num("2021"), row["year"])
	assert.Equal(t, "Cooperative", row["category"])
	assert.Equal(t, "On Track", row["status"])
	assert.Equal(t, "#008450", row["statusColor"])
	assert.Equal(t, num("82"), row["pct"])
	assert.Equal(t, "Sangamner", row["topTaluka"])
	assert.NotEqual(t, num("420000"), row["collection"], "magnitude field must be scaled")
}

func TestApply_ChartDataInJitterBand(t *testing.T) {
	out := Apply(milkTemplate(), bhandara(), sector.MilkProduction)
	factor := district.ScaleFactor("bhandara")

	orig := milkTemplate()["chartData"].([]any)
	got := out["chartData"].([]any)
	for i := range got {
		for _, field := range []string{"districtTotal", "stateAvg"} {
			o, _ := orig[i].(map[string]any)[field].(json.Number).Float64()
			n, err := got[i].(map[string]any)[field].(json.Number).Float64()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, o*factor*0.85-1, "row %d %s", i, field)
			assert.LessOrEqual(t, n, o*factor*1.15+1, "row %d %s", i, field)
		}
	}
}

func TestApply_EndToEndScenarioValue(t *testing.T) {
	// Pinned output: regenerating bhandara milk data must stay bit-identical.
	out := Apply(milkTemplate(), bhandara(), sector.MilkProduction)
	row := out["chartData"].([]any)[1].(map[string]any)
	assert.Equal(t, num("316"), row["districtTotal"])
}

func TestApply_KPIStrings(t *testing.T) {
	out := Apply(milkTemplate(), bhandara(), sector.MilkProduction)
	kpi := out["kpis"].([]any)[0].(map[string]any)

	value := kpi["value"].(string)
	assert.True(t, strings.HasSuffix(value, " L"), "unit suffix preserved: %q", value)
	assert.NotEqual(t, "12,45,600 L", value)

	trend := kpi["trend"].(map[string]any)
	assert.Equal(t, "up", trend["direction"])
	tv := trend["value"].(string)
	assert.True(t, strings.HasPrefix(tv, "+") && strings.HasSuffix(tv, "%"), "trend shape preserved: %q", tv)
	assert.NotEqual(t, "+12.5%", tv)
}

func TestApply_MalformedKPIUnchanged(t *testing.T) {
	tmpl := sector.Document{
		"kpis": []any{
			map[string]any{"label": "Coverage", "value": "district-wide", "icon": "flag"},
		},
	}
	out := Apply(tmpl, bhandara(), sector.MilkProduction)
	kpi := out["kpis"].([]any)[0].(map[string]any)
	assert.Equal(t, "district-wide", kpi["value"], "KPI with no digits must pass through")
}

func TestApply_TalukasRebuilt(t *testing.T) {
	d := bhandara() // 3 talukas vs 2 in template: forces cyclic reuse
	out := Apply(milkTemplate(), d, sector.MilkProduction)

	talukas := out["talukas"].([]any)
	require.Len(t, talukas, 3, "taluka count follows the target district")

	for i, item := range talukas {
		rec := item.(map[string]any)
		assert.Equal(t, d.Talukas[i].Name, rec["name"])
		assert.Equal(t, d.Talukas[i].Lng, rec["lng"])
		assert.Equal(t, d.Talukas[i].Lat, rec["lat"])
		assert.Equal(t, district.TalukaColor(i), rec["color"])
		if _, ok := rec["milkProduction"]; !ok {
			t.Errorf("taluka %d lost sector field milkProduction", i)
		}
	}

	// Third taluka borrows template record 0 (2-entry template, index 2 mod 2).
	third := talukas[2].(map[string]any)
	_, hasField := third["milkProduction"]
	assert.True(t, hasField)
}

func TestApply_GeographicViewport(t *testing.T) {
	tmpl := sector.Document{
		"center":  []any{num("74.75"), num("19.1")},
		"zoom":    num("9"),
		"markers": []any{},
	}
	d := bhandara()
	out := Apply(tmpl, d, sector.Geographic)

	center := out["center"].([]any)
	assert.Equal(t, d.Center[0], center[0])
	assert.Equal(t, d.Center[1], center[1])
	assert.Equal(t, d.Zoom, out["zoom"])
}

func TestApply_WaterfallIndependentSeeds(t *testing.T) {
	tmpl := sector.Document{
		"waterfallData": []any{
			map[string]any{"category": "Total Budget", "base": num("0"), "value": num("5000"), "type": "total"},
			map[string]any{"category": "Salaries", "base": num("3200"), "value": num("1800"), "type": "expense"},
		},
	}
	out := Apply(tmpl, bhandara(), sector.Funding)
	entries := out["waterfallData"].([]any)

	first := entries[1].(map[string]any)
	assert.Equal(t, "Salaries", first["category"])
	b, _ := first["base"].(json.Number).Float64()
	v, _ := first["value"].(json.Number).Float64()
	factor := district.ScaleFactor("bhandara")
	assert.InDelta(t, 3200*factor, b, 3200*factor*0.15+1)
	assert.InDelta(t, 1800*factor, v, 1800*factor*0.15+1)
}

func TestApply_LivestockBreakdownBothShapes(t *testing.T) {
	entry := func(name, val string) map[string]any {
		return map[string]any{"name": name, "value": num(val)}
	}
	arrDoc := sector.Document{
		"livestockBreakdown": []any{entry("Cattle", "52000"), entry("Goat", "31000")},
	}
	mapDoc := sector.Document{
		"livestockBreakdown": map[string]any{
			"2019": []any{entry("Cattle", "50000")},
			"2023": []any{entry("Cattle", "52000")},
		},
	}
	d := bhandara()

	arrOut := Apply(arrDoc, d, sector.Infrastructure)
	got := arrOut["livestockBreakdown"].([]any)
	require.Len(t, got, 2)
	assert.Equal(t, "Cattle", got[0].(map[string]any)["name"])
	assert.NotEqual(t, num("52000"), got[0].(map[string]any)["value"])

	mapOut := Apply(mapDoc, d, sector.Infrastructure)
	byYear := mapOut["livestockBreakdown"].(map[string]any)
	require.Len(t, byYear, 2)
	v2019 := byYear["2019"].([]any)[0].(map[string]any)["value"]
	v2023 := byYear["2023"].([]any)[0].(map[string]any)["value"]
	assert.NotEqual(t, num("50000"), v2019)
	assert.NotEqual(t, v2019, v2023, "year hash must decorrelate the two series")
}

func TestApply_UnknownFieldsPassThrough(t *testing.T) {
	tmpl := sector.Document{
		"futureField": map[string]any{"shape": "unknown", "n": num("7")},
		"note":        "not a magnitude",
	}
	out := Apply(tmpl, bhandara(), sector.Overview)
	assert.True(t, reflect.DeepEqual(tmpl["futureField"], out["futureField"]))
	assert.Equal(t, "not a magnitude", out["note"])
}
