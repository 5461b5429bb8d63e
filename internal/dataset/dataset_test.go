package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahyadri-labs/distdash/internal/sector"
	"github.com/sahyadri-labs/distdash/internal/testutil"
)

func writeStoreDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		// Generated documents.
		"milk-production--ahilyanagar.json": `{"chartData": [{"year": 2021, "districtTotal": 850}]}`,
		"milk-production--bhandara.json":    `{"chartData": [{"year": 2021, "districtTotal": 316}]}`,
		"funding--ahilyanagar.json":         `{"waterfallData": []}`,
		// Template and unrelated files sharing the directory.
		"milk-production.json": `{"chartData": []}`,
		"districts.json":       `{"districts": []}`,
		"notes.txt":            "not json",
		// Unknown sector name, ignored.
		"transport--ahilyanagar.json": `{}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestLoad_IgnoresNonGeneratedFiles(t *testing.T) {
	s, err := Load(writeStoreDir(t), "ahilyanagar", testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []sector.Key{sector.Funding, sector.MilkProduction}, s.Sectors())
	assert.Equal(t, []string{"ahilyanagar", "bhandara"}, s.Districts(sector.MilkProduction))
}

func TestResolve_KnownPair(t *testing.T) {
	s, err := Load(writeStoreDir(t), "ahilyanagar", nil)
	require.NoError(t, err)

	doc := s.Resolve(sector.MilkProduction, "bhandara")
	require.NotNil(t, doc)
	rows := doc.Rows("chartData")
	require.Len(t, rows, 1)
	assert.Equal(t, json.Number("316"), rows[0]["districtTotal"])
}

func TestResolve_UnknownDistrictFallsBackToCanonical(t *testing.T) {
	s, err := Load(writeStoreDir(t), "ahilyanagar", nil)
	require.NoError(t, err)

	got := s.Resolve(sector.MilkProduction, "nonexistent-slug")
	want := s.Resolve(sector.MilkProduction, "ahilyanagar")
	require.NotNil(t, got)
	assert.True(t, reflect.DeepEqual(want, got), "unknown district must resolve to the canonical dataset")
}

func TestResolve_UnknownSectorIsNil(t *testing.T) {
	s, err := Load(writeStoreDir(t), "ahilyanagar", nil)
	require.NoError(t, err)
	assert.Nil(t, s.Resolve(sector.Key("transport"), "ahilyanagar"))
}

func TestResolve_SectorWithoutCanonical(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "funding--bhandara.json"), []byte(`{}`), 0644))
	s, err := Load(dir, "ahilyanagar", nil)
	require.NoError(t, err)

	// Known district still resolves even when the canonical file is absent.
	assert.NotNil(t, s.Resolve(sector.Funding, "bhandara"))
	assert.Nil(t, s.Resolve(sector.Funding, "elsewhere"))
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent"), "ahilyanagar", nil)
	assert.Error(t, err)
}
