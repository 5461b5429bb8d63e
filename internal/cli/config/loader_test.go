package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Empty(t, ConfigFileUsed())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	content := "data_dir: fixtures\nout_dir: generated\nworkers: 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "fixtures", cfg.DataDir)
	assert.Equal(t, "generated", cfg.OutDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, ConfigFileName, ConfigFileUsed())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("data_dir: fromfile\n"), 0644))
	t.Setenv("DISTDASH_DATA_DIR", "fromenv")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.DataDir)
}

func TestLoad_ChangedFlagWinsOverEverything(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DISTDASH_DATA_DIR", "fromenv")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-dir", "", "")
	flags.Int("workers", 0, "")
	require.NoError(t, flags.Parse([]string{"--data-dir", "fromflag"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "fromflag", cfg.DataDir)
	// Unchanged flags must not clobber defaults with their zero values.
	assert.Equal(t, DefaultWorkers, cfg.Workers)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load("no-such-config.yaml", nil)
	assert.Error(t, err)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
