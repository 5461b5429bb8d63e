package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/sahyadri-labs/distdash/internal/cli/config"
	"github.com/sahyadri-labs/distdash/internal/pipeline"
)

// loggerKey stores the CLI logger in the command context.
type loggerKey struct{}

// WithLogger attaches a logger to a context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// loggerFrom retrieves the CLI logger, defaulting to discard.
func loggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// getConfig returns the loaded configuration, falling back to environment
// variables with defaults when no config pass has run (e.g. in tests).
func getConfig() *config.Config {
	if cfg := config.CurrentConfig(); cfg != nil {
		return cfg
	}
	cfg := &config.Config{
		DataDir:       os.Getenv("DISTDASH_DATA_DIR"),
		OutDir:        os.Getenv("DISTDASH_OUT_DIR"),
		DistrictsFile: os.Getenv("DISTDASH_DISTRICTS_FILE"),
		Verbose:       os.Getenv("DISTDASH_VERBOSE") == "true",
	}
	if w, err := strconv.Atoi(os.Getenv("DISTDASH_WORKERS")); err == nil {
		cfg.Workers = w
	}
	cfg.ApplyDefaults()
	return cfg
}

// pipelineConfig maps CLI configuration onto the pipeline.
func pipelineConfig(cfg *config.Config, logger *slog.Logger) pipeline.Config {
	return pipeline.Config{
		DataDir:       cfg.DataDir,
		OutDir:        cfg.OutDir,
		DistrictsFile: cfg.DistrictsFile,
		Workers:       cfg.Workers,
		Logger:        logger,
	}
}

// Status styles shared by generate, doctor, and watch output.
var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleErr  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
