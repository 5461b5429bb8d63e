package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sahyadri-labs/distdash/internal/pipeline"
	"github.com/sahyadri-labs/distdash/internal/sector"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate datasets when templates change",
		Long: `Watch the data directory and rerun the pipeline whenever a canonical
template or the district reference file changes. Generated {sector}--{slug}
files are ignored so the pipeline's own writes never retrigger it.

Runs until interrupted.`,
		Example: `  distdash watch
  distdash watch --debounce 500ms`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 250*time.Millisecond, "Quiet period before regenerating")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *WatchOptions) error {
	cfg := getConfig()
	logger := loggerFrom(cmd.Context())
	out := cmd.OutOrStdout()

	regen := func() {
		runner, err := pipeline.New(pipelineConfig(cfg, logger))
		if err != nil {
			fmt.Fprintf(out, "  %s %v\n", styleErr.Render("✗"), err)
			return
		}
		res, err := runner.Run(cmd.Context())
		if err != nil {
			fmt.Fprintf(out, "  %s %v\n", styleErr.Render("✗"), err)
			return
		}
		fmt.Fprintf(out, "  %s regenerated %d documents (%d sectors skipped)\n",
			styleOK.Render("✓"), len(res.Written), len(res.Skipped))
	}

	// Initial run so the output reflects the current templates.
	regen()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cfg.DataDir); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.DataDir, err)
	}

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", cfg.DataDir)

	var debounceTimer *time.Timer
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isTemplateChange(event.Name) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := filepath.Base(event.Name)
			debounceTimer = time.AfterFunc(opts.Debounce, func() {
				fmt.Fprintf(out, "Change detected: %s\n", name)
				regen()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// isTemplateChange reports whether a changed path is a pipeline input: a
// sector template or the district reference file. Generated documents carry
// a "--" separator in the name and are excluded.
func isTemplateChange(path string) bool {
	base := filepath.Base(path)
	if filepath.Ext(base) != ".json" || strings.Contains(base, "--") {
		return false
	}
	if base == "districts.json" {
		return true
	}
	return sector.Key(strings.TrimSuffix(base, ".json")).Valid()
}
