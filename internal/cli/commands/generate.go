package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sahyadri-labs/distdash/internal/pipeline"
	"github.com/sahyadri-labs/distdash/internal/sector"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	Districts []string
	Sectors   []string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate per-district sector datasets",
		Long: `Run the synthesis pipeline: for every (sector, district) pair, write one
JSON document derived from the sector's canonical template.

The canonical district keeps its original data; every other district gets a
deterministically scaled variant. Re-running with unchanged inputs reproduces
identical files.`,
		Example: `  # Generate everything
  distdash generate

  # Regenerate a single district
  distdash generate --district bhandara

  # Regenerate one sector for all districts, in parallel
  distdash generate --sector milk-production --workers 4`,
		Aliases: []string{"gen"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Districts, "district", nil, "Restrict to specific district slugs")
	cmd.Flags().StringSliceVar(&opts.Sectors, "sector", nil, "Restrict to specific sectors")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	cfg := getConfig()
	logger := loggerFrom(cmd.Context())

	pcfg := pipelineConfig(cfg, logger)
	pcfg.Districts = opts.Districts
	for _, s := range opts.Sectors {
		key := sector.Key(strings.TrimSpace(s))
		if !key.Valid() {
			return fmt.Errorf("unknown sector %q", s)
		}
		pcfg.Sectors = append(pcfg.Sectors, key)
	}

	runner, err := pipeline.New(pcfg)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, w := range res.Written {
		mark := styleOK.Render("✓")
		note := "scaled"
		if !w.Scaled {
			note = "original"
		}
		fmt.Fprintf(out, "  %s %s--%s.json (%s)\n", mark, w.Sector, w.District, note)
	}
	for _, skipped := range res.Skipped {
		fmt.Fprintf(out, "  %s template not found, skipped: %s.json\n", styleWarn.Render("⚠"), skipped)
	}
	fmt.Fprintf(out, "Generated %d documents in %s\n", len(res.Written), time.Since(start).Round(time.Millisecond))
	return nil
}
