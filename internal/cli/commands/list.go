package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sahyadri-labs/distdash/internal/dataset"
	"github.com/sahyadri-labs/distdash/internal/district"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List generated datasets per sector and district",
		Long: `Show which (sector, district) documents exist in the output directory.

Run this after 'generate' to verify coverage; missing cells mean a template
was absent or the pipeline has not been run yet.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	cfg := getConfig()
	dir := cfg.OutDir
	if dir == "" {
		dir = cfg.DataDir
	}

	store, err := dataset.Load(dir, district.CanonicalSlug, loggerFrom(cmd.Context()))
	if err != nil {
		return err
	}

	sectors := store.Sectors()
	if len(sectors) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No generated datasets in %s. Run 'distdash generate' first.\n", dir)
		return nil
	}

	// Union of district slugs across sectors, keeping sorted order.
	seen := map[string]bool{}
	var slugs []string
	for _, key := range sectors {
		for _, slug := range store.Districts(key) {
			if !seen[slug] {
				seen[slug] = true
				slugs = append(slugs, slug)
			}
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	header := table.Row{"Sector"}
	for _, slug := range slugs {
		header = append(header, slug)
	}
	t.AppendHeader(header)

	for _, key := range sectors {
		row := table.Row{string(key)}
		present := map[string]bool{}
		for _, slug := range store.Districts(key) {
			present[slug] = true
		}
		for _, slug := range slugs {
			if present[slug] {
				row = append(row, "✓")
			} else {
				row = append(row, "-")
			}
		}
		t.AppendRow(row)
	}
	t.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "%d sectors, %d districts\n", len(sectors), len(slugs))
	return nil
}
