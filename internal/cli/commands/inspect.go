package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sahyadri-labs/distdash/internal/dataset"
	"github.com/sahyadri-labs/distdash/internal/district"
	"github.com/sahyadri-labs/distdash/internal/sector"
	"github.com/sahyadri-labs/distdash/internal/view"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect SECTOR [DISTRICT]",
		Short: "Summarize one generated dataset",
		Long: `Resolve a (sector, district) dataset and print its shape: top-level fields,
row counts, and KPI cards.

An unknown district resolves to the canonical district's data, mirroring the
dashboard's fallback behavior.`,
		Example: `  distdash inspect milk-production bhandara
  distdash inspect overview`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args)
		},
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	key := sector.Key(args[0])
	if !key.Valid() {
		return fmt.Errorf("unknown sector %q", args[0])
	}
	slug := district.CanonicalSlug
	if len(args) == 2 {
		slug = args[1]
	}

	cfg := getConfig()
	dir := cfg.OutDir
	if dir == "" {
		dir = cfg.DataDir
	}
	store, err := dataset.Load(dir, district.CanonicalSlug, loggerFrom(cmd.Context()))
	if err != nil {
		return err
	}

	doc := store.Resolve(key, slug)
	if doc == nil {
		return fmt.Errorf("no dataset for sector %q; run 'distdash generate' first", key)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s / %s\n\n", key, slug)

	fields := make([]string, 0, len(doc))
	for f := range doc {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Field", "Shape"})
	for _, f := range fields {
		t.AppendRow(table.Row{f, describeShape(doc[f])})
	}
	t.Render()

	if kpis := view.KPIs(doc); len(kpis) > 0 {
		fmt.Fprintln(out)
		kt := table.NewWriter()
		kt.SetOutputMirror(out)
		kt.SetStyle(table.StyleLight)
		kt.AppendHeader(table.Row{"KPI", "Value", "Trend"})
		for _, kpi := range kpis {
			trend := "-"
			if kpi.Trend != nil {
				trend = fmt.Sprintf("%s %s", kpi.Trend.Value, kpi.Trend.Context)
			}
			kt.AppendRow(table.Row{kpi.Label, kpi.Value, trend})
		}
		kt.Render()
	}
	return nil
}

func describeShape(v any) string {
	switch t := v.(type) {
	case []any:
		return fmt.Sprintf("array[%d]", len(t))
	case map[string]any:
		return fmt.Sprintf("object{%d}", len(t))
	case string:
		return "string"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return "number"
	}
}
