package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sahyadri-labs/distdash/internal/district"
	"github.com/sahyadri-labs/distdash/internal/sector"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the project setup for problems",
		Long: `Verify that the data directory is ready for generation:
- the district reference file parses and includes the canonical district
- every district resolves to a known scale factor
- each sector has a canonical template file
- the output directory is writable

Warnings do not fail the command; errors do.`,
		Example: `  distdash doctor
  distdash doctor --data-dir ./data`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
}

type doctorCheck struct {
	name   string
	status string // "ok", "warn", "error"
	detail string
}

func runDoctor(cmd *cobra.Command) error {
	cfg := getConfig()
	districtsFile := cfg.DistrictsFile
	if districtsFile == "" {
		districtsFile = filepath.Join(cfg.DataDir, "districts.json")
	}

	var checks []doctorCheck
	checks = append(checks, checkDistricts(districtsFile)...)
	checks = append(checks, checkTemplates(cfg.DataDir)...)
	checks = append(checks, checkOutDir(cfg.OutDir, cfg.DataDir))

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Check", "Detail"})

	errs, warns := 0, 0
	for _, c := range checks {
		icon := styleOK.Render("✓")
		switch c.status {
		case "warn":
			icon = styleWarn.Render("!")
			warns++
		case "error":
			icon = styleErr.Render("✗")
			errs++
		}
		t.AppendRow(table.Row{icon, c.name, c.detail})
	}
	t.Render()

	switch {
	case errs > 0:
		return fmt.Errorf("doctor found %d error(s), %d warning(s)", errs, warns)
	case warns > 0:
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d warning(s)\n", styleWarn.Render("!"), warns)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s All checks passed\n", styleOK.Render("✓"))
	}
	return nil
}

func checkDistricts(path string) []doctorCheck {
	reg, err := district.Load(path)
	if err != nil {
		return []doctorCheck{{
			name:   "district reference file",
			status: "error",
			detail: err.Error(),
		}}
	}

	checks := []doctorCheck{{
		name:   "district reference file",
		status: "ok",
		detail: fmt.Sprintf("%d districts in %s", len(reg.All()), path),
	}}

	if !reg.Has(district.CanonicalSlug) {
		checks = append(checks, doctorCheck{
			name:   "canonical district",
			status: "warn",
			detail: fmt.Sprintf("%q missing; %q used as fallback source", district.CanonicalSlug, reg.Canonical()),
		})
	} else {
		checks = append(checks, doctorCheck{
			name:   "canonical district",
			status: "ok",
			detail: district.CanonicalSlug,
		})
	}

	var unknown []string
	for _, d := range reg.All() {
		if !district.KnownScale(d.Slug) {
			unknown = append(unknown, d.Slug)
		}
	}
	if len(unknown) > 0 {
		checks = append(checks, doctorCheck{
			name:   "scale factors",
			status: "warn",
			detail: fmt.Sprintf("no factor for %v, default 0.5 applies", unknown),
		})
	} else {
		checks = append(checks, doctorCheck{
			name:   "scale factors",
			status: "ok",
			detail: "every district has an explicit factor",
		})
	}
	return checks
}

func checkTemplates(dataDir string) []doctorCheck {
	var missing []string
	for _, key := range sector.Keys {
		path := filepath.Join(dataDir, string(key)+".json")
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, string(key))
		}
	}
	if len(missing) == len(sector.Keys) {
		return []doctorCheck{{
			name:   "sector templates",
			status: "error",
			detail: fmt.Sprintf("no templates found in %s", dataDir),
		}}
	}
	if len(missing) > 0 {
		return []doctorCheck{{
			name:   "sector templates",
			status: "warn",
			detail: fmt.Sprintf("missing %v, those sectors will be skipped", missing),
		}}
	}
	return []doctorCheck{{
		name:   "sector templates",
		status: "ok",
		detail: fmt.Sprintf("all %d sectors present", len(sector.Keys)),
	}}
}

func checkOutDir(outDir, dataDir string) doctorCheck {
	dir := outDir
	if dir == "" {
		dir = dataDir
	}
	probe := filepath.Join(dir, ".distdash-doctor")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return doctorCheck{
			name:   "output directory",
			status: "error",
			detail: fmt.Sprintf("not writable: %v", err),
		}
	}
	_ = os.Remove(probe)
	return doctorCheck{name: "output directory", status: "ok", detail: dir}
}
