package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sahyadri-labs/distdash/internal/cli/config"
	"github.com/sahyadri-labs/distdash/internal/district"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir   string
	Force bool
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Scaffold a new project",
		Long: `Create a starter project layout:

  distdash.yaml        configuration file
  data/districts.json  district reference data for the six districts

Add one canonical template per sector ({sector}.json under data/) and run
'distdash generate' to produce the per-district documents.`,
		Example: `  distdash init
  distdash init ./my-dashboard`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Dir = args[0]
			} else {
				opts.Dir = "."
			}
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, opts *InitOptions) error {
	dataDir := filepath.Join(opts.Dir, config.DefaultDataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	cfgPath := filepath.Join(opts.Dir, config.ConfigFileName)
	cfgYAML, err := yaml.Marshal(map[string]any{
		"data_dir": config.DefaultDataDir,
		"workers":  config.DefaultWorkers,
	})
	if err != nil {
		return err
	}
	if err := writeScaffold(cfgPath, cfgYAML, opts.Force); err != nil {
		return err
	}

	districtsPath := filepath.Join(dataDir, "districts.json")
	districtsJSON, err := json.MarshalIndent(starterDistricts(), "", "  ")
	if err != nil {
		return err
	}
	if err := writeScaffold(districtsPath, append(districtsJSON, '\n'), opts.Force); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %s %s\n", styleOK.Render("✓"), cfgPath)
	fmt.Fprintf(out, "  %s %s\n", styleOK.Render("✓"), districtsPath)
	fmt.Fprintf(out, "\nNext: add sector templates under %s and run 'distdash generate'\n", dataDir)
	return nil
}

func writeScaffold(path string, data []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// starterDistricts returns the reference descriptors for the six supported
// districts. Coordinates are district headquarters; talukas are a starter
// subset, not the complete administrative list.
func starterDistricts() map[string]any {
	mk := func(slug, name string, lng, lat, zoom float64, talukas []district.Taluka) district.Info {
		return district.Info{
			Slug:    slug,
			Name:    name,
			Center:  [2]float64{lng, lat},
			Zoom:    zoom,
			Talukas: talukas,
		}
	}
	return map[string]any{
		"districts": []district.Info{
			mk("ahilyanagar", "Ahilyanagar", 74.748, 19.095, 8.2, []district.Taluka{
				{Name: "Nagar", Lng: 74.748, Lat: 19.095},
				{Name: "Sangamner", Lng: 74.212, Lat: 19.568},
				{Name: "Kopargaon", Lng: 74.476, Lat: 19.883},
				{Name: "Rahuri", Lng: 74.649, Lat: 19.391},
				{Name: "Shrirampur", Lng: 74.655, Lat: 19.620},
				{Name: "Pathardi", Lng: 75.173, Lat: 19.172},
			}),
			mk("akola", "Akola", 77.008, 20.709, 8.8, []district.Taluka{
				{Name: "Akola", Lng: 77.008, Lat: 20.709},
				{Name: "Akot", Lng: 77.058, Lat: 21.096},
				{Name: "Balapur", Lng: 76.774, Lat: 20.666},
				{Name: "Murtizapur", Lng: 77.367, Lat: 20.734},
			}),
			mk("amravati", "Amravati", 77.757, 20.933, 8.4, []district.Taluka{
				{Name: "Amravati", Lng: 77.757, Lat: 20.933},
				{Name: "Achalpur", Lng: 77.508, Lat: 21.257},
				{Name: "Daryapur", Lng: 77.325, Lat: 20.925},
				{Name: "Morshi", Lng: 78.012, Lat: 21.338},
				{Name: "Warud", Lng: 78.270, Lat: 21.471},
			}),
			mk("beed", "Beed", 75.756, 18.989, 8.5, []district.Taluka{
				{Name: "Beed", Lng: 75.756, Lat: 18.989},
				{Name: "Ambajogai", Lng: 76.378, Lat: 18.733},
				{Name: "Georai", Lng: 75.268, Lat: 19.264},
				{Name: "Majalgaon", Lng: 76.208, Lat: 19.152},
			}),
			mk("bhandara", "Bhandara", 79.655, 21.170, 8.9, []district.Taluka{
				{Name: "Bhandara", Lng: 79.655, Lat: 21.170},
				{Name: "Tumsar", Lng: 79.744, Lat: 21.383},
				{Name: "Pauni", Lng: 79.635, Lat: 20.793},
				{Name: "Sakoli", Lng: 79.975, Lat: 21.083},
			}),
			mk("dhule", "Dhule", 74.777, 20.902, 8.7, []district.Taluka{
				{Name: "Dhule", Lng: 74.777, Lat: 20.902},
				{Name: "Sakri", Lng: 74.314, Lat: 20.990},
				{Name: "Shirpur", Lng: 74.880, Lat: 21.350},
				{Name: "Sindkheda", Lng: 74.737, Lat: 21.266},
			}),
		},
	}
}
