// Package config loads the distdash project configuration from
// distdash.yaml, environment variables, and CLI flags, in ascending
// precedence over built-in defaults.
package config

// Default configuration values.
const (
	DefaultDataDir       = "data"
	DefaultWorkers       = 1
	ConfigFileName       = "distdash.yaml"
	ConfigFileNameAlt    = "distdash.yml"
	DefaultDistrictsFile = "" // resolved to <data_dir>/districts.json by the pipeline
)

// Config is the resolved project configuration.
type Config struct {
	// DataDir holds the canonical sector templates and the district
	// reference file.
	DataDir string `koanf:"data_dir"`

	// OutDir receives generated documents; empty means DataDir.
	OutDir string `koanf:"out_dir"`

	// DistrictsFile overrides the default <data_dir>/districts.json.
	DistrictsFile string `koanf:"districts_file"`

	// Workers bounds pipeline parallelism.
	Workers int `koanf:"workers"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// ApplyDefaults fills zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
}
