package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// Load resolves the configuration. Precedence, lowest to highest:
// defaults, config file, DISTDASH_* environment variables, changed CLI flags.
func Load(explicitFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	defaults := map[string]any{
		"data_dir": DefaultDataDir,
		"workers":  DefaultWorkers,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	configFileUsed = findConfigFile(explicitFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configFileUsed, err)
		}
	} else if explicitFile != "" {
		return nil, fmt.Errorf("config file not found: %s", explicitFile)
	}

	if err := k.Load(env.Provider("DISTDASH_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DISTDASH_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		// Only flags the user actually set override file/env values; flag
		// names use dashes, koanf keys use underscores.
		err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()

	currentConfig = &cfg
	return &cfg, nil
}

// findConfigFile picks the config file: explicit path if given, otherwise
// distdash.yaml / distdash.yml in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// CurrentConfig returns the last loaded configuration, or nil.
func CurrentConfig() *Config { return currentConfig }

// ConfigFileUsed returns the path of the config file that was loaded, if any.
func ConfigFileUsed() string { return configFileUsed }
