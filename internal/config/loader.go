package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file inside the data directory.
const ConfigFileName = "edimport.yaml"

// EnvPrefix is the prefix of environment variable overrides, e.g.
// EDIMPORT_VAT_PERCENT.
const EnvPrefix = "EDIMPORT_"

// Load loads configuration for the data directory resolved from flags and
// environment. Precedence (highest to lowest): flags > env vars > config
// file > defaults. The config file must exist: running the importer against
// a directory with no edimport.yaml is a setup mistake, not a default.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"dir":           ".",
		"vat_percent":   0.0,
		"languages":     []string{"fin"},
		"import.json":   true,
		"import.sqlite": true,
		"import.search": false,
		"verbose":       false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file from the data directory. The directory itself can only
	// come from the flag or environment, so resolve it before the file load.
	dir := resolveDir(flags)
	cfgFile := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(cfgFile); err != nil {
		return nil, fmt.Errorf("unable to find config file %s: %w", cfgFile, err)
	}
	if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
	}

	// 3. Environment variables: EDIMPORT_VAT_PERCENT -> vat_percent
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, highest priority. Only explicitly set flags override.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Dir = dir
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// resolveDir picks the data directory from the --dir flag, the EDIMPORT_DIR
// environment variable, or the current directory, in that order.
func resolveDir(flags *pflag.FlagSet) string {
	if flags != nil && flags.Changed("dir") {
		if v, _ := flags.GetString("dir"); v != "" {
			return filepath.Clean(v)
		}
	}
	if v := os.Getenv(EnvPrefix + "DIR"); v != "" {
		return filepath.Clean(v)
	}
	return "."
}
