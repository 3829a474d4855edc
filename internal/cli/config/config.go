// Package config loads CLI configuration from defaults, an optional
// pylower.yaml file, PYLOWER_* environment variables, and command-line
// flags, in increasing order of precedence.
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

// Config holds the resolved CLI configuration.
type Config struct {
	// TargetVersion is the language version lowering is gated against.
	TargetVersion string `koanf:"target_version"`
	// Spans includes source spans in the AST dump.
	Spans bool `koanf:"spans"`
	// Verbose enables debug logging and a parse-tree dump.
	Verbose bool `koanf:"verbose"`
}

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
)

// defaults are the baseline values before file, env, and flag overrides.
var defaults = map[string]any{
	"target_version": "3.13",
	"spans":          false,
	"verbose":        false,
}

// findConfigFile finds the config file to use.
// Priority: explicit path > pylower.yaml > pylower.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("pylower.yaml"); err == nil {
		return "pylower.yaml"
	}
	if _, err := os.Stat("pylower.yml"); err == nil {
		return "pylower.yml"
	}
	return ""
}

// Load resolves the configuration. The flag set may be nil.
func Load(explicitFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	configFileUsed = ""

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(explicitFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicitFile != "" {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else {
			configFileUsed = path
		}
	}

	if err := k.Load(env.Provider("PYLOWER_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PYLOWER_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		// Flag names use dashes; config keys use underscores.
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// FileUsed returns the path of the config file that was loaded, if any.
func FileUsed() string {
	return configFileUsed
}
