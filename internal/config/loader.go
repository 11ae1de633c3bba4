package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension. Both
// oasts.config.yaml and oasts.config.json are found.
const configName = "oasts.config"

// envPrefix is the environment variable prefix, e.g. OASTS_IMMUTABLETYPES.
const envPrefix = "OASTS"

// Load reads configuration from defaults, the config file and OASTS_*
// environment variables, in increasing precedence. If path is non-empty it is
// used as the config file; otherwise oasts.config.* is looked up in dir.
// A missing config file is not an error when searching.
func Load(path, dir string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", v.ConfigFileUsed(), err)
	}

	if err := cfg.Validate(); err != nil {
		if used := v.ConfigFileUsed(); used != "" {
			return nil, fmt.Errorf("invalid config in %q: %w", used, err)
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// FileUsed returns the config file Load would read for the same arguments,
// or "" when there is none.
func FileUsed(path, dir string) string {
	if path != "" {
		return path
	}
	v := viper.New()
	v.SetConfigName(configName)
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return ""
	}
	return v.ConfigFileUsed()
}

func applyDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("input", d.Input)
	v.SetDefault("output", d.Output)
	v.SetDefault("immutableTypes", d.ImmutableTypes)
	v.SetDefault("defaultNonNullable", d.DefaultNonNullable)
	v.SetDefault("additionalProperties", d.AdditionalProperties)
	v.SetDefault("supportArrayLength", d.SupportArrayLength)
	v.SetDefault("arrayLengthThreshold", d.ArrayLengthThreshold)
	v.SetDefault("version", d.Version)
	v.SetDefault("formats", map[string]string{})
	v.SetDefault("strict", d.Strict)
	v.SetDefault("quiet", d.Quiet)
}
