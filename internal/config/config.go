package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/tsgonest/oasts/internal/diagnostic"
	"github.com/tsgonest/oasts/internal/generate"
	"github.com/tsgonest/oasts/internal/transform"
)

// Config represents the oasts configuration.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Input  string `mapstructure:"input" json:"input"`
	Output string `mapstructure:"output" json:"output"`

	ImmutableTypes       bool `mapstructure:"immutableTypes" json:"immutableTypes"`
	DefaultNonNullable   bool `mapstructure:"defaultNonNullable" json:"defaultNonNullable"`
	AdditionalProperties bool `mapstructure:"additionalProperties" json:"additionalProperties"`
	SupportArrayLength   bool `mapstructure:"supportArrayLength" json:"supportArrayLength"`
	ArrayLengthThreshold int  `mapstructure:"arrayLengthThreshold" json:"arrayLengthThreshold"`
	// Version forces the schema dialect (2 or 3). 0 takes it from the document.
	Version int `mapstructure:"version" json:"version"`

	// Formats maps a "format" keyword value to a TypeScript type,
	// e.g. date-time: Date.
	Formats map[string]string `mapstructure:"formats" json:"formats,omitempty"`

	Strict bool `mapstructure:"strict" json:"strict"` // warnings become errors
	Quiet  bool `mapstructure:"quiet" json:"quiet"`   // suppress warnings
}

const (
	DefaultOutput = "types.ts"
)

var (
	ErrInvalidOutput    = errors.New("output must be a .ts file")
	ErrInvalidVersion   = errors.New("version must be 0, 2 or 3")
	ErrInvalidThreshold = errors.New("arrayLengthThreshold must not be negative")
	ErrInvalidFormat    = errors.New("formats entries must map to a non-empty type")
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Output:               DefaultOutput,
		ArrayLengthThreshold: transform.DefaultArrayLengthThreshold,
	}
}

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	if c.Output == "" || !strings.HasSuffix(c.Output, ".ts") {
		return fmt.Errorf("%w, got %q", ErrInvalidOutput, c.Output)
	}
	if c.Version != 0 && c.Version != 2 && c.Version != 3 {
		return fmt.Errorf("%w, got %d", ErrInvalidVersion, c.Version)
	}
	if c.ArrayLengthThreshold < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidThreshold, c.ArrayLengthThreshold)
	}
	for format, tsType := range c.Formats {
		if strings.TrimSpace(tsType) == "" {
			return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
		}
	}
	return nil
}

// TransformOptions builds the transform options this config describes.
func (c *Config) TransformOptions(diags *diagnostic.Collector) transform.Options {
	return transform.Options{
		ImmutableTypes:       c.ImmutableTypes,
		DefaultNonNullable:   c.DefaultNonNullable,
		AdditionalProperties: c.AdditionalProperties,
		Version:              c.Version,
		SupportArrayLength:   c.SupportArrayLength,
		ArrayLengthThreshold: c.ArrayLengthThreshold,
		Formatter:            generate.FormatTypes(c.Formats),
		Diagnostics:          diags,
	}
}

// Fingerprint returns a stable hash of every setting that affects the
// generated output.
func (c *Config) Fingerprint() string {
	relevant := *c
	relevant.Input, relevant.Output = "", ""
	relevant.Strict, relevant.Quiet = false, false

	// Map keys are emitted sorted, so equal configs hash equally.
	data, err := json.Marshal(relevant)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
