package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tsgonest/oasts/internal/transform"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// ValidateDetailed performs thorough config validation with suggestions.
func (c *Config) ValidateDetailed() *ValidationResult {
	result := &ValidationResult{}

	if err := c.Validate(); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	// Input is optional here; the CLI argument may supply it.
	if c.Input != "" {
		switch strings.ToLower(filepath.Ext(c.Input)) {
		case ".json", ".yaml", ".yml":
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("input: extension %q is unusual, expected .json, .yaml or .yml; the format will be sniffed", filepath.Ext(c.Input)))
		}
	}

	if strings.HasSuffix(c.Output, ".d.ts") {
		result.Warnings = append(result.Warnings,
			"output: generated files contain only types, a plain .ts extension is enough")
	}

	if !c.SupportArrayLength && c.ArrayLengthThreshold != transform.DefaultArrayLengthThreshold {
		result.Warnings = append(result.Warnings,
			"arrayLengthThreshold has no effect unless supportArrayLength is enabled")
	}

	if c.Strict && c.Quiet {
		result.Warnings = append(result.Warnings,
			"strict has no effect while quiet is set: warnings are dropped before they can fail the run")
	}

	for format, tsType := range c.Formats {
		if strings.ContainsAny(tsType, ";{}") && !strings.HasPrefix(strings.TrimSpace(tsType), "{") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("formats.%s: %q does not look like a TypeScript type", format, tsType))
		}
	}

	return result
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}
