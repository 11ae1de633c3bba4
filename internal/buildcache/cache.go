// Package buildcache lets oasts skip regeneration when nothing changed.
//
// A run is skipped only when the input document, the effective configuration
// and the generated file are all exactly as they were after the last
// successful run. Any mismatch regenerates from scratch.
package buildcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// SchemaVersion is bumped when the cache format or the generated output
// format changes. A mismatch forces regeneration, so binary upgrades don't
// keep stale outputs.
const SchemaVersion = 1

// FileName is the cache file name, stored next to the generated file.
const FileName = ".oasts-cache"

// Cache records what was true when generation last succeeded.
type Cache struct {
	// V is the schema version. Must match SchemaVersion or cache is invalid.
	V int `json:"v"`

	// InputHash is the SHA-256 hex digest of the input document.
	InputHash string `json:"inputHash"`

	// ConfigHash fingerprints the settings that affect the output.
	ConfigHash string `json:"configHash"`

	// Output is the generated file and OutputHash its digest when written.
	// A hand-edited or deleted output invalidates the cache.
	Output     string `json:"output"`
	OutputHash string `json:"outputHash"`
}

// CachePath returns the cache file path for a generated file.
func CachePath(output string) string {
	return filepath.Join(filepath.Dir(output), FileName)
}

// Load reads and parses a cache file from disk.
// Returns nil if the file doesn't exist, is unreadable, or is invalid JSON.
// Callers should treat nil as a cache miss.
func Load(path string) *Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}

	return &c
}

// Save writes the cache to disk atomically (write to temp, rename).
// A failed save only means the next run regenerates.
func Save(path string, cache *Cache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming cache file: %w", err)
	}

	return nil
}

// Delete removes the cache file from disk. Errors are ignored (file may not exist).
func Delete(path string) {
	os.Remove(path)
}

// IsValid checks whether the cache can be trusted to skip generation.
// ALL of the following must hold:
//
//  1. Schema version matches (catches binary upgrades)
//  2. Input and config hashes match the current run
//  3. The cache was written for the same output file
//  4. That file still exists with the content that was generated
func (c *Cache) IsValid(inputHash, configHash, output string) bool {
	if c == nil {
		return false
	}
	if c.V != SchemaVersion {
		return false
	}
	if inputHash == "" || c.InputHash != inputHash || c.ConfigHash != configHash {
		return false
	}
	if !samePath(c.Output, output) {
		return false
	}
	return c.OutputHash != "" && HashFile(output) == c.OutputHash
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

// HashFile computes the SHA-256 hex digest of a file's contents.
// Returns empty string if the file doesn't exist or can't be read.
func HashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return HashBytes(data)
}

// HashBytes computes the SHA-256 hex digest of data.
func HashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// New creates a new Cache with the current schema version.
func New(inputHash, configHash, output, outputContent string) *Cache {
	return &Cache{
		V:          SchemaVersion,
		InputHash:  inputHash,
		ConfigHash: configHash,
		Output:     output,
		OutputHash: HashBytes([]byte(outputContent)),
	}
}
