// Package config holds runtime configuration: defaults, the optional YAML
// config file, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// FailurePolicy decides what happens to the rest of a batch after one file fails.
type FailurePolicy string

const (
	FailureAbort    FailurePolicy = "abort"    // Stop at the first failed file (default).
	FailureContinue FailurePolicy = "continue" // Run every file, report all failures at the end.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultConfigName is looked up in the root directory when --config is not given.
const DefaultConfigName = ".glbcrunch.yaml"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by [LoadFile] and [ParseFlags], before being passed (by pointer) to
// packages that need it.
type Config struct {
	// Root directory to scan (positional arg, default ".").
	Root string

	// Discovery.
	MaxDepth       int  // Default: 4. Files directly in Root are depth 0.
	SkipUnreadable bool // Log and skip unreadable subdirectories instead of failing.

	// Compressor.
	Tool               string   // Default: "gltf-transform".
	TextureCommand     string   // Default: "etc1s".
	GeometryCommand    string   // Default: "draco".
	TextureArgs        []string // Extra args appended to the texture stage.
	GeometryArgs       []string // Extra args appended to the geometry stage.
	IntermediateSuffix string   // Default: "-etc1s".

	// Batch behavior.
	OnFailure FailurePolicy // Default: "abort".
	AssumeYes bool          // Select every discovered file without prompting.
	DryRun    bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Probe the compressor and exit.
	Analyze   bool      // Print a size report of discovered files and exit.

	// ConfigFile is the YAML file that was loaded, if any.
	ConfigFile string
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Root:               ".",
		MaxDepth:           4,
		Tool:               "gltf-transform",
		TextureCommand:     "etc1s",
		GeometryCommand:    "draco",
		IntermediateSuffix: "-etc1s",
		OnFailure:          FailureAbort,
		ColorMode:          ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and value ranges. When not in CheckOnly mode
// it also requires a root directory.
func (c *Config) Validate() error {
	switch c.OnFailure {
	case FailureAbort, FailureContinue:
		// valid
	default:
		return errors.New("invalid failure policy (use 'abort' or 'continue')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative (got %d)", c.MaxDepth)
	}
	if strings.TrimSpace(c.Tool) == "" {
		return errors.New("compressor tool must not be empty")
	}
	if strings.TrimSpace(c.TextureCommand) == "" || strings.TrimSpace(c.GeometryCommand) == "" {
		return errors.New("texture and geometry commands must not be empty")
	}
	if err := validateSuffix(c.IntermediateSuffix); err != nil {
		return err
	}

	if c.CheckOnly {
		return nil
	}
	if c.Root == "" {
		return errors.New("need a root directory")
	}
	return nil
}

// validateSuffix rejects suffixes that would place the intermediate file in
// another directory or make it equal to the input path.
func validateSuffix(s string) error {
	if s == "" {
		return errors.New("intermediate suffix must not be empty")
	}
	if strings.ContainsRune(s, '/') || strings.ContainsRune(s, filepath.Separator) {
		return fmt.Errorf("intermediate suffix %q must not contain a path separator", s)
	}
	return nil
}
