// Package config loads daypick configuration: defaults, an optional
// .daypick/config.yaml, DAYPICK_* environment overrides (optionally from a
// .env file), and CLI flags, in ascending precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents daypick configuration options
type Config struct {
	// DayCap is the maximum number of items kept per calendar day
	DayCap int `yaml:"day_cap"`

	// OutputDir is where reports are written and selected files are copied
	OutputDir string `yaml:"output_dir"`

	// MaxConcurrency bounds parallel exclusion probes and per-day selection (0 = default)
	MaxConcurrency int `yaml:"max_concurrency"`

	// MinSize drops scanned files smaller than this many bytes (0 = default)
	MinSize int64 `yaml:"min_size"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// DryRun proposes the selection and copy plan without copying anything
	DryRun bool `yaml:"dry_run"`

	// ExifFallback reads EXIF metadata when a filename has no parseable timestamp
	ExifFallback bool `yaml:"exif_fallback"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		DayCap:         50,
		OutputDir:      filepath.Join(os.TempDir(), "daypick"),
		MaxConcurrency: 4,
		MinSize:        100 << 10, // 100 KiB
		LogLevel:       "info",
		DryRun:         true, // Never copy unless asked to execute
		ExifFallback:   false,
	}
}

// LoadConfig loads configuration from the specified YAML file path.
// A missing file returns the defaults without error; a malformed file is an
// error (structural config failures abort the run before any selection).
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Re-apply defaults for fields the file zeroed out implicitly.
	if cfg.DayCap == 0 {
		cfg.DayCap = 50
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(os.TempDir(), "daypick")
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 4
	}
	if cfg.MinSize == 0 {
		cfg.MinSize = 100 << 10
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .daypick/config.yaml in the
// given directory, then applies DAYPICK_* environment overrides. A .env file
// in the directory (or .daypick/.env) is loaded first if present.
func LoadConfigFromDir(dir string) (*Config, error) {
	// Ignore load errors: a missing .env file is the normal case.
	godotenv.Load(filepath.Join(dir, ".daypick", ".env"))
	godotenv.Load(filepath.Join(dir, ".env"))

	cfg, err := LoadConfig(filepath.Join(dir, ".daypick", "config.yaml"))
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides config fields from DAYPICK_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("DAYPICK_DAY_CAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DAYPICK_DAY_CAP %q: %w", v, err)
		}
		c.DayCap = n
	}
	if v := os.Getenv("DAYPICK_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("DAYPICK_MAX_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DAYPICK_MAX_CONCURRENCY %q: %w", v, err)
		}
		c.MaxConcurrency = n
	}
	if v := os.Getenv("DAYPICK_MIN_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid DAYPICK_MIN_SIZE %q: %w", v, err)
		}
		c.MinSize = n
	}
	if v := os.Getenv("DAYPICK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// MergeWithFlags merges CLI flags into the configuration. Non-nil flag
// values override configuration values, so flags take precedence over both
// the config file and the environment.
func (c *Config) MergeWithFlags(dayCap *int, outputDir *string, maxConcurrency *int, minSize *int64, dryRun *bool, exifFallback *bool) {
	if dayCap != nil {
		c.DayCap = *dayCap
	}
	if outputDir != nil {
		c.OutputDir = *outputDir
	}
	if maxConcurrency != nil {
		c.MaxConcurrency = *maxConcurrency
	}
	if minSize != nil {
		c.MinSize = *minSize
	}
	if dryRun != nil {
		c.DryRun = *dryRun
	}
	if exifFallback != nil {
		c.ExifFallback = *exifFallback
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.DayCap < 1 {
		return fmt.Errorf("day_cap must be >= 1, got %d", c.DayCap)
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be >= 0, got %d", c.MaxConcurrency)
	}
	if c.MinSize < 0 {
		return fmt.Errorf("min_size must be >= 0, got %d", c.MinSize)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}
