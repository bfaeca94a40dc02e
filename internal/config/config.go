// Package config handles refsift configuration.
//
// Settings layer in increasing precedence: built-in defaults, the optional
// .refsift.yml config file, REFSIFT_* environment variables, command-line
// flags (applied by the CLI).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for a run.
type Config struct {
	MaxChunkMB     int    `yaml:"max_chunk_mb,omitempty"`
	TitleColumn    string `yaml:"title_column,omitempty"`
	AbstractColumn string `yaml:"abstract_column,omitempty"`
	OutputDir      string `yaml:"output_dir,omitempty"`
	Base           string `yaml:"base,omitempty"`
}

const (
	// ConfigFile is the per-directory config file name.
	ConfigFile = ".refsift.yml"

	DefaultMaxChunkMB     = 90
	DefaultTitleColumn    = "title"
	DefaultAbstractColumn = "abstract"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxChunkMB:     DefaultMaxChunkMB,
		TitleColumn:    DefaultTitleColumn,
		AbstractColumn: DefaultAbstractColumn,
		OutputDir:      ".",
	}
}

// Load reads the config file at path and applies environment overrides on
// top of the defaults. A missing file is not an error: when path is empty
// and no .refsift.yml exists in the working directory, defaults plus
// environment are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = ConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, carry on with defaults.
	default:
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if cfg.MaxChunkMB <= 0 {
		return cfg, fmt.Errorf("max_chunk_mb must be positive, got %d", cfg.MaxChunkMB)
	}
	return cfg, nil
}

// applyEnv overlays REFSIFT_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("REFSIFT_MAX_CHUNK_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REFSIFT_MAX_CHUNK_MB: invalid value %q", v)
		}
		c.MaxChunkMB = n
	}
	if v := os.Getenv("REFSIFT_TITLE_COLUMN"); v != "" {
		c.TitleColumn = v
	}
	if v := os.Getenv("REFSIFT_ABSTRACT_COLUMN"); v != "" {
		c.AbstractColumn = v
	}
	if v := os.Getenv("REFSIFT_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	return nil
}

// MaxBytes returns the chunk size limit in bytes.
func (c Config) MaxBytes() int {
	return c.MaxChunkMB * 1024 * 1024
}
