package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/refsift/internal/config"
	"github.com/matsen/refsift/internal/dataset"
)

// loadConfig assembles the effective configuration: defaults, config file,
// environment, then any flags set on the command. Exits on config errors.
func loadConfig(cmd *cobra.Command, configPath string) config.Config {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("max-mb") {
		cfg.MaxChunkMB, _ = flags.GetInt("max-mb")
		if cfg.MaxChunkMB <= 0 {
			exitWithError(ExitConfigError, "--max-mb must be positive, got %d", cfg.MaxChunkMB)
		}
	}
	if flags.Changed("title-col") {
		cfg.TitleColumn, _ = flags.GetString("title-col")
	}
	if flags.Changed("abstract-col") {
		cfg.AbstractColumn, _ = flags.GetString("abstract-col")
	}
	if flags.Changed("out-dir") {
		cfg.OutputDir, _ = flags.GetString("out-dir")
	}
	if flags.Changed("base") {
		cfg.Base, _ = flags.GetString("base")
	}
	return cfg
}

// loadDataset loads the input files, mapping loader failures to exit codes.
func loadDataset(paths []string, cfg config.Config) *dataset.Dataset {
	ds, err := dataset.Load(paths, cfg.TitleColumn)
	if err != nil {
		var schemaErr *dataset.SchemaError
		var encErr *dataset.EncodingError
		if errors.As(err, &schemaErr) || errors.As(err, &encErr) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}
	return ds
}

// outputBase returns the configured part-file base name, defaulting to the
// first input file's stem.
func outputBase(cfg config.Config, paths []string) string {
	if cfg.Base != "" {
		return cfg.Base
	}
	name := filepath.Base(paths[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}
