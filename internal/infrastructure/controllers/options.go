package controllers

import (
	"os"
	"strconv"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cargo-easydep/config"
	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
)

// Environment variable bindings matching the original cargo-easy-dep CLI.
const (
	envMinOccurrences = "CARGO_EASY_DEP_MIN_OCCURRENCES"
	envWorkspaceRoot  = "CARGO_EASY_DEP_WORKSPACE_ROOT"
	envQuiet          = "CARGO_EASY_DEP_QUIET"
)

// resolveOptions builds PromoteOptions from flags, environment fallbacks,
// and the optional config file. Flags win over environment variables, which
// win over the config file, which wins over defaults.
func resolveOptions(cmd *cobra.Command, args []string) entities.PromoteOptions {
	opts := entities.PromoteOptions{
		WorkspaceRoot:  ".",
		MinOccurrences: entities.DefaultMinOccurrences,
	}

	if cfg := loadConfigFile(cmd); cfg != nil {
		opts.Exclude = cfg.Exclude
		if cfg.MinOccurrences > 0 {
			opts.MinOccurrences = cfg.MinOccurrences
		}
	}

	if value := os.Getenv(envWorkspaceRoot); value != "" {
		opts.WorkspaceRoot = value
	}
	if value := os.Getenv(envMinOccurrences); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			opts.MinOccurrences = parsed
		} else {
			logger.Warnf("Ignoring invalid %s=%q: %v", envMinOccurrences, value, err)
		}
	}
	if value := os.Getenv(envQuiet); value == "true" || value == "1" {
		opts.Quiet = true
	}

	if cmd.Flags().Changed("min-occurrences") {
		opts.MinOccurrences, _ = cmd.Flags().GetInt("min-occurrences")
	}
	if cmd.Flags().Changed("workspace-root") {
		opts.WorkspaceRoot, _ = cmd.Flags().GetString("workspace-root")
	}
	if cmd.Flags().Changed("quiet") {
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")
	}

	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	opts.Verbose, _ = cmd.Flags().GetBool("verbose")

	// A positional path argument overrides the workspace root, mirroring
	// `cargo-easydep [path]`.
	if len(args) > 0 {
		opts.WorkspaceRoot = args[0]
	}

	applyLogLevel(opts)
	return opts
}

func loadConfigFile(cmd *cobra.Command) *config.Config {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			return nil // the config file is optional
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Warnf("Ignoring config file %q: %v", path, err)
		return nil
	}

	logger.Debugf("Using config file: %s", path)
	return cfg
}

// applyLogLevel maps quiet/verbose onto the logger. Neither flag affects
// the computed plan.
func applyLogLevel(opts entities.PromoteOptions) {
	switch {
	case opts.Quiet:
		logger.SetLevel(logger.ErrorLevel)
	case opts.Verbose:
		logger.SetLevel(logger.DebugLevel)
	}
}
