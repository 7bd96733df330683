package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cargo-easydep/internal"
	"github.com/rios0rios0/cargo-easydep/internal/infrastructure/controllers"
)

func buildRootCommand(promoteController *controllers.PromoteController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "cargo-easydep [path]",
		Short: "Promote shared dependencies to the Cargo workspace level",
		Long: `Analyzes a Cargo workspace, promotes dependencies declared by several
members into the root [workspace.dependencies] table, and rewrites each
member's declaration into a workspace reference.

Per-member feature and default-features overrides are written explicitly, so
every member resolves the exact same feature set before and after the
rewrite. Path dependencies are never promoted, and members pinning a
different source (e.g. a git fork) leave their group untouched.

Usage modes:
  cargo-easydep .               Promote in the current workspace
  cargo-easydep /path/to/ws     Promote in a specific workspace
  cargo-easydep report          List candidates without writing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			promoteController.Execute(command, args)
			return nil
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().IntP("min-occurrences", "m", 2,
		"Minimum number of members that must share a dependency before it is promoted")
	cmd.PersistentFlags().StringP("workspace-root", "w", ".",
		"Path to the workspace root (defaults to current directory)")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect .easydep.yaml)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show the rewrite plan without modifying any manifest")
	cmd.PersistentFlags().BoolP("quiet", "q", false,
		"Suppress all output except errors")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.MaximumNArgs(1),
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	promoteController := injectPromoteController()
	cobraRoot := buildRootCommand(promoteController)

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'cargo-easydep': %s", err)
	}
}
