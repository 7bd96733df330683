package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cargo-easydep/internal/domain/commands"
	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
)

// PromoteController handles the "promote" subcommand (also bound to the
// bare root invocation with an optional path argument).
type PromoteController struct {
	command commands.Promote
}

// NewPromoteController creates a new PromoteController.
func NewPromoteController(command commands.Promote) *PromoteController {
	return &PromoteController{command: command}
}

// GetBind returns the Cobra command metadata for the promote controller.
func (it *PromoteController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "promote [path]",
		Short: "Promote shared dependencies to workspace level",
		Long: `Promote dependencies shared by several workspace members into the
root manifest's [workspace.dependencies] table.

Each promoted member declaration becomes a workspace reference carrying an
explicit default-features/features override, so every member's resolved
feature set is identical before and after the rewrite. Running the command
again on its own output changes nothing.`,
	}
}

// Execute runs the promotion.
func (it *PromoteController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	opts := resolveOptions(cmd, args)
	if err := it.command.Execute(ctx, opts); err != nil {
		logger.Errorf("Promotion failed: %v", err)
		return
	}

	if !opts.DryRun {
		logger.Info("Successfully updated all Cargo.toml files with workspace dependencies.")
	}
}
