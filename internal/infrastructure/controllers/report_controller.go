package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cargo-easydep/internal/domain/commands"
	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
)

// ReportController handles the "report" subcommand.
type ReportController struct {
	command commands.Report
}

// NewReportController creates a new ReportController.
func NewReportController(command commands.Report) *ReportController {
	return &ReportController{command: command}
}

// GetBind returns the Cobra command metadata for the report controller.
func (it *ReportController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "report [path]",
		Short: "List promotion candidates without rewriting anything",
		Long: `Analyze the workspace and list which dependency groups would be
promoted, which source each promotion would use, and why the remaining
groups are skipped (below the occurrence threshold, or contributors with
incompatible sources). No manifest is modified.`,
	}
}

// Execute prints the candidate report.
func (it *ReportController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	opts := resolveOptions(cmd, args)
	if err := it.command.Execute(ctx, opts); err != nil {
		logger.Errorf("Report failed: %v", err)
	}
}
