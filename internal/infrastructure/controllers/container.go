package controllers

import (
	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewPromoteController); err != nil {
		return err
	}
	if err := container.Provide(NewReportController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	promoteController *PromoteController,
	reportController *ReportController,
) *[]entities.Controller {
	return &[]entities.Controller{
		promoteController,
		reportController,
	}
}
