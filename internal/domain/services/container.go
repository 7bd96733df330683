package services

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all engine stage providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewAggregator); err != nil {
		return err
	}
	if err := container.Provide(NewConflictResolver); err != nil {
		return err
	}
	if err := container.Provide(NewFeatureReconciler); err != nil {
		return err
	}
	if err := container.Provide(NewRewritePlanner); err != nil {
		return err
	}

	return nil
}
