package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/cargo-easydep/internal/infrastructure/repositories/cargo"
	"github.com/rios0rios0/cargo-easydep/internal/infrastructure/repositories/gitstatus"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(cargo.NewMetadataRepository); err != nil {
		return err
	}
	if err := container.Provide(cargo.NewManifestRepository); err != nil {
		return err
	}
	if err := container.Provide(gitstatus.NewWorktreeRepository); err != nil {
		return err
	}

	return nil
}
