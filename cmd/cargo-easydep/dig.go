package main

import (
	"github.com/rios0rios0/cargo-easydep/internal"
	"github.com/rios0rios0/cargo-easydep/internal/infrastructure/controllers"
	"go.uber.org/dig"
)

func injectAppContext() *internal.AppInternal {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectPromoteController() *controllers.PromoteController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var promoteController *controllers.PromoteController
	if err := container.Invoke(func(pc *controllers.PromoteController) {
		promoteController = pc
	}); err != nil {
		panic(err)
	}

	return promoteController
}
