package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
)

func TestSource_CompatibleWith(t *testing.T) {
	t.Parallel()

	t.Run("should treat registry sources as compatible regardless of requirement", func(t *testing.T) {
		t.Parallel()

		a := entities.RegistrySource("1.0")
		b := entities.RegistrySource("2.0")

		assert.True(t, a.CompatibleWith(b))
	})

	t.Run("should require git sources to agree on url and reference", func(t *testing.T) {
		t.Parallel()

		base := entities.GitSource("https://github.com/serde-rs/serde", "tag=v1")

		assert.True(t, base.CompatibleWith(entities.GitSource("https://github.com/serde-rs/serde", "tag=v1")))
		assert.False(t, base.CompatibleWith(entities.GitSource("https://github.com/fork/serde", "tag=v1")))
		assert.False(t, base.CompatibleWith(entities.GitSource("https://github.com/serde-rs/serde", "branch=v1")))
	})

	t.Run("should never consider path sources compatible", func(t *testing.T) {
		t.Parallel()

		a := entities.PathSource("../util")
		b := entities.PathSource("../util")

		assert.False(t, a.CompatibleWith(b))
	})

	t.Run("should never mix variants", func(t *testing.T) {
		t.Parallel()

		registry := entities.RegistrySource("1.0")
		git := entities.GitSource("https://github.com/serde-rs/serde", "")

		assert.False(t, registry.CompatibleWith(git))
		assert.False(t, git.CompatibleWith(registry))
	})
}

func TestPromoteOptions_Validate(t *testing.T) {
	t.Parallel()

	t.Run("should accept a threshold of one", func(t *testing.T) {
		t.Parallel()

		opts := entities.PromoteOptions{MinOccurrences: 1}

		assert.NoError(t, opts.Validate())
	})

	t.Run("should reject a zero threshold", func(t *testing.T) {
		t.Parallel()

		opts := entities.PromoteOptions{MinOccurrences: 0}

		assert.Error(t, opts.Validate())
	})
}
