package repositories

import (
	"context"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
)

// ManifestRepository applies planned rewrite operations to manifest files.
// Ops are already partitioned per target file, so implementations may
// process files independently.
type ManifestRepository interface {
	// Apply writes every op and returns the number of distinct files
	// modified. An empty op list writes nothing.
	Apply(ctx context.Context, ops []entities.RewriteOp) (int, error)
}
