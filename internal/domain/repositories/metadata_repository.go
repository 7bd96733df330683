package repositories

import (
	"context"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
)

// MetadataRepository loads an immutable snapshot of the workspace metadata:
// the root manifest's workspace-dependencies table and every member's
// declared dependencies. The engine itself never touches the filesystem.
type MetadataRepository interface {
	// LoadSnapshot reads the workspace rooted at the given directory.
	// Members are returned sorted by manifest path and records carry a
	// deterministic first-seen order.
	LoadSnapshot(ctx context.Context, workspaceRoot string) (*entities.WorkspaceSnapshot, error)
}
