//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
	"github.com/rios0rios0/cargo-easydep/internal/domain/repositories"
)

// StubMetadataRepository implements repositories.MetadataRepository with a
// fixed snapshot.
type StubMetadataRepository struct {
	Snapshot *entities.WorkspaceSnapshot
	LoadErr  error

	// LoadedRoots records every workspace root requested.
	LoadedRoots []string
}

var _ repositories.MetadataRepository = (*StubMetadataRepository)(nil)

func (s *StubMetadataRepository) LoadSnapshot(
	_ context.Context,
	workspaceRoot string,
) (*entities.WorkspaceSnapshot, error) {
	s.LoadedRoots = append(s.LoadedRoots, workspaceRoot)
	return s.Snapshot, s.LoadErr
}
