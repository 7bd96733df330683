//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
	"github.com/rios0rios0/cargo-easydep/internal/domain/repositories"
)

// SpyManifestRepository implements repositories.ManifestRepository and
// records every applied op without touching the filesystem.
type SpyManifestRepository struct {
	ApplyErr error

	// AppliedOps collects the ops of every Apply call, flattened.
	AppliedOps []entities.RewriteOp
	// ApplyCalls counts Apply invocations.
	ApplyCalls int
}

var _ repositories.ManifestRepository = (*SpyManifestRepository)(nil)

func (s *SpyManifestRepository) Apply(
	_ context.Context,
	ops []entities.RewriteOp,
) (int, error) {
	s.ApplyCalls++
	s.AppliedOps = append(s.AppliedOps, ops...)
	if s.ApplyErr != nil {
		return 0, s.ApplyErr
	}

	files := make(map[string]bool)
	for _, op := range ops {
		files[op.ManifestPath] = true
	}
	return len(files), nil
}

// StubWorktreeRepository implements repositories.WorktreeRepository with a
// fixed answer.
type StubWorktreeRepository struct {
	Dirty     bool
	StatusErr error
}

var _ repositories.WorktreeRepository = (*StubWorktreeRepository)(nil)

func (s *StubWorktreeRepository) HasUncommittedChanges(_ string) (bool, error) {
	return s.Dirty, s.StatusErr
}
