package gitstatus

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/rios0rios0/cargo-easydep/internal/domain/repositories"
)

// WorktreeRepository checks Git worktree state via go-git.
type WorktreeRepository struct{}

// NewWorktreeRepository creates a new Git worktree repository.
func NewWorktreeRepository() repositories.WorktreeRepository {
	return &WorktreeRepository{}
}

// HasUncommittedChanges reports whether the repository enclosing the
// workspace root has a dirty worktree. A workspace outside any Git
// repository is treated as clean.
func (it *WorktreeRepository) HasUncommittedChanges(workspaceRoot string) (bool, error) {
	repo, err := git.PlainOpenWithOptions(workspaceRoot, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open git repository: %w", err)
	}

	worktree, wtErr := repo.Worktree()
	if wtErr != nil {
		return false, fmt.Errorf("failed to open worktree: %w", wtErr)
	}

	status, statusErr := worktree.Status()
	if statusErr != nil {
		return false, fmt.Errorf("failed to read worktree status: %w", statusErr)
	}

	return !status.IsClean(), nil
}
