package gitstatus_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cargo-easydep/internal/infrastructure/repositories/gitstatus"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func commitFile(t *testing.T, dir string, repo *git.Repository, name string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("[workspace]\n"), 0o644))

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add(name)
	require.NoError(t, err)
	_, err = worktree.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)
}

func TestWorktreeRepository_HasUncommittedChanges(t *testing.T) {
	t.Parallel()

	t.Run("should report a clean repository as clean", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		commitFile(t, dir, repo, "Cargo.toml")

		// when
		dirty, err := gitstatus.NewWorktreeRepository().HasUncommittedChanges(dir)

		// then
		require.NoError(t, err)
		assert.False(t, dirty)
	})

	t.Run("should report untracked files as dirty", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		commitFile(t, dir, repo, "Cargo.toml")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.toml"), []byte("x"), 0o644))

		// when
		dirty, err := gitstatus.NewWorktreeRepository().HasUncommittedChanges(dir)

		// then
		require.NoError(t, err)
		assert.True(t, dirty)
	})

	t.Run("should report modified tracked files as dirty", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		commitFile(t, dir, repo, "Cargo.toml")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("changed"), 0o644))

		// when
		dirty, err := gitstatus.NewWorktreeRepository().HasUncommittedChanges(dir)

		// then
		require.NoError(t, err)
		assert.True(t, dirty)
	})

	t.Run("should detect the repository from a nested workspace root", func(t *testing.T) {
		t.Parallel()

		// given - the workspace lives below the repository root
		dir, repo := initRepo(t)
		commitFile(t, dir, repo, "Cargo.toml")
		nested := filepath.Join(dir, "workspace")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(nested, "Cargo.toml"), []byte("x"), 0o644))

		// when
		dirty, err := gitstatus.NewWorktreeRepository().HasUncommittedChanges(nested)

		// then
		require.NoError(t, err)
		assert.True(t, dirty)
	})

	t.Run("should treat a directory outside any repository as clean", func(t *testing.T) {
		t.Parallel()

		// when
		dirty, err := gitstatus.NewWorktreeRepository().HasUncommittedChanges(t.TempDir())

		// then
		require.NoError(t, err)
		assert.False(t, dirty)
	})
}
