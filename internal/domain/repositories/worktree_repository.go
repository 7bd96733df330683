package repositories

// WorktreeRepository inspects the version-control state of the workspace.
// Used to warn before rewriting manifests in a dirty worktree.
type WorktreeRepository interface {
	// HasUncommittedChanges reports whether the repository containing the
	// workspace root has uncommitted changes. Returns false without error
	// when the workspace is not inside a Git repository.
	HasUncommittedChanges(workspaceRoot string) (bool, error)
}
