package entities

// RewriteOpKind identifies the two edit operations the planner emits.
type RewriteOpKind string

const (
	// OpUpsertWorkspaceDependency inserts or overwrites one entry of the
	// root manifest's workspace-dependencies table (root manifest only).
	OpUpsertWorkspaceDependency RewriteOpKind = "upsert-workspace-dependency"
	// OpReplaceWithWorkspaceRef replaces a member's dependency declaration
	// with a workspace reference plus explicit overrides (member only).
	OpReplaceWithWorkspaceRef RewriteOpKind = "replace-with-workspace-ref"
)

// MemberDependencyRef is the content of a rewritten member declaration:
// workspace = true plus the member's verbatim feature override.
type MemberDependencyRef struct {
	Features        []string
	DefaultFeatures bool
}

// RewriteOp is one edit scoped to exactly one manifest file. Ops targeting
// different files carry no ordering dependency on each other, so a writer
// may apply them file by file in any order.
type RewriteOp struct {
	Kind           RewriteOpKind
	ManifestPath   string
	DependencyName string
	DependencyKind DependencyKind

	// Workspace is set for OpUpsertWorkspaceDependency.
	Workspace *WorkspaceDependency

	// Member is set for OpReplaceWithWorkspaceRef.
	Member *MemberDependencyRef
}
