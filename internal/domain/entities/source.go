package entities

// SourceKind identifies where a dependency comes from.
type SourceKind string

const (
	// SourceRegistry is a dependency pulled from the package registry by
	// version requirement.
	SourceRegistry SourceKind = "registry"
	// SourceGit is a dependency pinned to a Git repository reference.
	SourceGit SourceKind = "git"
	// SourcePath is a dependency resolved from a local filesystem path.
	// Path sources are member-relative and are never promoted.
	SourcePath SourceKind = "path"
)

// Source is a closed, tagged source descriptor. Only the fields matching
// Kind are meaningful.
type Source struct {
	Kind SourceKind

	// Requirement is the version requirement as originally written
	// (registry only). The written form is preserved so promotion keeps
	// the first contributor's exact text.
	Requirement string

	// RepoURL and Reference identify a Git source. Reference carries the
	// ref type as a prefix ("branch=", "tag=", "rev=") so that a branch
	// named "v1" never compares equal to a tag named "v1".
	RepoURL   string
	Reference string

	// Path is the local path (path only).
	Path string
}

// RegistrySource builds a registry source with the given requirement text.
func RegistrySource(requirement string) Source {
	return Source{Kind: SourceRegistry, Requirement: requirement}
}

// GitSource builds a Git source.
func GitSource(repoURL, reference string) Source {
	return Source{Kind: SourceGit, RepoURL: repoURL, Reference: reference}
}

// PathSource builds a path source.
func PathSource(path string) Source {
	return Source{Kind: SourcePath, Path: path}
}

// CompatibleWith reports whether two sources may share one workspace-level
// declaration. The rule is per variant, never structural equality across
// variants:
//   - registry sources are compatible regardless of requirement (the
//     requirement conflict is resolved separately, first seen wins);
//   - git sources must agree on repository URL and reference;
//   - path sources are never compatible, not even with themselves.
func (s Source) CompatibleWith(other Source) bool {
	if s.Kind != other.Kind {
		return false
	}

	switch s.Kind {
	case SourceRegistry:
		return true
	case SourceGit:
		return s.RepoURL == other.RepoURL && s.Reference == other.Reference
	case SourcePath:
		return false
	default:
		return false
	}
}

// Equal reports whether two sources are identical, including the written
// requirement text. Used by the planner to detect already-converged root
// entries.
func (s Source) Equal(other Source) bool {
	return s == other
}
