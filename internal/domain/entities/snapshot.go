package entities

// WorkspaceDependency is one entry of the root manifest's
// [workspace.dependencies] table.
type WorkspaceDependency struct {
	Source          Source
	Features        []string
	DefaultFeatures bool
}

// WorkspaceMember is one package of the workspace with its declarations.
type WorkspaceMember struct {
	ID           string
	ManifestPath string
	Records      []DependencyRecord
}

// WorkspaceSnapshot is the immutable input of the promotion engine: the
// already-loaded workspace metadata. The engine never performs I/O; it is a
// pure function of this value.
type WorkspaceSnapshot struct {
	RootManifestPath string

	// WorkspaceDependencies is the existing workspace-dependencies table,
	// keyed by dependency name (possibly empty).
	WorkspaceDependencies map[string]WorkspaceDependency

	// Members is sorted by manifest path so first-seen ordering is
	// reproducible even when upstream loading order is not.
	Members []WorkspaceMember
}

// AllRecords flattens every member's records in member order.
func (s *WorkspaceSnapshot) AllRecords() []DependencyRecord {
	var records []DependencyRecord
	for _, member := range s.Members {
		records = append(records, member.Records...)
	}
	return records
}
