package entities

// DependencyKind distinguishes the three Cargo dependency tables.
type DependencyKind string

const (
	KindNormal DependencyKind = "normal"
	KindBuild  DependencyKind = "build"
	KindDev    DependencyKind = "dev"
)

// Table returns the manifest table name for this kind.
func (k DependencyKind) Table() string {
	switch k {
	case KindDev:
		return "dev-dependencies"
	case KindBuild:
		return "build-dependencies"
	default:
		return "dependencies"
	}
}

// GroupKey is the promotion identity of a dependency declaration.
type GroupKey struct {
	Name string
	Kind DependencyKind
}

// DependencyRecord is one dependency as declared by one workspace member.
// Within one member, (Name, Kind) is unique; duplicate declarations are
// malformed input and rejected before aggregation.
type DependencyRecord struct {
	MemberID     string
	ManifestPath string
	Name         string
	Kind         DependencyKind
	Source       Source

	// Features and DefaultFeatures capture the member's effective feature
	// posture, reproduced verbatim in the per-member override after
	// promotion. DefaultFeatures defaults to true when unspecified. For a
	// workspace reference both may be inherited from the root entry.
	Features        []string
	DefaultFeatures bool

	// DefaultFeaturesExplicit reports whether the declaration itself wrote
	// the default-features flag. A workspace reference without it inherits
	// the root entry's posture.
	DefaultFeaturesExplicit bool

	// InheritedFeatures is true when part of Features comes from the root
	// entry rather than the member's own declaration.
	InheritedFeatures bool

	// WorkspaceRef is true when the declaration already delegates its
	// version/source to the workspace-dependencies table. Source then
	// holds the resolved workspace entry's source.
	WorkspaceRef bool

	// FirstSeenOrder is the position in the overall scan, used for
	// first-seen-wins conflict resolution.
	FirstSeenOrder int
}

// Key returns the record's promotion group key.
func (r DependencyRecord) Key() GroupKey {
	return GroupKey{Name: r.Name, Kind: r.Kind}
}

// InheritsFromWorkspace reports whether the declaration relies on the root
// entry for part of its effective posture instead of spelling it out itself.
// Such a declaration only stays behavior-preserving while the root entry is
// left unchanged.
func (r DependencyRecord) InheritsFromWorkspace() bool {
	return r.WorkspaceRef && (!r.DefaultFeaturesExplicit || r.InheritedFeatures)
}

// FeaturesEqual compares a record's explicit feature set with another list,
// order-sensitively. Feature order is preserved through promotion, so equal
// content in equal order means the declaration is already converged.
func (r DependencyRecord) FeaturesEqual(features []string) bool {
	if len(r.Features) != len(features) {
		return false
	}
	for i, f := range r.Features {
		if features[i] != f {
			return false
		}
	}
	return true
}
