//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// DependencyRecordBuilder helps create test records with a fluent interface.
type DependencyRecordBuilder struct {
	*testkit.BaseBuilder
	memberID        string
	manifestPath    string
	name            string
	kind            entities.DependencyKind
	source          entities.Source
	features                []string
	defaultFeatures         bool
	defaultFeaturesExplicit bool
	inheritedFeatures       bool
	workspaceRef            bool
	firstSeenOrder          int
}

// NewDependencyRecordBuilder creates a new record builder with sensible defaults.
func NewDependencyRecordBuilder() *DependencyRecordBuilder {
	return &DependencyRecordBuilder{
		BaseBuilder:     testkit.NewBaseBuilder(),
		memberID:        "member-a",
		manifestPath:    "crates/member-a/Cargo.toml",
		name:            "serde",
		kind:            entities.KindNormal,
		source:          entities.RegistrySource("1.0"),
		defaultFeatures: true,
	}
}

// WithMember sets the member identity and manifest path.
func (b *DependencyRecordBuilder) WithMember(id, manifestPath string) *DependencyRecordBuilder {
	b.memberID = id
	b.manifestPath = manifestPath
	return b
}

// WithName sets the dependency name.
func (b *DependencyRecordBuilder) WithName(name string) *DependencyRecordBuilder {
	b.name = name
	return b
}

// WithKind sets the dependency kind.
func (b *DependencyRecordBuilder) WithKind(kind entities.DependencyKind) *DependencyRecordBuilder {
	b.kind = kind
	return b
}

// WithSource sets the source descriptor.
func (b *DependencyRecordBuilder) WithSource(source entities.Source) *DependencyRecordBuilder {
	b.source = source
	return b
}

// WithFeatures sets the explicit feature set.
func (b *DependencyRecordBuilder) WithFeatures(features ...string) *DependencyRecordBuilder {
	b.features = features
	return b
}

// WithDefaultFeatures sets the default-features flag.
func (b *DependencyRecordBuilder) WithDefaultFeatures(value bool) *DependencyRecordBuilder {
	b.defaultFeatures = value
	return b
}

// WithDefaultFeaturesExplicit marks the default-features flag as written out
// by the declaration itself.
func (b *DependencyRecordBuilder) WithDefaultFeaturesExplicit(value bool) *DependencyRecordBuilder {
	b.defaultFeaturesExplicit = value
	return b
}

// WithInheritedFeatures marks part of the feature set as inherited from the
// root workspace entry.
func (b *DependencyRecordBuilder) WithInheritedFeatures(value bool) *DependencyRecordBuilder {
	b.inheritedFeatures = value
	return b
}

// WithWorkspaceRef marks the record as already referencing the workspace entry.
func (b *DependencyRecordBuilder) WithWorkspaceRef(value bool) *DependencyRecordBuilder {
	b.workspaceRef = value
	return b
}

// WithFirstSeenOrder sets the scan position.
func (b *DependencyRecordBuilder) WithFirstSeenOrder(order int) *DependencyRecordBuilder {
	b.firstSeenOrder = order
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *DependencyRecordBuilder) Build() interface{} {
	return b.BuildRecord()
}

// BuildRecord creates the record with a concrete return type.
func (b *DependencyRecordBuilder) BuildRecord() entities.DependencyRecord {
	return entities.DependencyRecord{
		MemberID:                b.memberID,
		ManifestPath:            b.manifestPath,
		Name:                    b.name,
		Kind:                    b.kind,
		Source:                  b.source,
		Features:                b.features,
		DefaultFeatures:         b.defaultFeatures,
		DefaultFeaturesExplicit: b.defaultFeaturesExplicit,
		InheritedFeatures:       b.inheritedFeatures,
		WorkspaceRef:            b.workspaceRef,
		FirstSeenOrder:          b.firstSeenOrder,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.memberID = "member-a"
	b.manifestPath = "crates/member-a/Cargo.toml"
	b.name = "serde"
	b.kind = entities.KindNormal
	b.source = entities.RegistrySource("1.0")
	b.features = nil
	b.defaultFeatures = true
	b.defaultFeaturesExplicit = false
	b.inheritedFeatures = false
	b.workspaceRef = false
	b.firstSeenOrder = 0
	return b
}

// Clone creates a deep copy of the DependencyRecordBuilder.
func (b *DependencyRecordBuilder) Clone() testkit.Builder {
	features := make([]string, len(b.features))
	copy(features, b.features)
	return &DependencyRecordBuilder{
		BaseBuilder:             b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		memberID:                b.memberID,
		manifestPath:            b.manifestPath,
		name:                    b.name,
		kind:                    b.kind,
		source:                  b.source,
		features:                features,
		defaultFeatures:         b.defaultFeatures,
		defaultFeaturesExplicit: b.defaultFeaturesExplicit,
		inheritedFeatures:       b.inheritedFeatures,
		workspaceRef:            b.workspaceRef,
		firstSeenOrder:          b.firstSeenOrder,
	}
}
