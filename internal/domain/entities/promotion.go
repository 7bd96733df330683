package entities

// IneligibilityReason explains why a group was not promoted.
type IneligibilityReason string

const (
	// ReasonBelowThreshold marks groups with fewer contributors than the
	// configured minimum occurrences.
	ReasonBelowThreshold IneligibilityReason = "below-threshold"
	// ReasonMixedSources marks groups whose contributors disagree on the
	// source descriptor (e.g. one member pins a git fork while others use
	// the registry). Such groups are reported and left untouched; there is
	// no partial promotion.
	ReasonMixedSources IneligibilityReason = "mixed-sources"
)

// PromotionGroup collects every record sharing one (name, kind) identity.
// Records are ordered by (FirstSeenOrder, ManifestPath).
type PromotionGroup struct {
	Key      GroupKey
	Records  []DependencyRecord
	Eligible bool
	Reason   IneligibilityReason
}

// PromotionDecision is an eligible group resolved to the single source that
// the workspace-level entry will carry.
type PromotionDecision struct {
	Key GroupKey

	// Source is the first-seen contributor's source. For registry sources
	// the requirement keeps that contributor's original written form.
	Source Source

	// WorkspaceDefaultFeatures is always false: the workspace entry never
	// forces default features onto members, per-member overrides are the
	// single source of truth (see FeatureOverride).
	WorkspaceDefaultFeatures bool

	// Contributors are the records that will be rewritten, in group order.
	Contributors []DependencyRecord
}

// WorkspaceEntry returns the workspace-dependencies table entry realizing
// this decision.
func (d PromotionDecision) WorkspaceEntry() WorkspaceDependency {
	return WorkspaceDependency{
		Source:          d.Source,
		DefaultFeatures: d.WorkspaceDefaultFeatures,
	}
}

// FeatureOverride is the per-member declaration content that cancels the
// forced workspace-level default_features = false and reproduces the
// member's original effective feature set bit for bit.
type FeatureOverride struct {
	Features []string

	// DefaultFeatures is always written explicitly, even when the member
	// originally relied on the implicit true, since the workspace entry's
	// forced false would otherwise silently disable defaults.
	DefaultFeatures bool
}

// MemberRewrite pairs one contributing record with the override its
// rewritten declaration must carry.
type MemberRewrite struct {
	Record   DependencyRecord
	Override FeatureOverride
}
