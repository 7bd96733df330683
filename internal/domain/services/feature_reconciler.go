package services

import (
	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
)

// FeatureReconciler computes the per-member override each rewritten
// declaration must carry so promotion never changes resolved features.
//
// The workspace-level entry always sets default_features = false; Cargo's
// dependency unification would otherwise force defaults onto every member,
// silently changing builds of members that opted out. Each member's override
// is a verbatim copy of its original features and default_features, which
// cancels the forced false and reproduces the prior effective set exactly.
// Feature sets are never unioned across members.
type FeatureReconciler struct{}

// NewFeatureReconciler creates a new FeatureReconciler.
func NewFeatureReconciler() *FeatureReconciler {
	return &FeatureReconciler{}
}

// Reconcile returns one rewrite per (decision, contributor) pair, in
// decision order then contributor order.
func (it *FeatureReconciler) Reconcile(
	decisions []entities.PromotionDecision,
) []entities.MemberRewrite {
	var rewrites []entities.MemberRewrite

	for _, decision := range decisions {
		for _, record := range decision.Contributors {
			rewrites = append(rewrites, entities.MemberRewrite{
				Record:   record,
				Override: overrideFor(record),
			})
		}
	}

	return rewrites
}

// overrideFor copies the record's original feature posture. DefaultFeatures
// is always explicit: a member that originally relied on the implicit true
// still needs default-features = true written out, or the workspace entry's
// forced false would disable its defaults.
func overrideFor(record entities.DependencyRecord) entities.FeatureOverride {
	features := make([]string, len(record.Features))
	copy(features, record.Features)

	return entities.FeatureOverride{
		Features:        features,
		DefaultFeatures: record.DefaultFeatures,
	}
}
