package services

import (
	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
)

// RewritePlanner turns decisions and member rewrites into the minimal,
// idempotent edit set: one upsert per decision against the root manifest,
// one replacement per contributing member. An op is only emitted when the
// planned entry content differs from the current entry content, so running
// the planner on its own output produces zero further ops.
type RewritePlanner struct{}

// NewRewritePlanner creates a new RewritePlanner.
func NewRewritePlanner() *RewritePlanner {
	return &RewritePlanner{}
}

// Plan produces the ordered op list: root upserts first (decision order),
// then member replacements (rewrite order). Each op is scoped to exactly
// one manifest file. The root table is keyed by name alone, so decisions
// for several kinds of one name collapse into a single upsert.
func (it *RewritePlanner) Plan(
	snapshot *entities.WorkspaceSnapshot,
	decisions []entities.PromotionDecision,
	rewrites []entities.MemberRewrite,
) []entities.RewriteOp {
	var ops []entities.RewriteOp

	rootChanged := make(map[string]bool)
	plannedRoot := make(map[string]entities.WorkspaceDependency)
	for _, decision := range decisions {
		planned := decision.WorkspaceEntry()
		if prev, done := plannedRoot[decision.Key.Name]; done && workspaceEntriesEqual(prev, planned) {
			continue
		}
		plannedRoot[decision.Key.Name] = planned

		if op, needed := it.planRootUpsert(snapshot, decision); needed {
			ops = append(ops, op)
			rootChanged[decision.Key.Name] = true
		}
	}

	for _, rewrite := range rewrites {
		if op, needed := it.planMemberReplace(rewrite, rootChanged[rewrite.Record.Name]); needed {
			ops = append(ops, op)
		}
	}

	return ops
}

// planRootUpsert compares the decision against the existing workspace
// entry. A matching entry generates no op; a differing one is overwritten
// (last run wins, history is never merged).
func (it *RewritePlanner) planRootUpsert(
	snapshot *entities.WorkspaceSnapshot,
	decision entities.PromotionDecision,
) (entities.RewriteOp, bool) {
	planned := decision.WorkspaceEntry()

	current, exists := snapshot.WorkspaceDependencies[decision.Key.Name]
	if exists && workspaceEntriesEqual(current, planned) {
		return entities.RewriteOp{}, false
	}

	return entities.RewriteOp{
		Kind:           entities.OpUpsertWorkspaceDependency,
		ManifestPath:   snapshot.RootManifestPath,
		DependencyName: decision.Key.Name,
		DependencyKind: decision.Key.Kind,
		Workspace:      &planned,
	}, true
}

// planMemberReplace compares the planned workspace reference with the
// member's current declaration. A declaration that already is a workspace
// reference with the correct override generates no op. A reference that
// inherits part of its posture from the root entry is only converged while
// that entry stays untouched; once the entry is rewritten the inherited
// defaults and features must be spelled out on the member.
func (it *RewritePlanner) planMemberReplace(
	rewrite entities.MemberRewrite,
	rootChanged bool,
) (entities.RewriteOp, bool) {
	record := rewrite.Record

	converged := record.WorkspaceRef &&
		record.DefaultFeatures == rewrite.Override.DefaultFeatures &&
		record.FeaturesEqual(rewrite.Override.Features) &&
		!(rootChanged && record.InheritsFromWorkspace())
	if converged {
		return entities.RewriteOp{}, false
	}

	return entities.RewriteOp{
		Kind:           entities.OpReplaceWithWorkspaceRef,
		ManifestPath:   record.ManifestPath,
		DependencyName: record.Name,
		DependencyKind: record.Kind,
		Member: &entities.MemberDependencyRef{
			Features:        rewrite.Override.Features,
			DefaultFeatures: rewrite.Override.DefaultFeatures,
		},
	}, true
}

func workspaceEntriesEqual(a, b entities.WorkspaceDependency) bool {
	if !a.Source.Equal(b.Source) || a.DefaultFeatures != b.DefaultFeatures {
		return false
	}
	if len(a.Features) != len(b.Features) {
		return false
	}
	for i, f := range a.Features {
		if b.Features[i] != f {
			return false
		}
	}
	return true
}
