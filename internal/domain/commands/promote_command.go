package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
	"github.com/rios0rios0/cargo-easydep/internal/domain/repositories"
	"github.com/rios0rios0/cargo-easydep/internal/domain/services"
)

// Promote is the interface for the promote command.
type Promote interface {
	Execute(ctx context.Context, opts entities.PromoteOptions) error
}

// PromoteCommand runs the full promotion flow: load the workspace snapshot,
// compute the rewrite plan through the engine stages, and apply it.
type PromoteCommand struct {
	metadata   repositories.MetadataRepository
	manifests  repositories.ManifestRepository
	worktree   repositories.WorktreeRepository
	aggregator *services.Aggregator
	resolver   *services.ConflictResolver
	reconciler *services.FeatureReconciler
	planner    *services.RewritePlanner
}

// NewPromoteCommand creates a new PromoteCommand.
func NewPromoteCommand(
	metadata repositories.MetadataRepository,
	manifests repositories.ManifestRepository,
	worktree repositories.WorktreeRepository,
	aggregator *services.Aggregator,
	resolver *services.ConflictResolver,
	reconciler *services.FeatureReconciler,
	planner *services.RewritePlanner,
) *PromoteCommand {
	return &PromoteCommand{
		metadata:   metadata,
		manifests:  manifests,
		worktree:   worktree,
		aggregator: aggregator,
		resolver:   resolver,
		reconciler: reconciler,
		planner:    planner,
	}
}

// Execute runs one promotion pass over the workspace.
func (it *PromoteCommand) Execute(ctx context.Context, opts entities.PromoteOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	logger.Infof("Analyzing workspace at %q...", opts.WorkspaceRoot)

	snapshot, err := it.metadata.LoadSnapshot(ctx, opts.WorkspaceRoot)
	if err != nil {
		if errors.Is(err, entities.ErrWorkspaceNotFound) {
			return fmt.Errorf("%w at %q", entities.ErrWorkspaceNotFound, opts.WorkspaceRoot)
		}
		return fmt.Errorf("failed to load workspace metadata: %w", err)
	}

	it.warnDirtyWorktree(opts)

	logger.Infof(
		"Detecting common dependencies across %d workspace members...",
		len(snapshot.Members),
	)

	ops, decisions, planErr := it.plan(snapshot, opts)
	if planErr != nil {
		return planErr
	}

	if len(ops) == 0 {
		if len(decisions) == 0 {
			logger.Info("No common dependencies found across workspace members.")
		} else {
			logger.Info("No changes needed; workspace dependencies are already up to date.")
		}
		return nil
	}

	if opts.DryRun {
		reportPlan(ops)
		return nil
	}

	modified, applyErr := it.manifests.Apply(ctx, ops)
	if applyErr != nil {
		return fmt.Errorf("failed to apply rewrite plan: %w", applyErr)
	}

	logger.Infof("Updated %d manifest files with workspace dependencies.", modified)
	return nil
}

// plan runs the pure engine stages on the loaded snapshot. The decisions are
// returned alongside the ops so an empty plan can distinguish "nothing
// eligible" from "already converged".
func (it *PromoteCommand) plan(
	snapshot *entities.WorkspaceSnapshot,
	opts entities.PromoteOptions,
) ([]entities.RewriteOp, []entities.PromotionDecision, error) {
	groups, err := it.aggregator.Aggregate(snapshot, opts)
	if err != nil {
		return nil, nil, err
	}

	for _, group := range groups {
		if group.Reason == entities.ReasonMixedSources {
			logger.Warnf(
				"%s (%s): contributors use incompatible sources, left untouched",
				group.Key.Name, group.Key.Kind,
			)
		}
	}

	decisions := it.resolver.Resolve(groups)
	if len(decisions) > 0 {
		logger.Infof("Found %d common dependencies:", len(decisions))
		for _, decision := range decisions {
			logger.Infof("  - %s = %s", decision.Key.Name, describeSource(decision.Source))
		}
	}

	rewrites := it.reconciler.Reconcile(decisions)
	return it.planner.Plan(snapshot, decisions, rewrites), decisions, nil
}

func (it *PromoteCommand) warnDirtyWorktree(opts entities.PromoteOptions) {
	dirty, err := it.worktree.HasUncommittedChanges(opts.WorkspaceRoot)
	if err != nil {
		logger.Debugf("Worktree status check failed: %v", err)
		return
	}
	if dirty && !opts.DryRun {
		logger.Warn("Worktree has uncommitted changes; manifest rewrites will mix with them.")
	}
}

// reportPlan prints every planned op without writing anything.
func reportPlan(ops []entities.RewriteOp) {
	logger.Infof("[DRY RUN] Would apply %d manifest edits:", len(ops))
	for _, op := range ops {
		switch op.Kind {
		case entities.OpUpsertWorkspaceDependency:
			logger.Infof(
				"  %s: [workspace.dependencies] %s = %s, default-features = false",
				op.ManifestPath, op.DependencyName, describeSource(op.Workspace.Source),
			)
		case entities.OpReplaceWithWorkspaceRef:
			logger.Infof(
				"  %s: [%s] %s = { workspace = true, default-features = %t, features = %v }",
				op.ManifestPath, op.DependencyKind.Table(),
				op.DependencyName, op.Member.DefaultFeatures, op.Member.Features,
			)
		}
	}
}

func describeSource(source entities.Source) string {
	switch source.Kind {
	case entities.SourceGit:
		return fmt.Sprintf("{ git = %q, %s }", source.RepoURL, source.Reference)
	case entities.SourcePath:
		return fmt.Sprintf("{ path = %q }", source.Path)
	default:
		return fmt.Sprintf("%q", source.Requirement)
	}
}
