//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cargo-easydep/internal/domain/commands"
	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
	"github.com/rios0rios0/cargo-easydep/internal/domain/services"
	"github.com/rios0rios0/cargo-easydep/test/domain/entitybuilders"
	"github.com/rios0rios0/cargo-easydep/test/infrastructure/repositorydoubles"
)

func sharedSerdeSnapshot() *entities.WorkspaceSnapshot {
	alpha := entitybuilders.NewDependencyRecordBuilder().
		WithMember("alpha", "crates/alpha/Cargo.toml").
		WithFeatures("derive").
		WithFirstSeenOrder(0).
		BuildRecord()
	beta := entitybuilders.NewDependencyRecordBuilder().
		WithMember("beta", "crates/beta/Cargo.toml").
		WithSource(entities.RegistrySource("1.0.2")).
		WithDefaultFeatures(false).
		WithFirstSeenOrder(1).
		BuildRecord()

	return &entities.WorkspaceSnapshot{
		RootManifestPath:      "Cargo.toml",
		WorkspaceDependencies: map[string]entities.WorkspaceDependency{},
		Members: []entities.WorkspaceMember{
			{ID: "alpha", ManifestPath: "crates/alpha/Cargo.toml", Records: []entities.DependencyRecord{alpha}},
			{ID: "beta", ManifestPath: "crates/beta/Cargo.toml", Records: []entities.DependencyRecord{beta}},
		},
	}
}

func newPromoteCommand(
	metadata *repositorydoubles.StubMetadataRepository,
	manifests *repositorydoubles.SpyManifestRepository,
	worktree *repositorydoubles.StubWorktreeRepository,
) *commands.PromoteCommand {
	return commands.NewPromoteCommand(
		metadata,
		manifests,
		worktree,
		services.NewAggregator(),
		services.NewConflictResolver(),
		services.NewFeatureReconciler(),
		services.NewRewritePlanner(),
	)
}

func promoteOptions() entities.PromoteOptions {
	return entities.PromoteOptions{
		WorkspaceRoot:  ".",
		MinOccurrences: entities.DefaultMinOccurrences,
	}
}

func TestPromoteCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should apply the plan for a shared dependency", func(t *testing.T) {
		t.Parallel()

		// given
		metadata := &repositorydoubles.StubMetadataRepository{Snapshot: sharedSerdeSnapshot()}
		manifests := &repositorydoubles.SpyManifestRepository{}
		command := newPromoteCommand(metadata, manifests, &repositorydoubles.StubWorktreeRepository{})

		// when
		err := command.Execute(context.Background(), promoteOptions())

		// then - one root upsert plus one replacement per member
		require.NoError(t, err)
		assert.Equal(t, 1, manifests.ApplyCalls)
		require.Len(t, manifests.AppliedOps, 3)
		assert.Equal(t, entities.OpUpsertWorkspaceDependency, manifests.AppliedOps[0].Kind)
		assert.Equal(t, "1.0", manifests.AppliedOps[0].Workspace.Source.Requirement)
		assert.Equal(t, []string{"."}, metadata.LoadedRoots)
	})

	t.Run("should write nothing in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		metadata := &repositorydoubles.StubMetadataRepository{Snapshot: sharedSerdeSnapshot()}
		manifests := &repositorydoubles.SpyManifestRepository{}
		command := newPromoteCommand(metadata, manifests, &repositorydoubles.StubWorktreeRepository{})

		opts := promoteOptions()
		opts.DryRun = true

		// when
		err := command.Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Zero(t, manifests.ApplyCalls)
	})

	t.Run("should report a converged workspace as needing no changes", func(t *testing.T) {
		// not parallel, inspects the process-wide logger

		// given - both members already reference a matching root entry
		snapshot := sharedSerdeSnapshot()
		snapshot.WorkspaceDependencies = map[string]entities.WorkspaceDependency{
			"serde": {Source: entities.RegistrySource("1.0"), DefaultFeatures: false},
		}
		for i := range snapshot.Members {
			for j := range snapshot.Members[i].Records {
				converged := &snapshot.Members[i].Records[j]
				converged.WorkspaceRef = true
				converged.DefaultFeaturesExplicit = true
				converged.Source = entities.RegistrySource("1.0")
			}
		}

		hook := logrustest.NewGlobal()
		defer hook.Reset()

		metadata := &repositorydoubles.StubMetadataRepository{Snapshot: snapshot}
		manifests := &repositorydoubles.SpyManifestRepository{}
		command := newPromoteCommand(metadata, manifests, &repositorydoubles.StubWorktreeRepository{})

		// when
		err := command.Execute(context.Background(), promoteOptions())

		// then - nothing is written and the message says converged, not empty
		require.NoError(t, err)
		assert.Zero(t, manifests.ApplyCalls)

		var messages []string
		for _, entry := range hook.AllEntries() {
			messages = append(messages, entry.Message)
		}
		assert.Contains(t, messages, "No changes needed; workspace dependencies are already up to date.")
		assert.NotContains(t, messages, "No common dependencies found across workspace members.")
	})

	t.Run("should write nothing when no dependency crosses the threshold", func(t *testing.T) {
		t.Parallel()

		// given - a single member cannot share anything
		snapshot := sharedSerdeSnapshot()
		snapshot.Members = snapshot.Members[:1]

		metadata := &repositorydoubles.StubMetadataRepository{Snapshot: snapshot}
		manifests := &repositorydoubles.SpyManifestRepository{}
		command := newPromoteCommand(metadata, manifests, &repositorydoubles.StubWorktreeRepository{})

		// when
		err := command.Execute(context.Background(), promoteOptions())

		// then
		require.NoError(t, err)
		assert.Zero(t, manifests.ApplyCalls)
	})

	t.Run("should reject an invalid threshold before loading anything", func(t *testing.T) {
		t.Parallel()

		// given
		metadata := &repositorydoubles.StubMetadataRepository{}
		command := newPromoteCommand(
			metadata, &repositorydoubles.SpyManifestRepository{}, &repositorydoubles.StubWorktreeRepository{},
		)

		opts := promoteOptions()
		opts.MinOccurrences = 0

		// when
		err := command.Execute(context.Background(), opts)

		// then
		require.Error(t, err)
		assert.Empty(t, metadata.LoadedRoots)
	})

	t.Run("should report a missing workspace with its root path", func(t *testing.T) {
		t.Parallel()

		// given
		metadata := &repositorydoubles.StubMetadataRepository{LoadErr: entities.ErrWorkspaceNotFound}
		command := newPromoteCommand(
			metadata, &repositorydoubles.SpyManifestRepository{}, &repositorydoubles.StubWorktreeRepository{},
		)

		// when
		err := command.Execute(context.Background(), promoteOptions())

		// then
		require.ErrorIs(t, err, entities.ErrWorkspaceNotFound)
		assert.Contains(t, err.Error(), `"."`)
	})

	t.Run("should propagate malformed workspace input", func(t *testing.T) {
		t.Parallel()

		// given - the same dependency declared twice within one member
		duplicate := entitybuilders.NewDependencyRecordBuilder().BuildRecord()
		snapshot := &entities.WorkspaceSnapshot{
			RootManifestPath:      "Cargo.toml",
			WorkspaceDependencies: map[string]entities.WorkspaceDependency{},
			Members: []entities.WorkspaceMember{{
				ID:           "member-a",
				ManifestPath: "crates/member-a/Cargo.toml",
				Records:      []entities.DependencyRecord{duplicate, duplicate},
			}},
		}

		metadata := &repositorydoubles.StubMetadataRepository{Snapshot: snapshot}
		manifests := &repositorydoubles.SpyManifestRepository{}
		command := newPromoteCommand(metadata, manifests, &repositorydoubles.StubWorktreeRepository{})

		// when
		err := command.Execute(context.Background(), promoteOptions())

		// then
		var malformed *entities.MalformedInputError
		require.ErrorAs(t, err, &malformed)
		assert.Zero(t, manifests.ApplyCalls)
	})

	t.Run("should wrap apply failures", func(t *testing.T) {
		t.Parallel()

		// given
		applyErr := errors.New("disk full")
		metadata := &repositorydoubles.StubMetadataRepository{Snapshot: sharedSerdeSnapshot()}
		manifests := &repositorydoubles.SpyManifestRepository{ApplyErr: applyErr}
		command := newPromoteCommand(metadata, manifests, &repositorydoubles.StubWorktreeRepository{})

		// when
		err := command.Execute(context.Background(), promoteOptions())

		// then
		require.ErrorIs(t, err, applyErr)
		assert.Contains(t, err.Error(), "failed to apply rewrite plan")
	})

	t.Run("should tolerate a failing worktree status check", func(t *testing.T) {
		t.Parallel()

		// given - status errors are logged, never fatal
		metadata := &repositorydoubles.StubMetadataRepository{Snapshot: sharedSerdeSnapshot()}
		manifests := &repositorydoubles.SpyManifestRepository{}
		worktree := &repositorydoubles.StubWorktreeRepository{StatusErr: errors.New("not a repository")}
		command := newPromoteCommand(metadata, manifests, worktree)

		// when
		err := command.Execute(context.Background(), promoteOptions())

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, manifests.ApplyCalls)
	})
}
