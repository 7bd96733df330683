package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
	"github.com/rios0rios0/cargo-easydep/internal/domain/repositories"
	"github.com/rios0rios0/cargo-easydep/internal/domain/services"
)

// Report is the interface for the report command.
type Report interface {
	Execute(ctx context.Context, opts entities.PromoteOptions) error
}

// ReportCommand lists promotion candidates without planning or writing any
// edit: which groups are eligible, which source each would promote, and why
// the remaining groups are skipped.
type ReportCommand struct {
	metadata   repositories.MetadataRepository
	aggregator *services.Aggregator
	resolver   *services.ConflictResolver
}

// NewReportCommand creates a new ReportCommand.
func NewReportCommand(
	metadata repositories.MetadataRepository,
	aggregator *services.Aggregator,
	resolver *services.ConflictResolver,
) *ReportCommand {
	return &ReportCommand{
		metadata:   metadata,
		aggregator: aggregator,
		resolver:   resolver,
	}
}

// Execute prints the candidate report for the workspace.
func (it *ReportCommand) Execute(ctx context.Context, opts entities.PromoteOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	snapshot, err := it.metadata.LoadSnapshot(ctx, opts.WorkspaceRoot)
	if err != nil {
		return fmt.Errorf("failed to load workspace metadata: %w", err)
	}

	groups, aggErr := it.aggregator.Aggregate(snapshot, opts)
	if aggErr != nil {
		return aggErr
	}

	decisions := it.resolver.Resolve(groups)

	logger.Infof(
		"%d dependency groups across %d members, %d eligible for promotion",
		len(groups), len(snapshot.Members), len(decisions),
	)

	for _, decision := range decisions {
		logger.Infof(
			"  promote %s (%s) = %s [%d members]",
			decision.Key.Name, decision.Key.Kind,
			describeSource(decision.Source), len(decision.Contributors),
		)
	}

	for _, group := range groups {
		if group.Eligible {
			continue
		}
		logger.Infof(
			"  skip %s (%s): %s [%d members]",
			group.Key.Name, group.Key.Kind, group.Reason, len(group.Records),
		)
	}

	return nil
}
