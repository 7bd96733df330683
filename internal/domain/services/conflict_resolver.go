package services

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
)

// ConflictResolver picks the single source each eligible group promotes:
// the first occurrence encountered during the scan wins. The tool never
// computes a requirement satisfying all contributors at once; maintainers
// tune the promoted requirement manually when members disagree.
type ConflictResolver struct{}

// NewConflictResolver creates a new ConflictResolver.
func NewConflictResolver() *ConflictResolver {
	return &ConflictResolver{}
}

// Resolve turns every eligible group into a PromotionDecision, preserving
// group order. Ineligible groups produce no decision. Eligible groups that
// share one name (the same dependency promoted under several kinds) share a
// single winner, since the root table holds one entry per name.
func (it *ConflictResolver) Resolve(
	groups []entities.PromotionGroup,
) []entities.PromotionDecision {
	var decisions []entities.PromotionDecision

	winners := nameWinners(groups)
	for _, group := range groups {
		if !group.Eligible {
			continue
		}

		winner := winners[group.Key.Name]
		reportDivergence(group, winner)

		decisions = append(decisions, entities.PromotionDecision{
			Key:                      group.Key,
			Source:                   winner.Source,
			WorkspaceDefaultFeatures: false,
			Contributors:             group.Records,
		})
	}

	return decisions
}

// nameWinners picks, for every promoted name, the first-seen record across
// all eligible groups sharing it.
func nameWinners(groups []entities.PromotionGroup) map[string]entities.DependencyRecord {
	winners := make(map[string]entities.DependencyRecord)
	for _, group := range groups {
		if !group.Eligible {
			continue
		}

		candidate := group.Records[0]
		current, found := winners[group.Key.Name]
		if !found || recordBefore(candidate, current) {
			winners[group.Key.Name] = candidate
		}
	}
	return winners
}

func recordBefore(a, b entities.DependencyRecord) bool {
	if a.FirstSeenOrder != b.FirstSeenOrder {
		return a.FirstSeenOrder < b.FirstSeenOrder
	}
	return a.ManifestPath < b.ManifestPath
}

// reportDivergence warns when registry contributors disagree on the version
// requirement in more than written form. Semantically identical requirements
// ("1.0" vs "^1.0") stay silent.
func reportDivergence(group entities.PromotionGroup, winner entities.DependencyRecord) {
	if winner.Source.Kind != entities.SourceRegistry {
		return
	}

	// The winner may belong to another kind's group of the same name.
	for _, record := range group.Records {
		if RequirementsEquivalent(winner.Source.Requirement, record.Source.Requirement) {
			continue
		}
		logger.Warnf(
			"%s (%s): member %q requires %q, promoting first-seen %q from %q",
			group.Key.Name, group.Key.Kind,
			record.MemberID, record.Source.Requirement,
			winner.Source.Requirement, winner.MemberID,
		)
	}
}

// RequirementsEquivalent reports whether two written version requirements
// are semantically identical. Cargo treats a bare version as its caret
// form, so "1.0" and "^1.0" compare equal. Requirements that fail to parse
// are compared textually.
func RequirementsEquivalent(a, b string) bool {
	return canonicalRequirement(a) == canonicalRequirement(b)
}

func canonicalRequirement(req string) string {
	req = strings.TrimSpace(req)
	if req == "" {
		return req
	}

	// A bare version is caret-prefixed in Cargo semantics.
	if req[0] >= '0' && req[0] <= '9' {
		req = "^" + req
	}

	if _, err := semver.NewConstraint(req); err != nil {
		logger.Debugf("unparseable version requirement %q: %v", req, err)
		return req
	}

	return strings.ReplaceAll(req, " ", "")
}
