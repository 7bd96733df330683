package services

import (
	"sort"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
)

// Aggregator partitions dependency records across members into promotion
// groups keyed by (name, kind) and marks each group eligible or not.
type Aggregator struct{}

// NewAggregator creates a new Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate groups every record of the snapshot and returns the groups in
// canonical (name, kind) order, so the output is reproducible regardless of
// member traversal order. Path-sourced records never enter any group.
//
// A duplicate (name, kind) declaration within one member is malformed input
// and aborts the run before any group is formed.
func (it *Aggregator) Aggregate(
	snapshot *entities.WorkspaceSnapshot,
	opts entities.PromoteOptions,
) ([]entities.PromotionGroup, error) {
	if err := validateUniqueness(snapshot); err != nil {
		return nil, err
	}

	grouped := make(map[entities.GroupKey][]entities.DependencyRecord)
	for _, record := range snapshot.AllRecords() {
		if record.Source.Kind == entities.SourcePath {
			continue
		}
		if opts.Excluded(record.Name) {
			continue
		}
		key := record.Key()
		grouped[key] = append(grouped[key], record)
	}

	keys := make([]entities.GroupKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Kind < keys[j].Kind
	})

	groups := make([]entities.PromotionGroup, 0, len(keys))
	for _, key := range keys {
		records := grouped[key]
		sortRecords(records)
		groups = append(groups, buildGroup(key, records, opts.MinOccurrences))
	}
	markCrossKindConflicts(groups)

	return groups, nil
}

// markCrossKindConflicts extends the source-compatibility rule across groups
// sharing one name. The root table carries a single entry per name, so every
// promoted kind of that name resolves to the same source; eligible groups
// whose sources disagree would silently swap the source for some of their
// members. Such names are left untouched entirely.
func markCrossKindConflicts(groups []entities.PromotionGroup) {
	byName := make(map[string][]int)
	for i, group := range groups {
		if group.Eligible {
			byName[group.Key.Name] = append(byName[group.Key.Name], i)
		}
	}

	for _, indices := range byName {
		if len(indices) < 2 {
			continue
		}

		first := groups[indices[0]].Records[0].Source
		compatible := true
		for _, i := range indices[1:] {
			if !first.CompatibleWith(groups[i].Records[0].Source) {
				compatible = false
				break
			}
		}
		if compatible {
			continue
		}

		for _, i := range indices {
			groups[i].Eligible = false
			groups[i].Reason = entities.ReasonMixedSources
		}
	}
}

// validateUniqueness rejects members declaring the same (name, kind) twice.
func validateUniqueness(snapshot *entities.WorkspaceSnapshot) error {
	for _, member := range snapshot.Members {
		seen := make(map[entities.GroupKey]bool, len(member.Records))
		for _, record := range member.Records {
			key := record.Key()
			if seen[key] {
				return &entities.MalformedInputError{
					MemberID:     member.ID,
					ManifestPath: member.ManifestPath,
					Name:         record.Name,
					Kind:         record.Kind,
				}
			}
			seen[key] = true
		}
	}
	return nil
}

// sortRecords orders contributors by first-seen order, with the manifest
// path as a secondary key so ties (possible when upstream loading order is
// unstable) resolve deterministically.
func sortRecords(records []entities.DependencyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].FirstSeenOrder != records[j].FirstSeenOrder {
			return records[i].FirstSeenOrder < records[j].FirstSeenOrder
		}
		return records[i].ManifestPath < records[j].ManifestPath
	})
}

func buildGroup(
	key entities.GroupKey,
	records []entities.DependencyRecord,
	minOccurrences int,
) entities.PromotionGroup {
	group := entities.PromotionGroup{Key: key, Records: records}

	if len(records) < minOccurrences {
		group.Reason = entities.ReasonBelowThreshold
		return group
	}

	first := records[0].Source
	for _, record := range records[1:] {
		if !first.CompatibleWith(record.Source) {
			group.Reason = entities.ReasonMixedSources
			return group
		}
	}

	group.Eligible = true
	return group
}
