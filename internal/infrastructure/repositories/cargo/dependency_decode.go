package cargo

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
)

// refKeys are the Git reference keys Cargo accepts, in precedence order.
var refKeys = []string{"branch", "tag", "rev"}

// decodeRecord turns one raw dependency table entry into a DependencyRecord.
// Cargo allows the string shorthand (`serde = "1.0"`) and the detailed table
// form (version/git/path/workspace plus feature flags).
func decodeRecord(
	member entities.WorkspaceMember,
	kind entities.DependencyKind,
	name string,
	raw any,
	workspaceDeps map[string]entities.WorkspaceDependency,
) (entities.DependencyRecord, error) {
	record := entities.DependencyRecord{
		MemberID:        member.ID,
		ManifestPath:    member.ManifestPath,
		Name:            name,
		Kind:            kind,
		DefaultFeatures: true,
	}

	switch value := raw.(type) {
	case string:
		record.Source = entities.RegistrySource(value)
		return record, nil

	case map[string]any:
		return decodeTableRecord(record, value, workspaceDeps)

	default:
		return record, fmt.Errorf("unsupported declaration shape %T", raw)
	}
}

func decodeTableRecord(
	record entities.DependencyRecord,
	table map[string]any,
	workspaceDeps map[string]entities.WorkspaceDependency,
) (entities.DependencyRecord, error) {
	features, err := decodeFeatures(table)
	if err != nil {
		return record, err
	}
	record.Features = features

	defaultFeatures, explicit := decodeDefaultFeatures(table)
	record.DefaultFeaturesExplicit = explicit

	if isWorkspaceRef(table) {
		entry, known := workspaceDeps[record.Name]
		if !known {
			return record, fmt.Errorf(
				"references workspace dependency %q which is not declared at the root",
				record.Name,
			)
		}
		record.WorkspaceRef = true
		record.Source = entry.Source
		// Without an explicit override the member inherits the workspace
		// entry's default-features posture.
		if explicit {
			record.DefaultFeatures = defaultFeatures
		} else {
			record.DefaultFeatures = entry.DefaultFeatures
		}
		// Features carried by the root entry are part of the member's
		// effective set; losing them when the entry is rewritten would
		// change the member's build.
		if len(entry.Features) > 0 {
			record.InheritedFeatures = true
			record.Features = unionFeatures(entry.Features, record.Features)
		}
		return record, nil
	}

	if explicit {
		record.DefaultFeatures = defaultFeatures
	}

	source, sourceErr := decodeSource(table)
	if sourceErr != nil {
		return record, sourceErr
	}
	record.Source = source
	return record, nil
}

// decodeSource reads the source descriptor out of a detailed table entry.
func decodeSource(table map[string]any) (entities.Source, error) {
	if gitURL, ok := table["git"].(string); ok {
		return entities.GitSource(gitURL, decodeGitReference(table)), nil
	}

	if path, ok := table["path"].(string); ok {
		return entities.PathSource(path), nil
	}

	if version, ok := table["version"].(string); ok {
		return entities.RegistrySource(version), nil
	}

	return entities.Source{}, fmt.Errorf("declaration has no version, git, or path source")
}

// decodeGitReference encodes the ref type into the stored reference so a
// branch and a tag with the same name never compare equal.
func decodeGitReference(table map[string]any) string {
	for _, key := range refKeys {
		if value, ok := table[key].(string); ok {
			return key + "=" + value
		}
	}
	return ""
}

// unionFeatures merges the root entry's features with the member's own,
// entry features first, preserving order and dropping duplicates.
func unionFeatures(entry, member []string) []string {
	seen := make(map[string]bool, len(entry)+len(member))
	merged := make([]string, 0, len(entry)+len(member))
	for _, list := range [][]string{entry, member} {
		for _, feature := range list {
			if !seen[feature] {
				seen[feature] = true
				merged = append(merged, feature)
			}
		}
	}
	return merged
}

func decodeFeatures(table map[string]any) ([]string, error) {
	raw, present := table["features"]
	if !present {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("features must be an array, got %T", raw)
	}

	features := make([]string, 0, len(list))
	for _, item := range list {
		feature, isString := item.(string)
		if !isString {
			return nil, fmt.Errorf("feature entries must be strings, got %T", item)
		}
		features = append(features, feature)
	}
	return features, nil
}

// decodeDefaultFeatures reads the default-features flag, accepting the
// underscore spelling Cargo also allows. The second return reports whether
// the flag was written at all.
func decodeDefaultFeatures(table map[string]any) (bool, bool) {
	if value, ok := table["default-features"].(bool); ok {
		return value, true
	}
	if value, ok := table["default_features"].(bool); ok {
		return value, true
	}
	return true, false
}

func isWorkspaceRef(table map[string]any) bool {
	value, ok := table["workspace"].(bool)
	return ok && value
}

// decodeWorkspaceDependencies decodes the existing root
// [workspace.dependencies] table.
func decodeWorkspaceDependencies(
	raw map[string]any,
) (map[string]entities.WorkspaceDependency, error) {
	deps := make(map[string]entities.WorkspaceDependency, len(raw))

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry, err := decodeWorkspaceDependency(raw[name])
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		deps[name] = entry
	}

	return deps, nil
}

func decodeWorkspaceDependency(raw any) (entities.WorkspaceDependency, error) {
	entry := entities.WorkspaceDependency{DefaultFeatures: true}

	switch value := raw.(type) {
	case string:
		entry.Source = entities.RegistrySource(value)
		return entry, nil

	case map[string]any:
		features, err := decodeFeatures(value)
		if err != nil {
			return entry, err
		}
		entry.Features = features

		if defaultFeatures, explicit := decodeDefaultFeatures(value); explicit {
			entry.DefaultFeatures = defaultFeatures
		}

		source, sourceErr := decodeSource(value)
		if sourceErr != nil {
			return entry, sourceErr
		}
		entry.Source = source
		return entry, nil

	default:
		return entry, fmt.Errorf("unsupported declaration shape %T", raw)
	}
}
