package cargo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/BurntSushi/toml"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
	"github.com/rios0rios0/cargo-easydep/internal/domain/repositories"
)

const manifestFileName = "Cargo.toml"

// MetadataRepository loads Cargo workspace metadata from disk.
type MetadataRepository struct{}

// NewMetadataRepository creates a new Cargo metadata repository.
func NewMetadataRepository() repositories.MetadataRepository {
	return &MetadataRepository{}
}

// LoadSnapshot reads the root manifest, expands the workspace member globs,
// and decodes every member's dependency tables. Members are sorted by
// manifest path and records are numbered in scan order, so the snapshot is
// identical across runs on unchanged input.
func (it *MetadataRepository) LoadSnapshot(
	_ context.Context,
	workspaceRoot string,
) (*entities.WorkspaceSnapshot, error) {
	rootPath := filepath.Join(workspaceRoot, manifestFileName)

	var root rootManifest
	meta, err := toml.DecodeFile(rootPath, &root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entities.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to parse %q: %w", rootPath, err)
	}
	if root.Workspace == nil {
		return nil, entities.ErrWorkspaceNotFound
	}

	workspaceDeps, depsErr := decodeWorkspaceDependencies(root.Workspace.Dependencies)
	if depsErr != nil {
		return nil, fmt.Errorf("invalid [workspace.dependencies] in %q: %w", rootPath, depsErr)
	}

	snapshot := &entities.WorkspaceSnapshot{
		RootManifestPath:      rootPath,
		WorkspaceDependencies: workspaceDeps,
	}

	memberPaths, globErr := expandMembers(workspaceRoot, root.Workspace)
	if globErr != nil {
		return nil, globErr
	}

	// The root package, when present, is a workspace member too. A members
	// glob may already have matched the root directory itself.
	if root.Package != nil && !slices.Contains(memberPaths, rootPath) {
		memberPaths = append(memberPaths, rootPath)
	}
	sort.Strings(memberPaths)

	order := 0
	for _, manifestPath := range memberPaths {
		member, loadErr := loadMember(manifestPath, rootPath, meta, &root, workspaceDeps, &order)
		if loadErr != nil {
			return nil, loadErr
		}
		snapshot.Members = append(snapshot.Members, member)
	}

	logger.Debugf(
		"Loaded %d workspace members from %q", len(snapshot.Members), rootPath,
	)
	return snapshot, nil
}

// expandMembers resolves the [workspace] members globs against the root
// directory, honoring the exclude list. Only directories containing a
// manifest count.
func expandMembers(workspaceRoot string, workspace *workspaceTable) ([]string, error) {
	excluded := make(map[string]bool, len(workspace.Exclude))
	for _, e := range workspace.Exclude {
		excluded[filepath.Clean(e)] = true
	}

	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range workspace.Members {
		matches, err := filepath.Glob(filepath.Join(workspaceRoot, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid workspace members pattern %q: %w", pattern, err)
		}

		for _, dir := range matches {
			rel, relErr := filepath.Rel(workspaceRoot, dir)
			if relErr != nil || excluded[filepath.Clean(rel)] {
				continue
			}

			manifestPath := filepath.Join(dir, manifestFileName)
			if _, statErr := os.Stat(manifestPath); statErr != nil {
				continue
			}
			if !seen[manifestPath] {
				seen[manifestPath] = true
				paths = append(paths, manifestPath)
			}
		}
	}

	return paths, nil
}

// loadMember decodes one member manifest into dependency records. For the
// root package the already-decoded root manifest is reused so the file is
// only parsed once.
func loadMember(
	manifestPath, rootPath string,
	rootMeta toml.MetaData,
	root *rootManifest,
	workspaceDeps map[string]entities.WorkspaceDependency,
	order *int,
) (entities.WorkspaceMember, error) {
	var manifest memberManifest
	var meta toml.MetaData

	if manifestPath == rootPath {
		manifest = memberManifest{
			Package:           root.Package,
			Dependencies:      root.Dependencies,
			DevDependencies:   root.DevDependencies,
			BuildDependencies: root.BuildDependencies,
		}
		meta = rootMeta
	} else {
		var err error
		meta, err = toml.DecodeFile(manifestPath, &manifest)
		if err != nil {
			return entities.WorkspaceMember{}, fmt.Errorf(
				"failed to parse member manifest %q: %w", manifestPath, err,
			)
		}
	}

	member := entities.WorkspaceMember{
		ID:           memberID(manifest, manifestPath),
		ManifestPath: manifestPath,
	}

	tables := map[string]map[string]any{
		"dependencies":       manifest.Dependencies,
		"dev-dependencies":   manifest.DevDependencies,
		"build-dependencies": manifest.BuildDependencies,
	}

	// MetaData.Keys preserves document order, giving records the same
	// first-seen numbering the author wrote them in.
	for _, key := range orderedDependencyKeys(meta, tables) {
		table, name := key[0], key[1]
		record, err := decodeRecord(member, kindForTable(table), name, tables[table][name], workspaceDeps)
		if err != nil {
			return entities.WorkspaceMember{}, fmt.Errorf(
				"invalid dependency %q in %q: %w", name, manifestPath, err,
			)
		}

		record.FirstSeenOrder = *order
		*order++
		member.Records = append(member.Records, record)
	}

	return member, nil
}

// orderedDependencyKeys returns [table, name] pairs in document order for
// the three dependency tables.
func orderedDependencyKeys(meta toml.MetaData, tables map[string]map[string]any) [][2]string {
	var keys [][2]string
	seen := make(map[[2]string]bool)

	for _, key := range meta.Keys() {
		if len(key) != 2 {
			continue
		}
		table := key[0]
		if _, ok := tables[table]; !ok {
			continue
		}
		pair := [2]string{table, key[1]}
		if !seen[pair] {
			seen[pair] = true
			keys = append(keys, pair)
		}
	}

	// Entries missing from the metadata keys (possible when the caller
	// reuses a partially-decoded manifest) are appended in sorted order.
	for table, deps := range tables {
		names := make([]string, 0, len(deps))
		for name := range deps {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			pair := [2]string{table, name}
			if !seen[pair] {
				seen[pair] = true
				keys = append(keys, pair)
			}
		}
	}

	return keys
}

func kindForTable(table string) entities.DependencyKind {
	switch table {
	case "dev-dependencies":
		return entities.KindDev
	case "build-dependencies":
		return entities.KindBuild
	default:
		return entities.KindNormal
	}
}

func memberID(manifest memberManifest, manifestPath string) string {
	if manifest.Package != nil && manifest.Package.Name != "" {
		return manifest.Package.Name
	}
	return filepath.Base(filepath.Dir(manifestPath))
}
