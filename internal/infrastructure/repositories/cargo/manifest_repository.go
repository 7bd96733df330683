package cargo

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
	"github.com/rios0rios0/cargo-easydep/internal/domain/repositories"
)

const manifestFileMode = 0o644

// ManifestRepository applies rewrite ops to Cargo.toml files. Each file is
// decoded once, patched with every op targeting it, and re-encoded; tables
// the ops do not touch are carried over unchanged.
type ManifestRepository struct{}

// NewManifestRepository creates a new Cargo manifest writer.
func NewManifestRepository() repositories.ManifestRepository {
	return &ManifestRepository{}
}

// Apply groups ops per target file and rewrites each affected file once.
// Files without ops are never opened.
func (it *ManifestRepository) Apply(
	_ context.Context,
	ops []entities.RewriteOp,
) (int, error) {
	var order []string
	byFile := make(map[string][]entities.RewriteOp)
	for _, op := range ops {
		if _, seen := byFile[op.ManifestPath]; !seen {
			order = append(order, op.ManifestPath)
		}
		byFile[op.ManifestPath] = append(byFile[op.ManifestPath], op)
	}

	for _, path := range order {
		if err := rewriteFile(path, byFile[path]); err != nil {
			return 0, err
		}
		logger.Infof("  - Updated %s", path)
	}

	return len(order), nil
}

func rewriteFile(path string, ops []entities.RewriteOp) error {
	doc := make(map[string]any)
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return fmt.Errorf("failed to parse %q: %w", path, err)
	}

	for _, op := range ops {
		if err := applyOp(doc, op); err != nil {
			return fmt.Errorf("failed to apply edit to %q: %w", path, err)
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode %q: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), manifestFileMode); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

func applyOp(doc map[string]any, op entities.RewriteOp) error {
	switch op.Kind {
	case entities.OpUpsertWorkspaceDependency:
		workspace, err := ensureTable(doc, "workspace")
		if err != nil {
			return err
		}
		deps, depsErr := ensureTable(workspace, "dependencies")
		if depsErr != nil {
			return depsErr
		}
		deps[op.DependencyName] = encodeWorkspaceEntry(op.Workspace)
		return nil

	case entities.OpReplaceWithWorkspaceRef:
		table, ok := doc[op.DependencyKind.Table()].(map[string]any)
		if !ok {
			return fmt.Errorf("%q is not a table", op.DependencyKind.Table())
		}
		table[op.DependencyName] = encodeMemberRef(op.Member)
		return nil

	default:
		return fmt.Errorf("unknown rewrite op kind %q", op.Kind)
	}
}

func ensureTable(parent map[string]any, key string) (map[string]any, error) {
	existing, present := parent[key]
	if !present {
		table := make(map[string]any)
		parent[key] = table
		return table, nil
	}

	table, ok := existing.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%q is not a table", key)
	}
	return table, nil
}

// encodeWorkspaceEntry renders a workspace-dependencies table entry. The
// default-features flag is always written; the promoted entry never forces
// defaults onto members.
func encodeWorkspaceEntry(entry *entities.WorkspaceDependency) map[string]any {
	encoded := map[string]any{
		"default-features": entry.DefaultFeatures,
	}

	switch entry.Source.Kind {
	case entities.SourceGit:
		encoded["git"] = entry.Source.RepoURL
		if key, value, ok := splitGitReference(entry.Source.Reference); ok {
			encoded[key] = value
		}
	case entities.SourcePath:
		encoded["path"] = entry.Source.Path
	default:
		encoded["version"] = entry.Source.Requirement
	}

	if len(entry.Features) > 0 {
		encoded["features"] = entry.Features
	}
	return encoded
}

// encodeMemberRef renders a member declaration delegating to the workspace
// entry, with the member's explicit feature override.
func encodeMemberRef(ref *entities.MemberDependencyRef) map[string]any {
	encoded := map[string]any{
		"workspace":        true,
		"default-features": ref.DefaultFeatures,
	}
	if len(ref.Features) > 0 {
		encoded["features"] = ref.Features
	}
	return encoded
}

func splitGitReference(reference string) (string, string, bool) {
	key, value, found := strings.Cut(reference, "=")
	if !found || key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}
