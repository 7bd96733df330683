package cargo

// TOML shapes of the manifests this tool reads. Dependency table entries are
// decoded as `any` because Cargo allows both the string shorthand
// (`serde = "1.0"`) and the detailed table form.

type rootManifest struct {
	Workspace *workspaceTable `toml:"workspace"`
	Package   *packageTable   `toml:"package"`

	// The root manifest may itself declare a package with dependencies;
	// that package is a workspace member like any other.
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

type workspaceTable struct {
	Members      []string       `toml:"members"`
	Exclude      []string       `toml:"exclude"`
	Dependencies map[string]any `toml:"dependencies"`
}

type packageTable struct {
	Name string `toml:"name"`
}

type memberManifest struct {
	Package           *packageTable  `toml:"package"`
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}
