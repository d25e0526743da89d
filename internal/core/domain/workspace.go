package domain

// PathMetadata holds the scalar paths copied verbatim into a WorkspaceGraph.
// Optional manifests are empty when they were not found.
type PathMetadata struct {
	ToolBinaryPath   string
	SourceRootPath   string
	DestinationPath  string
	ConfigPath       string
	DependenciesPath string
	SetupPath        string
}

// WorkspaceGraph is the assembled, in-memory description of everything the
// generator needs to materialize an editable workspace
type WorkspaceGraph struct {
	Manifests       []ManifestReference
	Helpers         []HelperSource
	Templates       []TemplateSource
	EditablePlugins []EditablePluginEntry
	BuiltModules    []BuiltPluginModule

	PathMetadata
}

// EditableCount returns how many artifacts in the graph can be edited.
// Built modules are compiled dependencies and are not counted.
func (g *WorkspaceGraph) EditableCount() int {
	return len(g.Manifests) + len(g.Helpers) + len(g.Templates) + len(g.EditablePlugins)
}

// WorkspacePath is the location of a generated workspace
type WorkspacePath string

// EditResult is what a successful edit reports back to the caller
type EditResult struct {
	Path     WorkspacePath
	Graph    *WorkspaceGraph
	Warnings []*Degradation
}

// HasWarnings reports whether any step of the edit degraded
func (r *EditResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}
