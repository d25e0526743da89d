package testfixtures

import (
	"path/filepath"

	"kilometers.ai/edit/internal/core/domain"
)

// WorkspaceGraphBuilder provides a builder pattern for creating test workspace graphs
type WorkspaceGraphBuilder struct {
	graph domain.WorkspaceGraph
}

// NewWorkspaceGraphBuilder creates a WorkspaceGraphBuilder rooted at root with sensible defaults
func NewWorkspaceGraphBuilder(root string) *WorkspaceGraphBuilder {
	return &WorkspaceGraphBuilder{
		graph: domain.WorkspaceGraph{
			PathMetadata: domain.PathMetadata{
				ToolBinaryPath:  filepath.Join(string(filepath.Separator)+"usr", "local", "bin", "km-edit"),
				SourceRootPath:  root,
				DestinationPath: filepath.Join(root, "Derived", "Edit"),
			},
		},
	}
}

// WithProjectManifest adds a project manifest at dir relative to the root
func (b *WorkspaceGraphBuilder) WithProjectManifest(dir string) *WorkspaceGraphBuilder {
	return b.withManifest(domain.ManifestKindProject, dir)
}

// WithWorkspaceManifest adds a workspace manifest at dir relative to the root
func (b *WorkspaceGraphBuilder) WithWorkspaceManifest(dir string) *WorkspaceGraphBuilder {
	return b.withManifest(domain.ManifestKindWorkspace, dir)
}

func (b *WorkspaceGraphBuilder) withManifest(kind domain.ManifestKind, dir string) *WorkspaceGraphBuilder {
	b.graph.Manifests = append(b.graph.Manifests, domain.ManifestReference{
		Kind: kind,
		Path: filepath.Join(b.graph.SourceRootPath, dir, kind.FileName()),
	})
	return b
}

// WithHelper adds a helper source
func (b *WorkspaceGraphBuilder) WithHelper(path string) *WorkspaceGraphBuilder {
	b.graph.Helpers = append(b.graph.Helpers, domain.HelperSource(path))
	return b
}

// WithTemplate adds a template source
func (b *WorkspaceGraphBuilder) WithTemplate(path string) *WorkspaceGraphBuilder {
	b.graph.Templates = append(b.graph.Templates, domain.TemplateSource(path))
	return b
}

// WithEditablePlugin adds an editable plugin whose manifest lives in dir
func (b *WorkspaceGraphBuilder) WithEditablePlugin(name, dir string) *WorkspaceGraphBuilder {
	b.graph.EditablePlugins = append(b.graph.EditablePlugins, domain.EditablePluginEntry{
		Name: name,
		Path: filepath.Join(dir, "Plugin.yaml"),
	})
	return b
}

// WithBuiltModule adds a precompiled plugin module
func (b *WorkspaceGraphBuilder) WithBuiltModule(name, path string) *WorkspaceGraphBuilder {
	b.graph.BuiltModules = append(b.graph.BuiltModules, domain.BuiltPluginModule{Name: name, Path: path})
	return b
}

// WithDestination sets the destination path
func (b *WorkspaceGraphBuilder) WithDestination(path string) *WorkspaceGraphBuilder {
	b.graph.DestinationPath = path
	return b
}

// WithConfig sets the configuration manifest path
func (b *WorkspaceGraphBuilder) WithConfig(path string) *WorkspaceGraphBuilder {
	b.graph.ConfigPath = path
	return b
}

// WithDependencies sets the dependencies manifest path
func (b *WorkspaceGraphBuilder) WithDependencies(path string) *WorkspaceGraphBuilder {
	b.graph.DependenciesPath = path
	return b
}

// WithSetup sets the setup manifest path
func (b *WorkspaceGraphBuilder) WithSetup(path string) *WorkspaceGraphBuilder {
	b.graph.SetupPath = path
	return b
}

// Build returns a copy of the graph built so far
func (b *WorkspaceGraphBuilder) Build() *domain.WorkspaceGraph {
	graph := b.graph
	return &graph
}
