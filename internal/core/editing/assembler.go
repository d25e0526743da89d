package editing

import (
	"slices"

	"kilometers.ai/edit/internal/core/domain"
)

// Parts are the collections a workspace graph is assembled from
type Parts struct {
	Manifests       []domain.ManifestReference
	Helpers         []domain.HelperSource
	Templates       []domain.TemplateSource
	EditablePlugins []domain.EditablePluginEntry
	BuiltModules    []domain.BuiltPluginModule
}

// Assemble merges the parts into a workspace graph. It fails with a
// NoEditableFilesError naming the source root when there are no manifests,
// editable plugins, helpers or templates. Built modules alone are not editable.
func Assemble(parts Parts, metadata domain.PathMetadata) (*domain.WorkspaceGraph, error) {
	graph := &domain.WorkspaceGraph{
		Manifests:       cloneOrEmpty(parts.Manifests),
		Helpers:         cloneOrEmpty(parts.Helpers),
		Templates:       cloneOrEmpty(parts.Templates),
		EditablePlugins: cloneOrEmpty(parts.EditablePlugins),
		BuiltModules:    cloneOrEmpty(parts.BuiltModules),
		PathMetadata:    metadata,
	}

	if graph.EditableCount() == 0 {
		return nil, &domain.NoEditableFilesError{Directory: metadata.SourceRootPath}
	}
	return graph, nil
}

func cloneOrEmpty[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return slices.Clone(s)
}
