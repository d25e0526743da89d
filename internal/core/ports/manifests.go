package ports

import (
	"context"

	"kilometers.ai/edit/internal/core/domain"
)

// ManifestFilesLocator finds the manifests of a project on disk
type ManifestFilesLocator interface {
	// LocateProjectManifests returns the project and workspace manifests at
	// or below dir. With onlyCurrentDirectory set, subdirectories are not searched.
	LocateProjectManifests(ctx context.Context, dir string, onlyCurrentDirectory bool) ([]domain.ManifestReference, error)

	// LocatePluginManifests returns the paths of plugin manifests at or below dir
	LocatePluginManifests(ctx context.Context, dir string, onlyCurrentDirectory bool) ([]string, error)

	// LocateConfig returns the project configuration manifest, or "" if there is none
	LocateConfig(dir string) string

	// LocateDependencies returns the dependencies manifest, or "" if there is none
	LocateDependencies(dir string) string

	// LocateSetup returns the setup manifest, or "" if there is none
	LocateSetup(dir string) string
}

// HelpersDirectoryLocator finds the shared helpers directory for a project
type HelpersDirectoryLocator interface {
	// Locate returns the helpers directory, or "" if there is none
	Locate(dir string) string
}

// TemplatesDirectoryLocator finds the templates directory for a project
type TemplatesDirectoryLocator interface {
	// Locate returns the templates directory, or "" if there is none
	Locate(dir string) string
}

// SourceGlobber enumerates source files below a directory
type SourceGlobber interface {
	// Glob returns the files below dir whose extension is one of extensions, sorted
	Glob(dir string, extensions ...string) ([]string, error)
}
