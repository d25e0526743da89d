package domain

import "fmt"

// ManifestKind identifies which kind of configuration manifest was discovered
type ManifestKind string

const (
	ManifestKindProject   ManifestKind = "project"
	ManifestKindWorkspace ManifestKind = "workspace"
)

// FileName returns the manifest file name used on disk for this kind
func (k ManifestKind) FileName() string {
	switch k {
	case ManifestKindProject:
		return "Project.yaml"
	case ManifestKindWorkspace:
		return "Workspace.yaml"
	default:
		return ""
	}
}

// ParseManifestKind converts a manifest kind string into a ManifestKind
func ParseManifestKind(s string) (ManifestKind, error) {
	switch ManifestKind(s) {
	case ManifestKindProject:
		return ManifestKindProject, nil
	case ManifestKindWorkspace:
		return ManifestKindWorkspace, nil
	default:
		return "", fmt.Errorf("unknown manifest kind: %q (must be project or workspace)", s)
	}
}

// ManifestReference identifies a discovered configuration manifest.
// It is immutable once discovered.
type ManifestReference struct {
	Kind ManifestKind
	Path string
}

// HelperSource is a shared helper source file included in the workspace
type HelperSource string

// TemplateSource is a template file included in the workspace
type TemplateSource string
