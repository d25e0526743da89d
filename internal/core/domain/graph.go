package domain

// TargetKind classifies targets of a mapped workspace project
type TargetKind string

const (
	TargetKindManifests    TargetKind = "manifests"
	TargetKindHelpers      TargetKind = "helpers"
	TargetKindPlugin       TargetKind = "plugin"
	TargetKindTemplates    TargetKind = "templates"
	TargetKindConfig       TargetKind = "config"
	TargetKindDependencies TargetKind = "dependencies"
	TargetKindSetup        TargetKind = "setup"
)

// Target is a buildable group of sources in the mapped project
type Target struct {
	Name         string
	Kind         TargetKind
	Sources      []string
	Dependencies []string
}

// Library is a precompiled module linked by targets of the mapped project
type Library struct {
	Name string
	Path string
}

// Graph is the project structure derived from a WorkspaceGraph
type Graph struct {
	Name           string
	Path           string
	SourceRootPath string
	ToolBinaryPath string
	Targets        []Target
	Libraries      []Library
}

// Target looks up a target by name
func (g *Graph) Target(name string) (Target, bool) {
	for _, t := range g.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// WorkspaceDescriptor is the serializable form of a Graph handed to a writer
type WorkspaceDescriptor struct {
	Name           string              `yaml:"name"`
	Path           string              `yaml:"-"`
	SourceRoot     string              `yaml:"source_root"`
	ToolBinaryPath string              `yaml:"tool_binary_path,omitempty"`
	Targets        []TargetDescriptor  `yaml:"targets"`
	Libraries      []LibraryDescriptor `yaml:"libraries,omitempty"`
}

// TargetDescriptor is the serializable form of a Target. Sources are
// relative to the descriptor's source root when possible.
type TargetDescriptor struct {
	Name         string   `yaml:"name"`
	Kind         string   `yaml:"kind"`
	Sources      []string `yaml:"sources"`
	Dependencies []string `yaml:"dependencies,omitempty"`
}

// LibraryDescriptor is the serializable form of a Library
type LibraryDescriptor struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}
