package domain

// PluginLocation points at a plugin configured by a project
type PluginLocation struct {
	Path string `yaml:"path" json:"path"`
}

// ProjectConfig is the configuration manifest of an edited project
type ProjectConfig struct {
	CompatibleVersions []string         `yaml:"compatible_versions,omitempty" json:"compatible_versions,omitempty"`
	Plugins            []PluginLocation `yaml:"plugins,omitempty" json:"plugins,omitempty"`

	// Path is the file the configuration was loaded from
	Path string `yaml:"-" json:"-"`
}

// DefaultProjectConfig returns the configuration used when a project has none
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{}
}
