package domain

import "path/filepath"

// PluginMetadata describes a plugin as reported by the plugin loading
// subsystem. Name is the identifier declared by the plugin author and Path
// is the plugin's source directory.
type PluginMetadata struct {
	Name string
	Path string
}

// PluginSet is the outcome of loading the plugins a project configures
type PluginSet struct {
	HelperPlugins []PluginMetadata
}

// EditablePluginEntry is a plugin included as editable source.
// Path points at the plugin manifest; Name is the resolved plugin name,
// which does not have to equal any PluginMetadata.Name.
type EditablePluginEntry struct {
	Name string
	Path string
}

// Directory returns the plugin directory, which is the manifest's parent
func (e EditablePluginEntry) Directory() string {
	return filepath.Dir(e.Path)
}

// BuiltPluginModule is a plugin included as a precompiled dependency
type BuiltPluginModule struct {
	Name string

	// Path is the compiled artifact
	Path string
}
