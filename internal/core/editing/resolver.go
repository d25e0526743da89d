package editing

import (
	"path/filepath"

	"kilometers.ai/edit/internal/core/domain"
)

// ResolvePlugins names the plugins whose manifests are included as editable
// sources. A manifest whose directory is the source directory of a loaded
// plugin takes that plugin's declared name; otherwise it is named after its
// directory. Entries are returned in manifest order.
//
// When several loaded plugins share a directory the first one wins.
func ResolvePlugins(manifestPaths []string, loaded []domain.PluginMetadata) []domain.EditablePluginEntry {
	byDirectory := indexByDirectory(loaded)

	entries := make([]domain.EditablePluginEntry, 0, len(manifestPaths))
	for _, manifestPath := range manifestPaths {
		dir := filepath.Clean(filepath.Dir(manifestPath))

		name := filepath.Base(dir)
		if plugin, ok := byDirectory[dir]; ok {
			name = plugin.Name
		}

		entries = append(entries, domain.EditablePluginEntry{
			Name: name,
			Path: manifestPath,
		})
	}
	return entries
}

// EditableDirectories returns the plugin directories of the given entries
func EditableDirectories(entries []domain.EditablePluginEntry) []string {
	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		dirs = append(dirs, entry.Directory())
	}
	return dirs
}

func indexByDirectory(plugins []domain.PluginMetadata) map[string]domain.PluginMetadata {
	index := make(map[string]domain.PluginMetadata, len(plugins))
	for _, plugin := range plugins {
		dir := filepath.Clean(plugin.Path)
		if _, seen := index[dir]; seen {
			continue
		}
		index[dir] = plugin
	}
	return index
}
