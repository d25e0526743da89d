package editing

import (
	"context"
	"path/filepath"

	"kilometers.ai/edit/internal/core/domain"
)

// BuildFunc compiles a batch of plugins into modules. It fails as a whole.
type BuildFunc func(ctx context.Context, plugins []domain.PluginMetadata) ([]domain.BuiltPluginModule, error)

// CompileOnlyPlugins returns the loaded plugins that are not already
// represented by an editable plugin directory, in their loaded order
func CompileOnlyPlugins(editableDirectories []string, loaded []domain.PluginMetadata) []domain.PluginMetadata {
	editable := make(map[string]struct{}, len(editableDirectories))
	for _, dir := range editableDirectories {
		editable[filepath.Clean(dir)] = struct{}{}
	}

	var plugins []domain.PluginMetadata
	for _, plugin := range loaded {
		if _, ok := editable[filepath.Clean(plugin.Path)]; ok {
			continue
		}
		plugins = append(plugins, plugin)
	}
	return plugins
}

// BuildHelperModules compiles the compile-only plugins in a single batch.
// If the batch fails, the outcome is degraded to no modules at all.
func BuildHelperModules(ctx context.Context, editableDirectories []string, loaded []domain.PluginMetadata, build BuildFunc) Outcome[[]domain.BuiltPluginModule] {
	plugins := CompileOnlyPlugins(editableDirectories, loaded)
	if len(plugins) == 0 {
		return Outcome[[]domain.BuiltPluginModule]{Value: []domain.BuiltPluginModule{}}
	}

	outcome := Degrade(domain.PluginBuildDegradation, []domain.BuiltPluginModule{}, func() ([]domain.BuiltPluginModule, error) {
		return build(ctx, plugins)
	})
	if outcome.Value == nil {
		outcome.Value = []domain.BuiltPluginModule{}
	}
	return outcome
}
