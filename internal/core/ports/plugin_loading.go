package ports

import (
	"context"

	"kilometers.ai/edit/internal/core/domain"
)

// ConfigLoader loads the configuration manifest of an edited project
type ConfigLoader interface {
	// LoadConfig loads the configuration at path. An empty path yields the default configuration.
	LoadConfig(path string) (*domain.ProjectConfig, error)
}

// PluginService loads the plugins a project configuration refers to
type PluginService interface {
	// LoadPlugins resolves every configured plugin. It may touch the network or
	// the filesystem and fails as a whole.
	LoadPlugins(ctx context.Context, config *domain.ProjectConfig) (*domain.PluginSet, error)
}

// ProjectDescriptionHelpersBuilder compiles plugin helper sources into modules
type ProjectDescriptionHelpersBuilder interface {
	// BuildPlugins compiles every plugin in one batch. A failure for any plugin fails the batch.
	BuildPlugins(ctx context.Context, rootDir string, searchPaths []string, plugins []domain.PluginMetadata) ([]domain.BuiltPluginModule, error)
}
