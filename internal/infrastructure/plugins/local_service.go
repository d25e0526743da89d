package plugins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"kilometers.ai/edit/internal/core/domain"
	"kilometers.ai/edit/internal/core/ports"
)

const (
	manifestFileName     = "Plugin.yaml"
	helpersDirectoryName = "Helpers"
)

// pluginManifest is the Plugin.yaml written by plugin authors
type pluginManifest struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// LocalPluginService loads plugins from local directories referenced by the project configuration
type LocalPluginService struct{}

// NewLocalPluginService creates a new local plugin service
func NewLocalPluginService() *LocalPluginService {
	return &LocalPluginService{}
}

// LoadPlugins reads the manifest of every configured plugin. Plugins that
// ship a Helpers directory are reported as helper plugins. Any plugin that
// cannot be read fails the whole call.
func (s *LocalPluginService) LoadPlugins(ctx context.Context, config *domain.ProjectConfig) (*domain.PluginSet, error) {
	set := &domain.PluginSet{HelperPlugins: []domain.PluginMetadata{}}
	if config == nil {
		return set, nil
	}

	for _, location := range config.Plugins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		manifest, err := readPluginManifest(location.Path)
		if err != nil {
			return nil, err
		}

		if info, err := os.Stat(filepath.Join(location.Path, helpersDirectoryName)); err == nil && info.IsDir() {
			set.HelperPlugins = append(set.HelperPlugins, domain.PluginMetadata{
				Name: manifest.Name,
				Path: filepath.Clean(location.Path),
			})
		}
	}

	return set, nil
}

func readPluginManifest(dir string) (*pluginManifest, error) {
	path := filepath.Join(dir, manifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plugin manifest: %w", err)
	}

	var manifest pluginManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing plugin manifest %s: %w", path, err)
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return nil, fmt.Errorf("plugin manifest %s: name is required", path)
	}
	if err := validatePluginName(manifest.Name); err != nil {
		return nil, fmt.Errorf("plugin manifest %s: %w", path, err)
	}

	return &manifest, nil
}

// validatePluginName rejects names that are not a single path element.
// Names become artifact file names in the cache.
func validatePluginName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid plugin name %q: must not contain path separators or be . or ..", name)
	}
	return nil
}

var _ ports.PluginService = (*LocalPluginService)(nil)
