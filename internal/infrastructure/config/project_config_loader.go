package configinfra

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"kilometers.ai/edit/internal/core/domain"
	"kilometers.ai/edit/internal/core/ports"
)

// ProjectConfigLoader loads project configuration manifests from YAML or JSONC files
type ProjectConfigLoader struct{}

// NewProjectConfigLoader creates a new project configuration loader
func NewProjectConfigLoader() *ProjectConfigLoader {
	return &ProjectConfigLoader{}
}

// LoadConfig reads the configuration at path. Plugin paths are resolved
// against the project root, the parent of the directory holding the file.
func (l *ProjectConfigLoader) LoadConfig(path string) (*domain.ProjectConfig, error) {
	if path == "" {
		return domain.DefaultProjectConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := parseProjectConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path

	root := filepath.Dir(filepath.Dir(path))
	for i, plugin := range cfg.Plugins {
		if strings.TrimSpace(plugin.Path) == "" {
			return nil, fmt.Errorf("%s: plugins[%d]: path is required", path, i)
		}
		if !filepath.IsAbs(plugin.Path) {
			cfg.Plugins[i].Path = filepath.Join(root, plugin.Path)
		}
	}

	return cfg, nil
}

func parseProjectConfig(data []byte, ext string) (*domain.ProjectConfig, error) {
	var cfg domain.ProjectConfig

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parsing config JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	return &cfg, nil
}

var _ ports.ConfigLoader = (*ProjectConfigLoader)(nil)
