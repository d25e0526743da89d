package configinfra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kilometers.ai/edit/internal/core/domain"
)

func writeConfig(t *testing.T, name, content string) (root, path string) {
	t.Helper()
	root = t.TempDir()
	path = filepath.Join(root, ".km", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return root, path
}

func TestProjectConfigLoader_LoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "Config.yaml",
			content: `compatible_versions: ["1.2"]
plugins:
  - path: Plugins/Local
  - path: /opt/plugins/Shared
`,
		},
		{
			name: "jsonc with comments and trailing commas",
			file: "Config.jsonc",
			content: `{
  // pinned tool versions
  "compatible_versions": ["1.2"],
  "plugins": [
    {"path": "Plugins/Local"},
    {"path": "/opt/plugins/Shared"}, /* shared across repos */
  ],
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, path := writeConfig(t, tt.file, tt.content)

			cfg, err := NewProjectConfigLoader().LoadConfig(path)

			require.NoError(t, err)
			assert.Equal(t, path, cfg.Path)
			assert.Equal(t, []string{"1.2"}, cfg.CompatibleVersions)
			assert.Equal(t, []domain.PluginLocation{
				{Path: filepath.Join(root, "Plugins", "Local")},
				{Path: "/opt/plugins/Shared"},
			}, cfg.Plugins)
		})
	}
}

func TestProjectConfigLoader_EmptyPathYieldsDefault(t *testing.T) {
	cfg, err := NewProjectConfigLoader().LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProjectConfig(), cfg)
}

func TestProjectConfigLoader_EmptyYAMLFile(t *testing.T) {
	_, path := writeConfig(t, "Config.yaml", "")

	cfg, err := NewProjectConfigLoader().LoadConfig(path)

	require.NoError(t, err)
	assert.Empty(t, cfg.Plugins)
}

func TestProjectConfigLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{name: "unknown yaml field", file: "Config.yaml", content: "plugin_dirs: [x]\n", errMsg: "parsing config YAML"},
		{name: "malformed json", file: "Config.json", content: "{", errMsg: "parsing config JSON"},
		{name: "plugin without path", file: "Config.yaml", content: "plugins:\n  - path: \"\"\n", errMsg: "path is required"},
		{name: "unsupported extension", file: "Config.toml", content: "", errMsg: "unsupported config format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, path := writeConfig(t, tt.file, tt.content)

			_, err := NewProjectConfigLoader().LoadConfig(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProjectConfigLoader_MissingFile(t *testing.T) {
	_, err := NewProjectConfigLoader().LoadConfig(filepath.Join(t.TempDir(), "Config.yaml"))

	assert.Error(t, err)
}
