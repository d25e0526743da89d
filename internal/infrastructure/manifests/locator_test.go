package manifests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kilometers.ai/edit/internal/core/domain"
)

// writeFiles creates each relative path under root with placeholder content
func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("name: placeholder\n"), 0o644))
	}
}

func TestFileSystemLocator_LocateProjectManifests(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"Workspace.yaml",
		"Project.yaml",
		"Features/Login/Project.yaml",
		"Derived/Project.yaml",
		".build/checkouts/dep/Project.yaml",
		"Features/Login/project.yml",
	)
	locator := NewFileSystemLocator("")

	t.Run("recursive", func(t *testing.T) {
		got, err := locator.LocateProjectManifests(context.Background(), root, false)

		require.NoError(t, err)
		assert.Equal(t, []domain.ManifestReference{
			{Kind: domain.ManifestKindProject, Path: filepath.Join(root, "Features", "Login", "Project.yaml")},
			{Kind: domain.ManifestKindProject, Path: filepath.Join(root, "Project.yaml")},
			{Kind: domain.ManifestKindWorkspace, Path: filepath.Join(root, "Workspace.yaml")},
		}, got)
	})

	t.Run("only current directory", func(t *testing.T) {
		got, err := locator.LocateProjectManifests(context.Background(), root, true)

		require.NoError(t, err)
		assert.Len(t, got, 2)
		for _, m := range got {
			assert.Equal(t, root, filepath.Dir(m.Path))
		}
	})
}

func TestFileSystemLocator_LocateProjectManifests_MissingDirectory(t *testing.T) {
	locator := NewFileSystemLocator("")

	_, err := locator.LocateProjectManifests(context.Background(), filepath.Join(t.TempDir(), "missing"), false)

	assert.Error(t, err)
}

func TestFileSystemLocator_LocateProjectManifests_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "Project.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSystemLocator("").LocateProjectManifests(ctx, root, false)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSystemLocator_LocatePluginManifests(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"Plugins/B/Plugin.yaml",
		"Plugins/A/Plugin.yaml",
		"vendor/x/Plugin.yaml",
	)

	got, err := NewFileSystemLocator("").LocatePluginManifests(context.Background(), root, false)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Plugins", "A", "Plugin.yaml"),
		filepath.Join(root, "Plugins", "B", "Plugin.yaml"),
	}, got)
}

func TestFileSystemLocator_ProjectWideManifests(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		".km/Config.json",
		".km/Config.yml",
		".km/Dependencies.yaml",
		".km/Helpers/Project+Defaults.go",
		"Setup.yaml",
		"Features/Login/Project.yaml",
	)
	locator := NewFileSystemLocator("")
	nested := filepath.Join(root, "Features", "Login")

	assert.Equal(t, filepath.Join(root, ".km", "Config.yml"), locator.LocateConfig(root), "yaml variants come first")
	assert.Equal(t, filepath.Join(root, ".km", "Config.yml"), locator.LocateConfig(nested), "found from a nested directory")
	assert.Equal(t, filepath.Join(root, ".km", "Dependencies.yaml"), locator.LocateDependencies(nested))
	assert.Equal(t, filepath.Join(root, "Setup.yaml"), locator.LocateSetup(root))
	assert.Empty(t, locator.LocateSetup(nested))

	assert.Equal(t, filepath.Join(root, ".km", "Helpers"), NewHelpersLocator(locator).Locate(nested))
	assert.Empty(t, NewTemplatesLocator(locator).Locate(nested))
}

func TestFileSystemLocator_CustomDirectoryName(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "manifests/Config.jsonc", "manifests/Templates/feature.tmpl")
	locator := NewFileSystemLocator("manifests")

	assert.Equal(t, filepath.Join(root, "manifests", "Config.jsonc"), locator.LocateConfig(root))
	assert.Equal(t, filepath.Join(root, "manifests", "Templates"), NewTemplatesLocator(locator).Locate(root))
}
