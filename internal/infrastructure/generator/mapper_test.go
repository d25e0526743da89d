package generator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kilometers.ai/edit/internal/core/domain"
	"kilometers.ai/edit/internal/core/testfixtures"
)

var root = filepath.Join(string(filepath.Separator)+"work", "App")

func TestGraphMapper_Map(t *testing.T) {
	pluginDir := filepath.Join(root, "Plugins", "Shared")
	globber := &testfixtures.FakeGlobber{Files: map[string][]string{
		filepath.Join(pluginDir, "Helpers"): {filepath.Join(pluginDir, "Helpers", "strings.go")},
	}}
	workspace := testfixtures.NewWorkspaceGraphBuilder(root).
		WithProjectManifest("").
		WithWorkspaceManifest("").
		WithProjectManifest(filepath.Join("Features", "Login")).
		WithHelper(filepath.Join(root, ".km", "Helpers", "Project.go")).
		WithTemplate(filepath.Join(root, ".km", "Templates", "feature.tmpl")).
		WithEditablePlugin("SharedHelpers", pluginDir).
		WithBuiltModule("Lint", "/cache/Lint.a").
		WithConfig(filepath.Join(root, ".km", "Config.yaml")).
		Build()

	graph, err := NewGraphMapper(globber).Map(context.Background(), workspace)

	require.NoError(t, err)
	assert.Equal(t, GraphName, graph.Name)
	assert.Equal(t, workspace.DestinationPath, graph.Path)
	assert.Equal(t, root, graph.SourceRootPath)
	assert.Equal(t, []domain.Library{{Name: "Lint", Path: "/cache/Lint.a"}}, graph.Libraries)

	var names []string
	for _, target := range graph.Targets {
		names = append(names, target.Name)
	}
	assert.Equal(t, []string{HelpersTargetName, "SharedHelpers", "Templates", "Config", "AppManifests", "LoginManifests"}, names)

	helpers, ok := graph.Target(HelpersTargetName)
	require.True(t, ok)
	assert.Equal(t, []string{"Lint", "SharedHelpers"}, helpers.Dependencies)

	plugin, ok := graph.Target("SharedHelpers")
	require.True(t, ok)
	assert.Equal(t, domain.TargetKindPlugin, plugin.Kind)
	assert.Equal(t, []string{
		filepath.Join(pluginDir, "Plugin.yaml"),
		filepath.Join(pluginDir, "Helpers", "strings.go"),
	}, plugin.Sources)

	appManifests, ok := graph.Target("AppManifests")
	require.True(t, ok)
	assert.Len(t, appManifests.Sources, 2)
	assert.Equal(t, []string{HelpersTargetName, "SharedHelpers", "Lint"}, appManifests.Dependencies)
}

func TestGraphMapper_Map_DeduplicatesNames(t *testing.T) {
	workspace := testfixtures.NewWorkspaceGraphBuilder(root).
		WithProjectManifest("").
		WithProjectManifest(filepath.Join("Vendor", "App")).
		WithProjectManifest(filepath.Join("Other", "App")).
		Build()

	graph, err := NewGraphMapper(&testfixtures.FakeGlobber{}).Map(context.Background(), workspace)

	require.NoError(t, err)
	require.Len(t, graph.Targets, 3)
	assert.Equal(t, "AppManifests", graph.Targets[0].Name)
	assert.Equal(t, "AppManifests2", graph.Targets[1].Name)
	assert.Equal(t, "AppManifests3", graph.Targets[2].Name)
}

func TestGraphMapper_Map_OnlyBuiltModulesAndPlugins(t *testing.T) {
	workspace := testfixtures.NewWorkspaceGraphBuilder(root).
		WithEditablePlugin("Shared", filepath.Join(root, "Shared")).
		Build()

	graph, err := NewGraphMapper(&testfixtures.FakeGlobber{}).Map(context.Background(), workspace)

	require.NoError(t, err)
	require.Len(t, graph.Targets, 1)
	assert.Equal(t, []string{filepath.Join(root, "Shared", "Plugin.yaml")}, graph.Targets[0].Sources)
	assert.Empty(t, graph.Libraries)
}

func TestGraphMapper_Map_Errors(t *testing.T) {
	mapper := NewGraphMapper(&testfixtures.FakeGlobber{})

	_, err := mapper.Map(context.Background(), nil)
	assert.Error(t, err)

	noDestination := testfixtures.NewWorkspaceGraphBuilder(root).WithProjectManifest("").WithDestination("").Build()
	_, err = mapper.Map(context.Background(), noDestination)
	assert.ErrorContains(t, err, "destination")

	globErr := errors.New("permission denied")
	failing := NewGraphMapper(&testfixtures.FakeGlobber{Err: globErr})
	withPlugin := testfixtures.NewWorkspaceGraphBuilder(root).WithEditablePlugin("Shared", "/plugins/Shared").Build()
	_, err = failing.Map(context.Background(), withPlugin)
	assert.ErrorIs(t, err, globErr)
}

func TestGraphMapper_Map_LibrariesAndTargetsShareNames(t *testing.T) {
	workspace := testfixtures.NewWorkspaceGraphBuilder(root).
		WithProjectManifest("").
		WithBuiltModule("Config", "/cache/Config.a").
		WithBuiltModule("Config", "/cache/Config-other.a").
		WithConfig(filepath.Join(root, ".km", "Config.yaml")).
		Build()

	graph, err := NewGraphMapper(&testfixtures.FakeGlobber{}).Map(context.Background(), workspace)

	require.NoError(t, err)
	assert.Equal(t, []domain.Library{
		{Name: "Config", Path: "/cache/Config.a"},
		{Name: "Config2", Path: "/cache/Config-other.a"},
	}, graph.Libraries)

	config, ok := graph.Target("Config3")
	require.True(t, ok)
	assert.Equal(t, domain.TargetKindConfig, config.Kind)
	_, clash := graph.Target("Config")
	assert.False(t, clash, "no target may reuse a library name")

	manifests, ok := graph.Target("AppManifests")
	require.True(t, ok)
	assert.Equal(t, []string{"Config", "Config2"}, manifests.Dependencies)
}
