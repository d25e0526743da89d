package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"

	"kilometers.ai/edit/internal/core/domain"
	"kilometers.ai/edit/internal/core/ports"
)

const (
	// GraphName is the name of every mapped workspace project
	GraphName = "Manifests"

	// HelpersTargetName is the target holding the shared helper sources
	HelpersTargetName = "ProjectDescriptionHelpers"

	manifestsSuffix      = "Manifests"
	pluginHelpersDirName = "Helpers"
)

// GraphMapper turns a WorkspaceGraph into a project structure with one
// target per group of editable files
type GraphMapper struct {
	globber ports.SourceGlobber
}

// NewGraphMapper creates a mapper that lists plugin helper sources with globber
func NewGraphMapper(globber ports.SourceGlobber) *GraphMapper {
	return &GraphMapper{globber: globber}
}

// Map builds the project graph
func (m *GraphMapper) Map(ctx context.Context, workspace *domain.WorkspaceGraph) (*domain.Graph, error) {
	if workspace == nil {
		return nil, errors.New("workspace graph is nil")
	}
	if workspace.DestinationPath == "" {
		return nil, errors.New("workspace graph has no destination path")
	}

	names := newNameSet()
	graph := &domain.Graph{
		Name:           GraphName,
		Path:           workspace.DestinationPath,
		SourceRootPath: workspace.SourceRootPath,
		ToolBinaryPath: workspace.ToolBinaryPath,
		Libraries:      make([]domain.Library, 0, len(workspace.BuiltModules)),
	}

	// Libraries and targets share one namespace so a dependency names exactly one of them.
	// Libraries are claimed first and keep their module names.
	var moduleNames []string
	for _, module := range workspace.BuiltModules {
		name := names.claim(module.Name)
		graph.Libraries = append(graph.Libraries, domain.Library{Name: name, Path: module.Path})
		moduleNames = append(moduleNames, name)
	}

	var pluginTargets []domain.Target
	for _, plugin := range workspace.EditablePlugins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sources, err := m.pluginSources(plugin)
		if err != nil {
			return nil, fmt.Errorf("mapping plugin %s: %w", plugin.Name, err)
		}
		pluginTargets = append(pluginTargets, domain.Target{
			Name:         names.claim(plugin.Name),
			Kind:         domain.TargetKindPlugin,
			Sources:      sources,
			Dependencies: append([]string{}, moduleNames...),
		})
	}
	pluginNames := make([]string, 0, len(pluginTargets))
	for _, t := range pluginTargets {
		pluginNames = append(pluginNames, t.Name)
	}

	var manifestDeps []string
	if len(workspace.Helpers) > 0 {
		helpers := domain.Target{
			Name:         names.claim(HelpersTargetName),
			Kind:         domain.TargetKindHelpers,
			Dependencies: concat(moduleNames, pluginNames),
		}
		for _, h := range workspace.Helpers {
			helpers.Sources = append(helpers.Sources, string(h))
		}
		graph.Targets = append(graph.Targets, helpers)
		manifestDeps = append(manifestDeps, helpers.Name)
	}
	graph.Targets = append(graph.Targets, pluginTargets...)
	manifestDeps = concat(manifestDeps, pluginNames, moduleNames)

	if len(workspace.Templates) > 0 {
		templates := domain.Target{Name: names.claim("Templates"), Kind: domain.TargetKindTemplates}
		for _, t := range workspace.Templates {
			templates.Sources = append(templates.Sources, string(t))
		}
		graph.Targets = append(graph.Targets, templates)
	}

	for _, single := range []struct {
		name string
		kind domain.TargetKind
		path string
	}{
		{"Config", domain.TargetKindConfig, workspace.ConfigPath},
		{"Dependencies", domain.TargetKindDependencies, workspace.DependenciesPath},
		{"Setup", domain.TargetKindSetup, workspace.SetupPath},
	} {
		if single.path == "" {
			continue
		}
		graph.Targets = append(graph.Targets, domain.Target{
			Name:         names.claim(single.name),
			Kind:         single.kind,
			Sources:      []string{single.path},
			Dependencies: append([]string{}, manifestDeps...),
		})
	}

	for _, group := range groupByDirectory(workspace.Manifests) {
		graph.Targets = append(graph.Targets, domain.Target{
			Name:         names.claim(manifestsTargetName(group.dir, workspace.SourceRootPath)),
			Kind:         domain.TargetKindManifests,
			Sources:      group.paths,
			Dependencies: append([]string{}, manifestDeps...),
		})
	}

	return graph, nil
}

// pluginSources lists the plugin manifest followed by its helper sources
func (m *GraphMapper) pluginSources(plugin domain.EditablePluginEntry) ([]string, error) {
	sources := []string{plugin.Path}
	helpers, err := m.globber.Glob(filepath.Join(plugin.Directory(), pluginHelpersDirName), ".go")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return append(sources, helpers...), nil
}

type manifestGroup struct {
	dir   string
	paths []string
}

// groupByDirectory groups manifests by parent directory, in order of first appearance
func groupByDirectory(manifests []domain.ManifestReference) []manifestGroup {
	var groups []manifestGroup
	index := make(map[string]int)
	for _, m := range manifests {
		dir := filepath.Dir(filepath.Clean(m.Path))
		i, ok := index[dir]
		if !ok {
			i = len(groups)
			index[dir] = i
			groups = append(groups, manifestGroup{dir: dir})
		}
		groups[i].paths = append(groups[i].paths, m.Path)
	}
	return groups
}

func manifestsTargetName(dir, sourceRoot string) string {
	base := filepath.Base(dir)
	if sourceRoot != "" && filepath.Clean(sourceRoot) == dir {
		base = filepath.Base(filepath.Clean(sourceRoot))
	}
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	return base + manifestsSuffix
}

// nameSet hands out unique target names, suffixing repeats with a counter
type nameSet map[string]bool

func newNameSet() nameSet {
	return make(nameSet)
}

func (s nameSet) claim(name string) string {
	candidate := name
	for i := 2; s[candidate]; i++ {
		candidate = name + strconv.Itoa(i)
	}
	s[candidate] = true
	return candidate
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

var _ ports.GraphMapper = (*GraphMapper)(nil)
