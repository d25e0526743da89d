package services

import (
	"context"
	"fmt"
	"path/filepath"

	"kilometers.ai/edit/internal/core/domain"
	"kilometers.ai/edit/internal/core/editing"
	"kilometers.ai/edit/internal/core/ports"
)

var (
	helperExtensions   = []string{".go"}
	templateExtensions = []string{".go", ".tmpl"}
)

// EditCollaborators are the external dependencies of an EditService
type EditCollaborators struct {
	ManifestLocator  ports.ManifestFilesLocator
	HelpersLocator   ports.HelpersDirectoryLocator
	TemplatesLocator ports.TemplatesDirectoryLocator
	Globber          ports.SourceGlobber
	ConfigLoader     ports.ConfigLoader
	PluginService    ports.PluginService
	HelpersBuilder   ports.ProjectDescriptionHelpersBuilder
	Mapper           ports.GraphMapper
	Generator        ports.DescriptorGenerator
	Writer           ports.DescriptorWriter
	Logger           ports.LoggingGateway
}

// EditService assembles the editable workspace of a directory and hands it
// to the generator. It keeps no state between edits.
type EditService struct {
	collaborators  EditCollaborators
	toolBinaryPath string
	onStateChange  func(from, to EditState)
}

// NewEditService creates a new edit service. toolBinaryPath is the running
// binary; its directory is used as the search path for plugin modules.
func NewEditService(collaborators EditCollaborators, toolBinaryPath string) *EditService {
	return &EditService{
		collaborators:  collaborators,
		toolBinaryPath: toolBinaryPath,
	}
}

// SetStateObserver registers fn to be called on every state transition
func (s *EditService) SetStateObserver(fn func(from, to EditState)) {
	s.onStateChange = fn
}

// EditOption customizes a single edit
type EditOption func(*editOptions)

type editOptions struct {
	onlyCurrentDirectory bool
}

// OnlyCurrentDirectory restricts manifest discovery to the editing directory itself
func OnlyCurrentDirectory() EditOption {
	return func(o *editOptions) {
		o.onlyCurrentDirectory = true
	}
}

// discovery holds everything located on disk for an edit
type discovery struct {
	manifests       []domain.ManifestReference
	pluginManifests []string
	configPath      string
	dependencies    string
	setup           string
	helpers         []domain.HelperSource
	templates       []domain.TemplateSource
}

// Edit builds the editable workspace for editingPath, writes it to
// destinationPath and returns where it was generated. Plugin loading and
// plugin building degrade to empty results and are reported as warnings;
// every other failure aborts the edit.
func (s *EditService) Edit(ctx context.Context, editingPath, destinationPath string, opts ...EditOption) (*domain.EditResult, error) {
	options := &editOptions{}
	for _, opt := range opts {
		opt(options)
	}

	editingPath = filepath.Clean(editingPath)
	run := &editRun{service: s, state: StateDiscovering}
	result := &domain.EditResult{}

	found, err := s.discover(ctx, editingPath, options.onlyCurrentDirectory)
	if err != nil {
		return nil, run.fail(&domain.CollaboratorError{Stage: domain.StageDiscovery, Err: err})
	}
	s.log(ports.LogLevelDebug, "Discovered editable files", map[string]interface{}{
		"path":             editingPath,
		"manifests":        len(found.manifests),
		"plugin_manifests": len(found.pluginManifests),
		"helpers":          len(found.helpers),
		"templates":        len(found.templates),
	})

	run.transition(StateResolvingPlugins)
	loaded := s.loadPlugins(ctx, found.configPath)
	if loaded.Degraded() {
		s.warn(result, loaded.Degradation)
	}
	editablePlugins := editing.ResolvePlugins(found.pluginManifests, loaded.Value)

	run.transition(StateBuildingModules)
	built := editing.BuildHelperModules(ctx, editing.EditableDirectories(editablePlugins), loaded.Value,
		func(ctx context.Context, plugins []domain.PluginMetadata) ([]domain.BuiltPluginModule, error) {
			return s.collaborators.HelpersBuilder.BuildPlugins(ctx, editingPath, s.searchPaths(), plugins)
		})
	if built.Degraded() {
		s.warn(result, built.Degradation)
	}

	run.transition(StateAssembling)
	graph, err := editing.Assemble(editing.Parts{
		Manifests:       found.manifests,
		Helpers:         found.helpers,
		Templates:       found.templates,
		EditablePlugins: editablePlugins,
		BuiltModules:    built.Value,
	}, domain.PathMetadata{
		ToolBinaryPath:   s.toolBinaryPath,
		SourceRootPath:   editingPath,
		DestinationPath:  destinationPath,
		ConfigPath:       found.configPath,
		DependenciesPath: found.dependencies,
		SetupPath:        found.setup,
	})
	if err != nil {
		return nil, run.fail(err)
	}
	result.Graph = graph

	run.transition(StateDelegating)
	path, err := s.delegate(ctx, graph)
	if err != nil {
		return nil, run.fail(err)
	}
	result.Path = domain.WorkspacePath(path)

	run.transition(StateDone)
	s.log(ports.LogLevelInfo, "Generated editable workspace", map[string]interface{}{
		"path":     path,
		"warnings": len(result.Warnings),
	})
	return result, nil
}

func (s *EditService) discover(ctx context.Context, dir string, onlyCurrentDirectory bool) (*discovery, error) {
	locator := s.collaborators.ManifestLocator

	manifests, err := locator.LocateProjectManifests(ctx, dir, onlyCurrentDirectory)
	if err != nil {
		return nil, fmt.Errorf("locating project manifests: %w", err)
	}
	pluginManifests, err := locator.LocatePluginManifests(ctx, dir, onlyCurrentDirectory)
	if err != nil {
		return nil, fmt.Errorf("locating plugin manifests: %w", err)
	}

	found := &discovery{
		manifests:       manifests,
		pluginManifests: pluginManifests,
		configPath:      locator.LocateConfig(dir),
		dependencies:    locator.LocateDependencies(dir),
		setup:           locator.LocateSetup(dir),
	}

	helpers, err := s.globSources(s.collaborators.HelpersLocator.Locate(dir), helperExtensions)
	if err != nil {
		return nil, fmt.Errorf("listing helpers: %w", err)
	}
	for _, path := range helpers {
		found.helpers = append(found.helpers, domain.HelperSource(path))
	}

	templates, err := s.globSources(s.collaborators.TemplatesLocator.Locate(dir), templateExtensions)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	for _, path := range templates {
		found.templates = append(found.templates, domain.TemplateSource(path))
	}

	return found, nil
}

func (s *EditService) globSources(dir string, extensions []string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	return s.collaborators.Globber.Glob(dir, extensions...)
}

// loadPlugins loads the project configuration and its plugins. Either
// failing yields an empty plugin set.
func (s *EditService) loadPlugins(ctx context.Context, configPath string) editing.Outcome[[]domain.PluginMetadata] {
	return editing.Degrade(domain.PluginLoadDegradation, []domain.PluginMetadata{}, func() ([]domain.PluginMetadata, error) {
		config, err := s.collaborators.ConfigLoader.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		set, err := s.collaborators.PluginService.LoadPlugins(ctx, config)
		if err != nil {
			return nil, err
		}
		if set == nil || set.HelperPlugins == nil {
			return []domain.PluginMetadata{}, nil
		}
		return set.HelperPlugins, nil
	})
}

func (s *EditService) delegate(ctx context.Context, workspace *domain.WorkspaceGraph) (string, error) {
	graph, err := s.collaborators.Mapper.Map(ctx, workspace)
	if err != nil {
		return "", &domain.CollaboratorError{Stage: domain.StageMapping, Err: err}
	}
	descriptor, err := s.collaborators.Generator.Generate(ctx, graph)
	if err != nil {
		return "", &domain.CollaboratorError{Stage: domain.StageGeneration, Err: err}
	}
	path, err := s.collaborators.Writer.Write(ctx, descriptor)
	if err != nil {
		return "", &domain.CollaboratorError{Stage: domain.StageWriting, Err: err}
	}
	return path, nil
}

func (s *EditService) searchPaths() []string {
	if s.toolBinaryPath == "" {
		return nil
	}
	return []string{filepath.Dir(s.toolBinaryPath)}
}

func (s *EditService) warn(result *domain.EditResult, degradation *domain.Degradation) {
	result.Warnings = append(result.Warnings, degradation)
	s.log(ports.LogLevelWarn, degradation.Error(), map[string]interface{}{
		"kind": string(degradation.Kind),
	})
}

func (s *EditService) log(level ports.LogLevel, message string, fields map[string]interface{}) {
	if s.collaborators.Logger == nil {
		return
	}
	s.collaborators.Logger.Log(level, message, fields)
}

// editRun tracks the state of a single edit
type editRun struct {
	service *EditService
	state   EditState
}

func (r *editRun) transition(to EditState) {
	from := r.state
	r.state = to
	r.service.log(ports.LogLevelDebug, "Edit state changed", map[string]interface{}{
		"from": from.String(),
		"to":   to.String(),
	})
	if r.service.onStateChange != nil {
		r.service.onStateChange(from, to)
	}
}

func (r *editRun) fail(err error) error {
	r.transition(StateFailed)
	if r.service.collaborators.Logger != nil {
		r.service.collaborators.Logger.LogError(err, "Edit failed", nil)
	}
	return fmt.Errorf("failed to edit: %w", err)
}
