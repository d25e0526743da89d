package testfixtures

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"kilometers.ai/edit/internal/core/domain"
	"kilometers.ai/edit/internal/core/ports"
)

// FakeManifestLocator returns canned discovery results
type FakeManifestLocator struct {
	Manifests        []domain.ManifestReference
	PluginManifests  []string
	Config           string
	Dependencies     string
	Setup            string
	ManifestsErr     error
	PluginsErr       error
	OnlyCurrentCalls []bool
}

func (f *FakeManifestLocator) LocateProjectManifests(_ context.Context, _ string, onlyCurrentDirectory bool) ([]domain.ManifestReference, error) {
	f.OnlyCurrentCalls = append(f.OnlyCurrentCalls, onlyCurrentDirectory)
	return f.Manifests, f.ManifestsErr
}

func (f *FakeManifestLocator) LocatePluginManifests(context.Context, string, bool) ([]string, error) {
	return f.PluginManifests, f.PluginsErr
}

func (f *FakeManifestLocator) LocateConfig(string) string       { return f.Config }
func (f *FakeManifestLocator) LocateDependencies(string) string { return f.Dependencies }
func (f *FakeManifestLocator) LocateSetup(string) string        { return f.Setup }

// FakeDirectoryLocator always returns Dir
type FakeDirectoryLocator struct {
	Dir string
}

func (f *FakeDirectoryLocator) Locate(string) string { return f.Dir }

// FakeGlobber returns Files[dir], filtered by extension
type FakeGlobber struct {
	Files map[string][]string
	Err   error
}

func (f *FakeGlobber) Glob(dir string, extensions ...string) ([]string, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	var files []string
	for _, file := range f.Files[dir] {
		for _, ext := range extensions {
			if strings.EqualFold(filepath.Ext(file), ext) {
				files = append(files, file)
				break
			}
		}
	}
	return files, nil
}

// FakeConfigLoader returns Config or Err and records the paths it was asked for
type FakeConfigLoader struct {
	Config *domain.ProjectConfig
	Err    error
	Paths  []string
}

func (f *FakeConfigLoader) LoadConfig(path string) (*domain.ProjectConfig, error) {
	f.Paths = append(f.Paths, path)
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Config == nil {
		return domain.DefaultProjectConfig(), nil
	}
	return f.Config, nil
}

// FakePluginService returns a fixed plugin set
type FakePluginService struct {
	Plugins []domain.PluginMetadata
	Err     error
	Calls   int
}

func (f *FakePluginService) LoadPlugins(context.Context, *domain.ProjectConfig) (*domain.PluginSet, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return &domain.PluginSet{HelperPlugins: f.Plugins}, nil
}

// FakeHelpersBuilder builds one module per plugin under /cache unless Err is set
type FakeHelpersBuilder struct {
	Err         error
	Batches     [][]domain.PluginMetadata
	SearchPaths []string
}

func (f *FakeHelpersBuilder) BuildPlugins(_ context.Context, _ string, searchPaths []string, plugins []domain.PluginMetadata) ([]domain.BuiltPluginModule, error) {
	f.Batches = append(f.Batches, plugins)
	f.SearchPaths = searchPaths
	if f.Err != nil {
		return nil, f.Err
	}
	modules := make([]domain.BuiltPluginModule, 0, len(plugins))
	for _, plugin := range plugins {
		modules = append(modules, domain.BuiltPluginModule{
			Name: plugin.Name,
			Path: filepath.Join(string(filepath.Separator)+"cache", plugin.Name+".a"),
		})
	}
	return modules, nil
}

// FakeMapper records the workspace graph it maps
type FakeMapper struct {
	Err       error
	Workspace *domain.WorkspaceGraph
}

func (f *FakeMapper) Map(_ context.Context, workspace *domain.WorkspaceGraph) (*domain.Graph, error) {
	f.Workspace = workspace
	if f.Err != nil {
		return nil, f.Err
	}
	return &domain.Graph{Name: "Manifests", Path: workspace.DestinationPath, SourceRootPath: workspace.SourceRootPath}, nil
}

// FakeGenerator converts a graph into a descriptor with the same name and path
type FakeGenerator struct {
	Err error
}

func (f *FakeGenerator) Generate(_ context.Context, graph *domain.Graph) (*domain.WorkspaceDescriptor, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return &domain.WorkspaceDescriptor{Name: graph.Name, Path: graph.Path, SourceRoot: graph.SourceRootPath}, nil
}

// FakeWriter returns <descriptor path>/<name>.kmproj without touching disk
type FakeWriter struct {
	Err     error
	Written []*domain.WorkspaceDescriptor
}

func (f *FakeWriter) Write(_ context.Context, descriptor *domain.WorkspaceDescriptor) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.Written = append(f.Written, descriptor)
	return filepath.Join(descriptor.Path, descriptor.Name+".kmproj"), nil
}

// LogEntry is a single message captured by RecordingLogger
type LogEntry struct {
	Level   ports.LogLevel
	Message string
	Err     error
	Fields  map[string]interface{}
}

// RecordingLogger implements ports.LoggingGateway and keeps every entry
type RecordingLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

func (l *RecordingLogger) Log(level ports.LogLevel, message string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: message, Fields: fields})
}

func (l *RecordingLogger) LogError(err error, message string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: ports.LogLevelError, Message: message, Err: err, Fields: fields})
}

// AtLevel returns the entries logged at level
func (l *RecordingLogger) AtLevel(level ports.LogLevel) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var entries []LogEntry
	for _, e := range l.Entries {
		if e.Level == level {
			entries = append(entries, e)
		}
	}
	return entries
}

var (
	_ ports.ManifestFilesLocator             = (*FakeManifestLocator)(nil)
	_ ports.HelpersDirectoryLocator          = (*FakeDirectoryLocator)(nil)
	_ ports.TemplatesDirectoryLocator        = (*FakeDirectoryLocator)(nil)
	_ ports.SourceGlobber                    = (*FakeGlobber)(nil)
	_ ports.ConfigLoader                     = (*FakeConfigLoader)(nil)
	_ ports.PluginService                    = (*FakePluginService)(nil)
	_ ports.ProjectDescriptionHelpersBuilder = (*FakeHelpersBuilder)(nil)
	_ ports.GraphMapper                      = (*FakeMapper)(nil)
	_ ports.DescriptorGenerator              = (*FakeGenerator)(nil)
	_ ports.DescriptorWriter                 = (*FakeWriter)(nil)
	_ ports.LoggingGateway                   = (*RecordingLogger)(nil)
)
