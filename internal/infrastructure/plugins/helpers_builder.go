package plugins

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"kilometers.ai/edit/internal/core/domain"
	"kilometers.ai/edit/internal/core/ports"
)

const (
	// SearchPathsEnv carries the module search paths to the compiler
	SearchPathsEnv = "KM_HELPERS_SEARCH_PATHS"

	// RootDirectoryEnv carries the edited project's root to the compiler
	RootDirectoryEnv = "KM_ROOT_DIRECTORY"

	artifactExtension = ".a"
)

// DefaultCompilerCommand compiles a helpers package into an archive
var DefaultCompilerCommand = []string{"go", "build", "-buildmode=archive"}

// CommandRunner runs name with args in dir and returns its combined output
type CommandRunner func(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error)

// CommandHelpersBuilder compiles plugin helpers by running an external
// compiler. Artifacts are cached by the content of their sources.
type CommandHelpersBuilder struct {
	cacheDirectory string
	command        []string
	globber        ports.SourceGlobber
	run            CommandRunner
}

// NewCommandHelpersBuilder creates a builder writing artifacts under
// cacheDirectory. An empty command uses DefaultCompilerCommand.
// A relative cacheDirectory is resolved against the working directory,
// since the compiler runs inside each plugin's helpers directory.
func NewCommandHelpersBuilder(cacheDirectory string, command []string, globber ports.SourceGlobber) *CommandHelpersBuilder {
	if len(command) == 0 {
		command = DefaultCompilerCommand
	}
	if abs, err := filepath.Abs(cacheDirectory); err == nil {
		cacheDirectory = abs
	}
	return &CommandHelpersBuilder{
		cacheDirectory: cacheDirectory,
		command:        command,
		globber:        globber,
		run:            runCommand,
	}
}

// SetRunner replaces the function used to run the compiler
func (b *CommandHelpersBuilder) SetRunner(run CommandRunner) {
	b.run = run
}

// BuildPlugins compiles the helpers of every plugin. The first failure fails the batch.
func (b *CommandHelpersBuilder) BuildPlugins(ctx context.Context, rootDir string, searchPaths []string, plugins []domain.PluginMetadata) ([]domain.BuiltPluginModule, error) {
	modules := make([]domain.BuiltPluginModule, 0, len(plugins))
	for _, plugin := range plugins {
		module, err := b.buildPlugin(ctx, rootDir, searchPaths, plugin)
		if err != nil {
			return nil, fmt.Errorf("plugin %s: %w", plugin.Name, err)
		}
		modules = append(modules, module)
	}
	return modules, nil
}

func (b *CommandHelpersBuilder) buildPlugin(ctx context.Context, rootDir string, searchPaths []string, plugin domain.PluginMetadata) (domain.BuiltPluginModule, error) {
	if err := validatePluginName(plugin.Name); err != nil {
		return domain.BuiltPluginModule{}, err
	}
	helpersDir := filepath.Join(plugin.Path, helpersDirectoryName)
	sources, err := b.globber.Glob(helpersDir, ".go")
	if err != nil {
		return domain.BuiltPluginModule{}, fmt.Errorf("listing helpers: %w", err)
	}
	if len(sources) == 0 {
		return domain.BuiltPluginModule{}, fmt.Errorf("no helper sources in %s", helpersDir)
	}

	key, err := sourcesKey(plugin.Name, helpersDir, sources, searchPaths)
	if err != nil {
		return domain.BuiltPluginModule{}, err
	}

	artifact := filepath.Join(b.cacheDirectory, "Plugins", plugin.Name+"-"+key+artifactExtension)
	if info, err := os.Stat(artifact); err == nil && !info.IsDir() {
		return domain.BuiltPluginModule{Name: plugin.Name, Path: artifact}, nil
	}

	if err := os.MkdirAll(filepath.Dir(artifact), 0o755); err != nil {
		return domain.BuiltPluginModule{}, fmt.Errorf("creating cache directory: %w", err)
	}

	env := []string{
		SearchPathsEnv + "=" + strings.Join(searchPaths, string(os.PathListSeparator)),
		RootDirectoryEnv + "=" + rootDir,
	}
	args := append(append([]string{}, b.command[1:]...), "-o", artifact, ".")
	if output, err := b.run(ctx, helpersDir, env, b.command[0], args...); err != nil {
		return domain.BuiltPluginModule{}, fmt.Errorf("compiling helpers: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	return domain.BuiltPluginModule{Name: plugin.Name, Path: artifact}, nil
}

// sourcesKey hashes the plugin name, every source's relative path and
// content, and the search paths
func sourcesKey(name, dir string, sources, searchPaths []string) (string, error) {
	hasher := blake3.New()
	fmt.Fprintf(hasher, "name=%s\n", name)
	for _, source := range sources {
		rel, err := filepath.Rel(dir, source)
		if err != nil {
			rel = source
		}
		content, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", source, err)
		}
		fmt.Fprintf(hasher, "file=%s %d\n", filepath.ToSlash(rel), len(content))
		hasher.Write(content)
	}
	for _, path := range searchPaths {
		fmt.Fprintf(hasher, "search=%s\n", path)
	}
	return hex.EncodeToString(hasher.Sum(nil)[:8]), nil
}

func runCommand(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	return cmd.CombinedOutput()
}

var _ ports.ProjectDescriptionHelpersBuilder = (*CommandHelpersBuilder)(nil)
