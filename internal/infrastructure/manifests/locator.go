package manifests

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"kilometers.ai/edit/internal/core/domain"
	"kilometers.ai/edit/internal/core/ports"
)

const (
	// DefaultDirectoryName is the directory holding project-wide manifests
	DefaultDirectoryName = ".km"

	pluginManifestName       = "Plugin.yaml"
	setupManifestName        = "Setup.yaml"
	dependenciesManifestName = "Dependencies.yaml"
	configManifestBaseName   = "Config"
	helpersDirectoryName     = "Helpers"
	templatesDirectoryName   = "Templates"
)

var (
	configExtensions = []string{".yaml", ".yml", ".json", ".jsonc"}

	// skippedDirectories are never searched for manifests
	skippedDirectories = map[string]bool{
		".build":       true,
		".git":         true,
		"Derived":      true,
		"node_modules": true,
		"vendor":       true,
	}
)

// FileSystemLocator locates manifests on the local file system
type FileSystemLocator struct {
	directoryName string
}

// NewFileSystemLocator creates a locator using directoryName (".km" when empty)
// for project-wide manifests
func NewFileSystemLocator(directoryName string) *FileSystemLocator {
	if directoryName == "" {
		directoryName = DefaultDirectoryName
	}
	return &FileSystemLocator{directoryName: directoryName}
}

// LocateProjectManifests returns the project and workspace manifests at or below dir, sorted by path
func (l *FileSystemLocator) LocateProjectManifests(ctx context.Context, dir string, onlyCurrentDirectory bool) ([]domain.ManifestReference, error) {
	kinds := map[string]domain.ManifestKind{
		domain.ManifestKindProject.FileName():   domain.ManifestKindProject,
		domain.ManifestKindWorkspace.FileName(): domain.ManifestKindWorkspace,
	}

	paths, err := findNamed(ctx, dir, onlyCurrentDirectory, func(name string) bool {
		_, ok := kinds[name]
		return ok
	})
	if err != nil {
		return nil, err
	}

	manifests := make([]domain.ManifestReference, 0, len(paths))
	for _, path := range paths {
		manifests = append(manifests, domain.ManifestReference{
			Kind: kinds[filepath.Base(path)],
			Path: path,
		})
	}
	return manifests, nil
}

// LocatePluginManifests returns the plugin manifests at or below dir, sorted by path
func (l *FileSystemLocator) LocatePluginManifests(ctx context.Context, dir string, onlyCurrentDirectory bool) ([]string, error) {
	return findNamed(ctx, dir, onlyCurrentDirectory, func(name string) bool {
		return name == pluginManifestName
	})
}

// LocateConfig returns the first Config manifest of the project root, or ""
func (l *FileSystemLocator) LocateConfig(dir string) string {
	root := l.rootDirectory(dir)
	if root == "" {
		return ""
	}
	for _, ext := range configExtensions {
		path := filepath.Join(root, l.directoryName, configManifestBaseName+ext)
		if isFile(path) {
			return path
		}
	}
	return ""
}

// LocateDependencies returns the Dependencies manifest of the project root, or ""
func (l *FileSystemLocator) LocateDependencies(dir string) string {
	root := l.rootDirectory(dir)
	if root == "" {
		return ""
	}
	path := filepath.Join(root, l.directoryName, dependenciesManifestName)
	if isFile(path) {
		return path
	}
	return ""
}

// LocateSetup returns the Setup manifest in dir, or ""
func (l *FileSystemLocator) LocateSetup(dir string) string {
	path := filepath.Join(dir, setupManifestName)
	if isFile(path) {
		return path
	}
	return ""
}

// rootDirectory walks up from dir to the nearest directory holding the
// manifests directory or a .git entry. It returns "" when there is none.
func (l *FileSystemLocator) rootDirectory(dir string) string {
	current := filepath.Clean(dir)
	for {
		if isDir(filepath.Join(current, l.directoryName)) {
			return current
		}
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

// SubdirectoryLocator locates a subdirectory of the project's manifests
// directory, such as Helpers or Templates
type SubdirectoryLocator struct {
	root *FileSystemLocator
	name string
}

// NewHelpersLocator locates the shared helpers directory
func NewHelpersLocator(root *FileSystemLocator) *SubdirectoryLocator {
	return &SubdirectoryLocator{root: root, name: helpersDirectoryName}
}

// NewTemplatesLocator locates the templates directory
func NewTemplatesLocator(root *FileSystemLocator) *SubdirectoryLocator {
	return &SubdirectoryLocator{root: root, name: templatesDirectoryName}
}

// Locate returns the subdirectory, or "" if the project has none
func (l *SubdirectoryLocator) Locate(dir string) string {
	root := l.root.rootDirectory(dir)
	if root == "" {
		return ""
	}
	path := filepath.Join(root, l.root.directoryName, l.name)
	if isDir(path) {
		return path
	}
	return ""
}

// findNamed returns the files at or below dir whose base name matches
func findNamed(ctx context.Context, dir string, onlyCurrentDirectory bool, match func(name string) bool) ([]string, error) {
	if !isDir(dir) {
		return nil, fmt.Errorf("directory %s does not exist", dir)
	}

	var found []string
	if onlyCurrentDirectory {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && match(entry.Name()) {
				found = append(found, filepath.Join(dir, entry.Name()))
			}
		}
		sort.Strings(found)
		return found, nil
	}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() {
			if path != dir && skippedDirectories[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if match(entry.Name()) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dir, err)
	}

	sort.Strings(found)
	return found, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

var (
	_ ports.ManifestFilesLocator      = (*FileSystemLocator)(nil)
	_ ports.HelpersDirectoryLocator   = (*SubdirectoryLocator)(nil)
	_ ports.TemplatesDirectoryLocator = (*SubdirectoryLocator)(nil)
)
