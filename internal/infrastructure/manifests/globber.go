package manifests

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"kilometers.ai/edit/internal/core/ports"
)

// FileGlobber enumerates source files on the local file system
type FileGlobber struct{}

// NewFileGlobber creates a new file globber
func NewFileGlobber() *FileGlobber {
	return &FileGlobber{}
}

// Glob recursively searches dir for files ending with one of extensions.
// Test files (_test.go) are not sources and are skipped.
func (g *FileGlobber) Glob(dir string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skippedDirectories[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		for _, ext := range extensions {
			if strings.EqualFold(filepath.Ext(d.Name()), ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

var _ ports.SourceGlobber = (*FileGlobber)(nil)
