package manifests

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileGlobber_Glob(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"b.go",
		"a.go",
		"a_test.go",
		"nested/feature.tmpl",
		"nested/README.md",
		".build/generated.go",
	)
	globber := NewFileGlobber()

	goFiles, err := globber.Glob(root, ".go")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.go"), filepath.Join(root, "b.go")}, goFiles)

	templates, err := globber.Glob(root, ".go", ".tmpl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.go"),
		filepath.Join(root, "b.go"),
		filepath.Join(root, "nested", "feature.tmpl"),
	}, templates)

	none, err := globber.Glob(root)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFileGlobber_MissingDirectory(t *testing.T) {
	_, err := NewFileGlobber().Glob(filepath.Join(t.TempDir(), "missing"), ".go")

	assert.Error(t, err)
}
