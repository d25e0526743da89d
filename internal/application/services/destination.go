package services

import (
	"encoding/hex"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// editProjectsDirectory is the cache subdirectory holding non-permanent edits
const editProjectsDirectory = "EditProjects"

// DestinationResolver decides where an edit is generated
type DestinationResolver struct {
	cacheDirectory string
}

// NewDestinationResolver creates a resolver placing temporary edits under cacheDirectory
func NewDestinationResolver(cacheDirectory string) *DestinationResolver {
	return &DestinationResolver{cacheDirectory: cacheDirectory}
}

// Resolve returns the destination for editing editingPath. An explicit
// output wins; a permanent edit is written into the edited directory;
// otherwise every editing path gets a stable directory in the cache.
func (r *DestinationResolver) Resolve(editingPath string, permanent bool, output string) string {
	if output != "" {
		return filepath.Clean(output)
	}
	if permanent {
		return filepath.Clean(editingPath)
	}
	return filepath.Join(r.cacheDirectory, editProjectsDirectory, PathDigest(editingPath))
}

// PathDigest returns a short, stable hex digest of a cleaned path
func PathDigest(path string) string {
	sum := blake3.Sum256([]byte(filepath.Clean(path)))
	return hex.EncodeToString(sum[:8])
}
