package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDestinationResolver_Resolve(t *testing.T) {
	cache := filepath.FromSlash("/home/dev/.cache/km")
	resolver := NewDestinationResolver(cache)
	project := filepath.FromSlash("/work/App")

	tests := []struct {
		name      string
		permanent bool
		output    string
		want      string
	}{
		{name: "temporary edit goes to the cache", want: filepath.Join(cache, "EditProjects", PathDigest(project))},
		{name: "permanent edit stays in the project", permanent: true, want: project},
		{name: "explicit output wins", permanent: true, output: filepath.FromSlash("/tmp/out/"), want: filepath.FromSlash("/tmp/out")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(project, tt.permanent, tt.output))
		})
	}
}

func TestPathDigest(t *testing.T) {
	a := PathDigest(filepath.FromSlash("/work/App"))

	assert.Len(t, a, 16)
	assert.Equal(t, a, PathDigest(filepath.FromSlash("/work/App/")), "digest ignores trailing separators")
	assert.NotEqual(t, a, PathDigest(filepath.FromSlash("/work/Other")))
}
