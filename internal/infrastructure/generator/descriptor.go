package generator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"kilometers.ai/edit/internal/core/domain"
	"kilometers.ai/edit/internal/core/ports"
)

// DescriptorGenerator converts a mapped graph into its serializable descriptor
type DescriptorGenerator struct{}

// NewDescriptorGenerator creates a new descriptor generator
func NewDescriptorGenerator() *DescriptorGenerator {
	return &DescriptorGenerator{}
}

// Generate produces a descriptor with targets sorted by name and sources
// made relative to the source root. Duplicate target names are rejected.
func (g *DescriptorGenerator) Generate(ctx context.Context, graph *domain.Graph) (*domain.WorkspaceDescriptor, error) {
	if graph == nil {
		return nil, errors.New("graph is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	descriptor := &domain.WorkspaceDescriptor{
		Name:           graph.Name,
		Path:           graph.Path,
		SourceRoot:     graph.SourceRootPath,
		ToolBinaryPath: graph.ToolBinaryPath,
		Targets:        make([]domain.TargetDescriptor, 0, len(graph.Targets)),
	}

	seen := make(map[string]bool, len(graph.Targets))
	for _, target := range graph.Targets {
		if seen[target.Name] {
			return nil, fmt.Errorf("duplicate target name %q", target.Name)
		}
		seen[target.Name] = true

		sources := make([]string, 0, len(target.Sources))
		for _, source := range target.Sources {
			sources = append(sources, relativeTo(graph.SourceRootPath, source))
		}
		descriptor.Targets = append(descriptor.Targets, domain.TargetDescriptor{
			Name:         target.Name,
			Kind:         string(target.Kind),
			Sources:      sources,
			Dependencies: target.Dependencies,
		})
	}
	sort.Slice(descriptor.Targets, func(i, j int) bool {
		return descriptor.Targets[i].Name < descriptor.Targets[j].Name
	})

	for _, lib := range graph.Libraries {
		descriptor.Libraries = append(descriptor.Libraries, domain.LibraryDescriptor{Name: lib.Name, Path: lib.Path})
	}

	return descriptor, nil
}

// relativeTo returns path relative to root, or path unchanged when it lies outside root
func relativeTo(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

var _ ports.DescriptorGenerator = (*DescriptorGenerator)(nil)
