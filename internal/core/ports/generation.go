package ports

import (
	"context"

	"kilometers.ai/edit/internal/core/domain"
)

// GraphMapper maps an assembled workspace graph into a project graph
type GraphMapper interface {
	Map(ctx context.Context, workspace *domain.WorkspaceGraph) (*domain.Graph, error)
}

// DescriptorGenerator turns a project graph into a writable descriptor
type DescriptorGenerator interface {
	Generate(ctx context.Context, graph *domain.Graph) (*domain.WorkspaceDescriptor, error)
}

// DescriptorWriter persists a descriptor
type DescriptorWriter interface {
	// Write persists the descriptor and returns the generated workspace location
	Write(ctx context.Context, descriptor *domain.WorkspaceDescriptor) (string, error)
}
