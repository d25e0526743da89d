package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"kilometers.ai/edit/internal/core/domain"
	"kilometers.ai/edit/internal/core/ports"
)

const (
	// ProjectExtension is appended to the descriptor name to form the project directory
	ProjectExtension = ".kmproj"

	// DescriptorFileName is the file written inside the project directory
	DescriptorFileName = "project.yaml"
)

// YAMLDescriptorWriter materializes descriptors as YAML files
type YAMLDescriptorWriter struct{}

// NewYAMLDescriptorWriter creates a new YAML descriptor writer
func NewYAMLDescriptorWriter() *YAMLDescriptorWriter {
	return &YAMLDescriptorWriter{}
}

// Write stores the descriptor at <Path>/<Name>.kmproj/project.yaml and
// returns the project directory
func (w *YAMLDescriptorWriter) Write(ctx context.Context, descriptor *domain.WorkspaceDescriptor) (string, error) {
	if descriptor == nil {
		return "", errors.New("descriptor is nil")
	}
	if descriptor.Path == "" {
		return "", errors.New("descriptor has no path")
	}
	if descriptor.Name == "" {
		return "", errors.New("descriptor has no name")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(descriptor); err != nil {
		return "", fmt.Errorf("encoding descriptor: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("encoding descriptor: %w", err)
	}

	projectDir := filepath.Join(descriptor.Path, descriptor.Name+ProjectExtension)
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return "", fmt.Errorf("creating project directory: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(projectDir, DescriptorFileName), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing descriptor: %w", err)
	}

	return projectDir, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

var _ ports.DescriptorWriter = (*YAMLDescriptorWriter)(nil)
