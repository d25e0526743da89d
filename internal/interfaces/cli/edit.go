package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kilometers.ai/edit/internal/application/services"
)

type editOptions struct {
	permanent            bool
	onlyCurrentDirectory bool
	output               string
}

// NewEditCommand creates the edit command
func NewEditCommand(container *CLIContainer) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit [path]",
		Short: "Generate a workspace to edit the manifests of a directory",
		Long: `Generate a workspace to edit the manifests of a directory.

The workspace includes every Project.yaml and Workspace.yaml below the
directory, the shared helpers and templates of the .km directory, the
configuration manifests and the plugins the project declares. Plugins
whose sources are part of the directory are editable; the others are
compiled and linked.

By default the workspace is generated in the cache directory. Use
--permanent to generate it inside the edited directory.`,
		Example: `  # Edit the manifests of the current directory
  km-edit edit

  # Edit a single project without its subdirectories
  km-edit edit ./App --only-current-directory

  # Keep the generated workspace next to the manifests
  km-edit edit --permanent`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return runEdit(cmd.Context(), cmd.OutOrStdout(), container, opts, path)
		},
	}

	cmd.Flags().BoolVarP(&opts.permanent, "permanent", "P", false, "Generate the workspace inside the edited directory")
	cmd.Flags().BoolVar(&opts.onlyCurrentDirectory, "only-current-directory", false, "Only include manifests of the edited directory itself")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Directory the workspace is generated in")

	return cmd
}

func runEdit(ctx context.Context, out io.Writer, container *CLIContainer, opts *editOptions, path string) error {
	if container.EditService == nil || container.Destinations == nil {
		return errors.New("edit service is not configured")
	}

	editingPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(editingPath)
	if err != nil {
		return fmt.Errorf("cannot edit %s: %w", editingPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot edit %s: not a directory", editingPath)
	}

	destination := container.Destinations.Resolve(editingPath, opts.permanent, opts.output)

	var editOpts []services.EditOption
	if opts.onlyCurrentDirectory {
		editOpts = append(editOpts, services.OnlyCurrentDirectory())
	}

	result, err := container.EditService.Edit(ctx, editingPath, destination, editOpts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, renderSummary(result))
	return nil
}
