package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"kilometers.ai/edit/internal/application/services"
	"kilometers.ai/edit/internal/config"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// GlobalOptions are the persistent flags shared by every command
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// IsZero reports whether no global option was given
func (o GlobalOptions) IsZero() bool {
	return o == GlobalOptions{}
}

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	EditService   *services.EditService
	Destinations  *services.DestinationResolver
	Config        *config.Config
	MainContainer interface{} // Will be set to *di.Container, avoiding circular import
}

// NewRootCommand creates the km-edit root command
func NewRootCommand(container *CLIContainer) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "km-edit",
		Short: "Generate editable workspaces for project manifests",
		Long: `km-edit collects the project manifests, shared helpers, templates and
plugins of a directory and generates a workspace in which they can be
edited together.

Plugins that fail to load or build are reported as warnings and left out
of the workspace; the edit still succeeds.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyGlobalOptions(cmd, container); err != nil {
				return fmt.Errorf("failed to apply global options: %w", err)
			}
			return nil
		},
	}

	rootCmd.SetVersionTemplate(versionText())

	rootCmd.PersistentFlags().String("config", "", "Config file path (default is $HOME/.km/edit.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")

	rootCmd.AddCommand(NewEditCommand(container))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

func versionText() string {
	return fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH)
}

// applyGlobalOptions rebuilds the container when a persistent flag was set explicitly
func applyGlobalOptions(cmd *cobra.Command, container *CLIContainer) error {
	var opts GlobalOptions
	flags := cmd.Flags()
	if flags.Changed("config") {
		opts.ConfigPath, _ = flags.GetString("config")
	}
	if flags.Changed("log-level") {
		opts.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		opts.LogFormat, _ = flags.GetString("log-format")
	}
	if opts.IsZero() {
		return nil
	}

	mainContainer, ok := container.MainContainer.(interface {
		Reconfigure(GlobalOptions) error
	})
	if !ok {
		return nil
	}
	return mainContainer.Reconfigure(opts)
}

// Execute runs the root command and exits with a non-zero status on failure
func Execute(ctx context.Context, container *CLIContainer) {
	rootCmd := NewRootCommand(container)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}
