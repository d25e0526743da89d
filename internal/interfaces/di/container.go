package di

import (
	"fmt"
	"io"
	"os"

	"kilometers.ai/edit/internal/application/services"
	"kilometers.ai/edit/internal/config"
	"kilometers.ai/edit/internal/core/ports"
	configinfra "kilometers.ai/edit/internal/infrastructure/config"
	"kilometers.ai/edit/internal/infrastructure/generator"
	"kilometers.ai/edit/internal/infrastructure/logging"
	"kilometers.ai/edit/internal/infrastructure/manifests"
	"kilometers.ai/edit/internal/infrastructure/plugins"
	"kilometers.ai/edit/internal/interfaces/cli"
)

// Container holds all application dependencies
type Container struct {
	// Configuration
	Config *config.Config

	// Services
	EditService  *services.EditService
	Destinations *services.DestinationResolver

	// CLI
	CLIContainer *cli.CLIContainer

	// Logger
	Logger ports.LoggingGateway

	logOutput      io.Writer
	toolBinaryPath string
}

// NewContainer creates and configures the dependency injection container
func NewContainer() (*Container, error) {
	toolBinaryPath, err := os.Executable()
	if err != nil {
		toolBinaryPath = os.Args[0]
	}
	return newContainer(cli.GlobalOptions{}, os.Stderr, toolBinaryPath)
}

func newContainer(opts cli.GlobalOptions, logOutput io.Writer, toolBinaryPath string) (*Container, error) {
	container := &Container{
		CLIContainer:   &cli.CLIContainer{},
		logOutput:      logOutput,
		toolBinaryPath: toolBinaryPath,
	}
	container.CLIContainer.MainContainer = container

	if err := container.initializeComponents(opts); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	return container, nil
}

// Reconfigure reloads the configuration with the given global options and
// rebuilds every component
func (c *Container) Reconfigure(opts cli.GlobalOptions) error {
	return c.initializeComponents(opts)
}

// initializeComponents initializes all components with proper dependencies
func (c *Container) initializeComponents(opts cli.GlobalOptions) error {
	// 1. Load configuration, flags win over file and environment
	appConfig, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.LogLevel != "" {
		appConfig.LogLevel = opts.LogLevel
	}
	if opts.LogFormat != "" {
		appConfig.LogFormat = opts.LogFormat
	}
	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.Config = appConfig

	// 2. Logging
	level, _ := ports.ParseLogLevel(appConfig.LogLevel)
	c.Logger = logging.NewSlogGateway(c.logOutput, level, appConfig.LogFormat)

	// 3. Infrastructure
	locator := manifests.NewFileSystemLocator(appConfig.ManifestsDirectoryName)
	globber := manifests.NewFileGlobber()

	// 4. Application services
	c.EditService = services.NewEditService(services.EditCollaborators{
		ManifestLocator:  locator,
		HelpersLocator:   manifests.NewHelpersLocator(locator),
		TemplatesLocator: manifests.NewTemplatesLocator(locator),
		Globber:          globber,
		ConfigLoader:     configinfra.NewProjectConfigLoader(),
		PluginService:    plugins.NewLocalPluginService(),
		HelpersBuilder:   plugins.NewCommandHelpersBuilder(appConfig.CacheDirectory, appConfig.CompilerCommand, globber),
		Mapper:           generator.NewGraphMapper(globber),
		Generator:        generator.NewDescriptorGenerator(),
		Writer:           generator.NewYAMLDescriptorWriter(),
		Logger:           c.Logger,
	}, c.toolBinaryPath)
	c.Destinations = services.NewDestinationResolver(appConfig.CacheDirectory)

	// 5. CLI container, updated in place so commands see reconfigured services
	c.CLIContainer.EditService = c.EditService
	c.CLIContainer.Destinations = c.Destinations
	c.CLIContainer.Config = c.Config

	c.Logger.Log(ports.LogLevelDebug, "Container initialized", map[string]interface{}{
		"cache_directory": appConfig.CacheDirectory,
		"log_level":       appConfig.LogLevel,
	})
	return nil
}

// GetCLIContainer returns the CLI container for command execution
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}

// GetVersion returns version information
func (c *Container) GetVersion() map[string]string {
	return map[string]string{
		"version":    cli.Version,
		"build_time": cli.BuildTime,
	}
}
