package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"kilometers.ai/edit/internal/core/ports"
)

const (
	// ConfigPathEnv overrides the location of the tool configuration file
	ConfigPathEnv = "KM_EDIT_CONFIG"

	defaultManifestsDirectoryName = ".km"
)

// Config is the configuration of the km-edit tool itself
type Config struct {
	CacheDirectory         string   `yaml:"cache_directory"`
	CompilerCommand        []string `yaml:"compiler_command"`
	LogLevel               string   `yaml:"log_level"`
	LogFormat              string   `yaml:"log_format"`
	ManifestsDirectoryName string   `yaml:"manifests_directory_name"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return &Config{
		CacheDirectory:         filepath.Join(cacheDir, "km-edit"),
		CompilerCommand:        []string{"go", "build", "-buildmode=archive"},
		LogLevel:               "info",
		LogFormat:              "text",
		ManifestsDirectoryName: defaultManifestsDirectoryName,
	}
}

// DefaultPath returns the configuration file used when no path is given
func DefaultPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, defaultManifestsDirectoryName, "edit.yaml")
}

// Load builds the configuration from defaults, the YAML file at configPath
// and KM_* environment variables, in increasing priority. An empty
// configPath falls back to DefaultPath, which may be absent.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultPath()
	}

	if configPath != "" {
		if err := cfg.loadFile(configPath); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("KM_CACHE_DIR"); v != "" {
		c.CacheDirectory = v
	}
	if v := os.Getenv("KM_COMPILER"); v != "" {
		c.CompilerCommand = strings.Fields(v)
	}
	if v := os.Getenv("KM_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("KM_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("KM_MANIFESTS_DIR"); v != "" {
		c.ManifestsDirectoryName = v
	}
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if c.CacheDirectory == "" {
		return errors.New("cache_directory is required")
	}
	if len(c.CompilerCommand) == 0 || c.CompilerCommand[0] == "" {
		return errors.New("compiler_command is required")
	}
	if _, ok := ports.ParseLogLevel(c.LogLevel); !ok {
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}
	if c.ManifestsDirectoryName == "" || strings.ContainsRune(c.ManifestsDirectoryName, filepath.Separator) {
		return fmt.Errorf("invalid manifests_directory_name %q", c.ManifestsDirectoryName)
	}
	return nil
}
