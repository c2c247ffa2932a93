// internal/config/config.go
//
// This package handles configuration and the .signoff directory structure.
// Every project that runs signoff gets a .signoff/ folder created in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// SignoffDir is the name of the directory we create in each project
	SignoffDir = ".signoff"

	defaultInitialStep = 1
	defaultLogLevel    = "info"
)

const defaultProjectConfigYAML = `# signoff project configuration
version: 1

# Step the stepper opens on (1-based).
initial_step: 1

# Optional YAML step catalog. Leave empty to use the built-in five phases.
# catalog: steps.yaml

# debug | info | warn | error
log_level: info

signature:
  # Write captured signatures as PNG files into export_dir.
  export: false
  export_dir: .signoff/signatures
`

// SignatureConfig controls what the host does with captured signatures.
type SignatureConfig struct {
	Export    bool   `yaml:"export"`
	ExportDir string `yaml:"export_dir,omitempty"`
}

// ProjectConfig models .signoff/config.yaml.
type ProjectConfig struct {
	Version     int             `yaml:"version"`
	InitialStep int             `yaml:"initial_step"`
	Catalog     string          `yaml:"catalog,omitempty"`
	LogLevel    string          `yaml:"log_level,omitempty"`
	Signature   SignatureConfig `yaml:"signature"`
}

// Config holds the runtime configuration for signoff.
type Config struct {
	// ProjectDir is the directory signoff was started from
	ProjectDir string

	// SignoffProjectDir is ProjectDir/.signoff
	SignoffProjectDir string

	Project ProjectConfig
}

// InitDir creates the .signoff directory structure in the given project
// directory and writes a default config.yaml if none exists.
//
// Structure created:
// .signoff/
// ├── config.yaml
// ├── logs/         <- signoff.log (slog) and journey.log (logbook)
// └── signatures/   <- exported signature PNGs
func InitDir(projectDir string) error {
	root := filepath.Join(projectDir, SignoffDir)
	dirs := []string{
		filepath.Join(root, "logs"),
		filepath.Join(root, "signatures"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(root, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:        projectDir,
		SignoffProjectDir: filepath.Join(projectDir, SignoffDir),
		Project:           defaultProjectConfig(projectDir),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.SignoffProjectDir, "logs")
}

// LogPath returns the slog output file
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "signoff.log")
}

// JourneyPath returns the logbook file shown in the TUI log panel
func (c *Config) JourneyPath() string {
	return filepath.Join(c.LogsDir(), "journey.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.SignoffProjectDir, "config.yaml")
}

// InitialStep returns the configured starting step.
func (c *Config) InitialStep() int {
	return c.Project.InitialStep
}

// CatalogPath returns the resolved catalog file, or "" for the built-in one.
func (c *Config) CatalogPath() string {
	return c.Project.Catalog
}

// LogLevel returns the configured slog level name.
func (c *Config) LogLevel() string {
	return c.Project.LogLevel
}

// SignatureExportDir returns where signatures are written, or "" when export
// is disabled.
func (c *Config) SignatureExportDir() string {
	if !c.Project.Signature.Export {
		return ""
	}
	return c.Project.Signature.ExportDir
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig(projectDir string) ProjectConfig {
	return ProjectConfig{
		Version:     1,
		InitialStep: defaultInitialStep,
		LogLevel:    defaultLogLevel,
		Signature: SignatureConfig{
			ExportDir: filepath.Join(projectDir, SignoffDir, "signatures"),
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.InitialStep == 0 {
		pc.InitialStep = defaultInitialStep
	}
	if strings.TrimSpace(pc.LogLevel) == "" {
		pc.LogLevel = defaultLogLevel
	}
	if strings.TrimSpace(pc.Signature.ExportDir) == "" {
		pc.Signature.ExportDir = filepath.Join(SignoffDir, "signatures")
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.LogLevel = strings.ToLower(strings.TrimSpace(pc.LogLevel))
	pc.Catalog = resolvePath(base, pc.Catalog)
	pc.Signature.ExportDir = resolvePath(base, pc.Signature.ExportDir)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.InitialStep < 1 {
		return fmt.Errorf("initial_step must be >= 1")
	}
	switch pc.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
