package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jun/internal/node"
)

// Config represents the complete configuration for jun
type Config struct {
	Dialect  string       `yaml:"dialect" toml:"dialect"`
	MaxDepth int          `yaml:"max_depth" toml:"max_depth"`
	Output   OutputConfig `yaml:"output" toml:"output"`
	Swift    SwiftConfig  `yaml:"swift" toml:"swift"`
	Dev      DevConfig    `yaml:"dev" toml:"dev"`
}

// OutputConfig controls how encoded documents are written
type OutputConfig struct {
	Indent  int  `yaml:"indent" toml:"indent"`
	Compact bool `yaml:"compact" toml:"compact"`
}

// SwiftConfig controls SwiftUI source generation
type SwiftConfig struct {
	ViewName string `yaml:"view_name" toml:"view_name"`
	Indent   int    `yaml:"indent" toml:"indent"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug" toml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Dialect:  node.DefaultDialect.Name(),
		MaxDepth: node.DefaultMaxDepth,
		Output: OutputConfig{
			Indent:  2,
			Compact: false,
		},
		Swift: SwiftConfig{
			ViewName: "ContentView",
			Indent:   4,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML or TOML file, chosen by extension
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jun.yml", ".jun.yaml", "jun.yml", "jun.yaml", ".jun.toml", "jun.toml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that the configured values are usable
func (c *Config) Validate() error {
	if _, err := node.DialectByName(c.Dialect); err != nil {
		return fmt.Errorf("invalid dialect: %w", err)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.MaxDepth > node.MaxSupportedDepth {
		return fmt.Errorf("max_depth must be at most %d, got %d", node.MaxSupportedDepth, c.MaxDepth)
	}
	if c.Output.Indent < 0 || c.Output.Indent > 8 {
		return fmt.Errorf("output.indent must be between 0 and 8, got %d", c.Output.Indent)
	}
	if c.Swift.Indent < 1 || c.Swift.Indent > 8 {
		return fmt.Errorf("swift.indent must be between 1 and 8, got %d", c.Swift.Indent)
	}
	return nil
}

// ResolveDialect returns the configured dialect
func (c *Config) ResolveDialect() (*node.Dialect, error) {
	return node.DialectByName(c.Dialect)
}

// ViewName returns the Swift view name as an upper camel case identifier
func (c *Config) ViewName() string {
	name := strcase.ToCamel(c.Swift.ViewName)
	if name == "" {
		return "ContentView"
	}
	return name
}

// IndentString returns the JSON indentation unit, empty when compact output
// is requested
func (c *Config) IndentString() string {
	if c.Output.Compact {
		return ""
	}
	return strings.Repeat(" ", c.Output.Indent)
}

// MergeConfigs merges CLI overrides into a base config
// Non-empty values from override take precedence over base values
func MergeConfigs(base, override *Config) *Config {
	merged := *base // Start with a copy of base

	if override.Dialect != "" {
		merged.Dialect = override.Dialect
	}
	if override.MaxDepth > 0 {
		merged.MaxDepth = override.MaxDepth
	}
	if override.Swift.ViewName != "" {
		merged.Swift.ViewName = override.Swift.ViewName
	}

	// Booleans can only be switched on from the command line
	merged.Output.Compact = base.Output.Compact || override.Output.Compact
	merged.Dev.Debug = base.Dev.Debug || override.Dev.Debug

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath, cliDialect string, cliMaxDepth int, cliDebug bool) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg = MergeConfigs(cfg, &Config{
		Dialect:  cliDialect,
		MaxDepth: cliMaxDepth,
		Dev:      DevConfig{Debug: cliDebug},
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
