package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsoncol. File values are
// defaults; explicit CLI flags override them.
type Config struct {
	Format  string        `yaml:"format"`
	Strict  bool          `yaml:"strict"`
	Typed   bool          `yaml:"typed"`
	Preview int           `yaml:"preview"`
	Columns ColumnsConfig `yaml:"columns"`
}

// ColumnsConfig controls output column naming.
type ColumnsConfig struct {
	SnakeCase bool              `yaml:"snake_case"`
	Renames   map[string]string `yaml:"renames"`
}

// NewConfig creates a new Config with default values: Arrow output inferred
// from the destination path, lenient parsing, stringified values.
func NewConfig() *Config {
	return &Config{
		Format:  "auto",
		Strict:  false,
		Typed:   false,
		Preview: 0,
		Columns: ColumnsConfig{
			SnakeCase: false,
			Renames:   make(map[string]string),
		},
	}
}

// LoadConfig loads configuration from a YAML file, on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Columns.Renames == nil {
		cfg.Columns.Renames = make(map[string]string)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and its
// parents. Returns an empty string when none exists.
func FindConfigFile() string {
	configNames := []string{".jsoncol.yml", ".jsoncol.yaml", "jsoncol.yml", "jsoncol.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// ColumnName returns the output column name for an input field, applying
// explicit renames first and then the optional snake_case conversion.
func (c *Config) ColumnName(field string) string {
	if mapped, exists := c.Columns.Renames[field]; exists {
		return mapped
	}
	if c.Columns.SnakeCase {
		return strcase.ToSnake(field)
	}
	return field
}
