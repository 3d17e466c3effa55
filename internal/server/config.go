package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultPrefix scopes carrier-map properties to the Hive connection.
const defaultPrefix = "hive."

// Config is the mcp-hive server configuration file.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Tools  ToolsConfig  `yaml:"tools"`

	// Properties is the flat, prefixed carrier map holding the Hive
	// connection settings (hive.host, hive.username,
	// hive.configuration.spark.app.name, ...). Keys outside the prefix
	// are ignored, so the same map can carry other namespaces.
	Properties map[string]any `yaml:"properties"`
}

// ServerConfig holds server identity and transport settings.
type ServerConfig struct {
	Name      string `yaml:"name"`
	Transport string `yaml:"transport"`
	Address   string `yaml:"address"`

	// Prefix overrides the carrier-map prefix (default "hive.").
	Prefix string `yaml:"prefix"`
}

// ToolsConfig holds toolkit limits.
type ToolsConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Server.Name == "" {
		cfg.Server.Name = "mcp-hive"
	}
	if cfg.Server.Prefix == "" {
		cfg.Server.Prefix = defaultPrefix
	}
	return &cfg, nil
}
