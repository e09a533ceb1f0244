package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete journal application configuration
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	Images   ImagesConfig   `json:"images" yaml:"images"`
	Auth     AuthConfig     `json:"auth" yaml:"auth"`
}

// DatabaseConfig locates the embedded SQLite store
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// ImagesConfig locates trade image artifacts
type ImagesConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

// AuthConfig contains credential parameters
type AuthConfig struct {
	RememberDays int `json:"remember_days" yaml:"remember_days"`
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Images.Dir == "" {
		return fmt.Errorf("images.dir is required")
	}
	if c.Auth.RememberDays <= 0 {
		return fmt.Errorf("auth.remember_days must be positive")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "./tradebook.sqlite",
		},
		Images: ImagesConfig{
			Dir: "./trade_images",
		},
		Auth: AuthConfig{
			RememberDays: 30,
		},
	}
}
