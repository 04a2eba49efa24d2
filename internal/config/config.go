package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Server     ServerConfig     `yaml:"server"`
	Projection ProjectionConfig `yaml:"projection"`
	Export     ExportConfig     `yaml:"export"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ProjectionConfig configures the default projection view.
type ProjectionConfig struct {
	TargetYear int `yaml:"target_year"`
	Limit      int `yaml:"limit"`
}

// ExportConfig configures the xlsx report writer.
type ExportConfig struct {
	Path string `yaml:"path"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./milscope.db"},
		Server:   ServerConfig{Port: 8080},
		Projection: ProjectionConfig{
			TargetYear: 2047,
			Limit:      10,
		},
		Export: ExportConfig{Path: "./milscope_report.xlsx"},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MILSCOPE_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("MILSCOPE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MILSCOPE_EXPORT_PATH"); v != "" {
		cfg.Export.Path = v
	}
}
