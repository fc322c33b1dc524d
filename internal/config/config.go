// Package config loads application settings from a YAML file, falling
// back to defaults when the file or individual fields are absent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Metrics MetricsConfig `yaml:"metrics"`
	Auth    AuthConfig    `yaml:"auth"`
	Engine  EngineConfig  `yaml:"engine"`
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Port int `yaml:"port"`
}

// MetricsConfig holds the Prometheus endpoint settings
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// AuthConfig holds optional bearer-token authentication settings
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Secret  string `yaml:"secret"`
}

// EngineConfig tunes the suggestion engine's display behavior
type EngineConfig struct {
	MinSuggestions   int      `yaml:"min_suggestions"`
	TopFrequentLimit int      `yaml:"top_frequent_limit"`
	ExtraPerishables []string `yaml:"extra_perishable_categories"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Metrics: MetricsConfig{Enabled: true, Port: 9090},
		Engine: EngineConfig{
			MinSuggestions:   5,
			TopFrequentLimit: 10,
		},
	}
}

// Load reads configuration from path. A missing file yields defaults;
// a present but malformed file is an error. Unset numeric fields fall
// back to their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Engine.MinSuggestions <= 0 {
		cfg.Engine.MinSuggestions = 5
	}
	if cfg.Engine.TopFrequentLimit <= 0 {
		cfg.Engine.TopFrequentLimit = 10
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return fmt.Errorf("auth enabled but no secret configured")
	}
	if c.Server.Port == c.Metrics.Port && c.Metrics.Enabled {
		return fmt.Errorf("server and metrics ports must differ (both %d)", c.Server.Port)
	}
	return nil
}
