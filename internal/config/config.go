// Package config loads the application configuration from a YAML file,
// applying defaults for anything left unset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/logger"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/report"
)

// Config is the full application configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`

	Log logger.Config `yaml:"log"`

	Session struct {
		TTLHours int `yaml:"ttl_hours"`
	} `yaml:"session"`

	Thresholds report.Thresholds `yaml:"thresholds"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.Server.Port = 8080
	c.Metrics.Enabled = true
	c.Metrics.Port = 9090
	c.Metrics.Path = "/metrics"
	c.Log = logger.Config{Level: "info", Format: "json"}
	c.Session.TTLHours = 24
	c.Thresholds = report.DefaultThresholds()
	return c
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.Thresholds = cfg.Thresholds.Normalize()
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		return fmt.Errorf("invalid metrics port %d", c.Metrics.Port)
	}
	if c.Session.TTLHours < 0 {
		return fmt.Errorf("invalid session ttl_hours %d", c.Session.TTLHours)
	}
	return nil
}
