// Package config loads the optional kubedig config file. File values are
// defaults; command-line flags override them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents a kubedig.yaml configuration file.
type Config struct {
	Context          string   `yaml:"context"`
	Namespace        string   `yaml:"namespace"`
	PodQuery         string   `yaml:"pod_query"`
	ContainerStates  []string `yaml:"container_states"`
	LogTimeoutMS     int      `yaml:"log_retrieval_timeout_ms"`
	RenderIntervalMS int      `yaml:"render_interval_ms"`
	QueueCapacity    int      `yaml:"queue_capacity"`
	LogFile          string   `yaml:"log_file"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		ContainerStates:  []string{"all"},
		LogTimeoutMS:     10,
		RenderIntervalMS: 10,
		QueueCapacity:    1000,
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kubedig", "kubedig.yaml")
}

// Load reads the config file at path, layered over the defaults. A missing
// file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config for usable values.
func (c Config) Validate() error {
	if c.QueueCapacity < 1 {
		return fmt.Errorf("queue_capacity must be at least 1, got %d", c.QueueCapacity)
	}
	if c.LogTimeoutMS < 1 {
		return fmt.Errorf("log_retrieval_timeout_ms must be at least 1, got %d", c.LogTimeoutMS)
	}
	if c.RenderIntervalMS < 1 {
		return fmt.Errorf("render_interval_ms must be at least 1, got %d", c.RenderIntervalMS)
	}
	return nil
}
