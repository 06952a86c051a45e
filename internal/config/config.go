// Package config resolves bpmn2dcr's runtime configuration from, in
// increasing precedence: built-in defaults, an optional YAML config
// file, and environment variables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings the compile and serve commands need.
type Config struct {
	OutputDir string `yaml:"output_dir"`
	LogLevel  string `yaml:"log_level"`
	HTTPAddr  string `yaml:"http_addr"`
}

// Default returns the built-in configuration baseline.
func Default() *Config {
	return &Config{
		OutputDir: "./output",
		LogLevel:  "info",
		HTTPAddr:  ":8080",
	}
}

// Load resolves configuration starting from Default, layering in
// path's YAML contents if it exists, then environment variable
// overrides. path may be empty, in which case only defaults and the
// environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fromFile Config
			if err := yaml.Unmarshal(data, &fromFile); err != nil {
				return nil, fmt.Errorf("config: parsing %s: %w", path, err)
			}
			cfg.merge(&fromFile)
		case os.IsNotExist(err):
			// No config file is not an error; defaults and env apply.
		default:
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.HTTPAddr != "" {
		c.HTTPAddr = o.HTTPAddr
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BPMN2DCR_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("BPMN2DCR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BPMN2DCR_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
}
