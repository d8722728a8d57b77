// Package config loads the application-level YAML configuration. Per-run
// screener parameters are a separate concern and validate themselves; this
// file covers wiring: server address, data source mode, cache location, the
// screening universe, and index membership.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr     string `yaml:"addr"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"server"`

	Data struct {
		// Mode selects the provider chain: "sample", "csv", or "alpaca".
		Mode      string `yaml:"mode"`
		CSVDir    string `yaml:"csv_dir"`
		CachePath string `yaml:"cache_path"`
		MetaCSV   string `yaml:"meta_csv"`
	} `yaml:"data"`

	Screen struct {
		Universe   []string `yaml:"universe"`
		MaxResults int      `yaml:"max_results"`
		Workers    int      `yaml:"workers"`
	} `yaml:"screen"`

	Indexes map[string][]string `yaml:"indexes"`
}

// Load searches the usual locations for config.yaml, nearest first.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	paths := []string{
		filepath.Join(cwd, "config.yaml"),
		"config.yaml",
		filepath.Join(cwd, "Internal", "utils", "config", "config.yaml"),
	}

	var data []byte
	for _, path := range paths {
		data, err = os.ReadFile(path)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("config.yaml not found: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config.yaml: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Data.Mode == "" {
		c.Data.Mode = "sample"
	}
	if c.Data.CachePath == "" {
		c.Data.CachePath = "candles.db"
	}
	if c.Screen.MaxResults == 0 {
		c.Screen.MaxResults = 50
	}
	if c.Screen.Workers == 0 {
		c.Screen.Workers = 4
	}
}
