package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen           string `yaml:"listen"`
	DataDir          string `yaml:"data_dir"`
	DayBoundaryShift string `yaml:"day_boundary_shift"`
	Log              struct {
		Level string `yaml:"level"`
		Path  string `yaml:"path"`
	} `yaml:"log"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.Listen = ":8080"
	cfg.DayBoundaryShift = "0s"
	cfg.Log.Level = "info"
	return cfg
}

// loadConfig reads the optional YAML file, substitutes ${VAR} placeholders
// from the environment, then applies KINTAI_* overrides on top.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		content := string(data)
		for _, env := range os.Environ() {
			pair := strings.SplitN(env, "=", 2)
			if len(pair) != 2 {
				continue
			}
			content = strings.ReplaceAll(content, "${"+pair[0]+"}", pair[1])
		}

		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return nil, fmt.Errorf("error parsing config: %w", err)
		}
	}

	if v := os.Getenv("KINTAI_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("KINTAI_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("KINTAI_DAY_BOUNDARY_SHIFT"); v != "" {
		cfg.DayBoundaryShift = v
	}
	if v := os.Getenv("KINTAI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return &cfg, nil
}

func (c *Config) BoundaryShift() (time.Duration, error) {
	d, err := time.ParseDuration(c.DayBoundaryShift)
	if err != nil {
		return 0, fmt.Errorf("invalid day_boundary_shift %q: %w", c.DayBoundaryShift, err)
	}
	return d, nil
}

// dataDir resolves and creates the data directory, defaulting to ~/.kintai.
func (c *Config) dataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".kintai")
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	return dir, nil
}
