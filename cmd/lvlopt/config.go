package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlopt/internal/logging"
)

// cliConfig is the optional --config file.
type cliConfig struct {
	Logging logging.Config `yaml:"logging"`
	Workers int            `yaml:"workers"` // 0 means GOMAXPROCS
}

func defaultConfig() cliConfig {
	return cliConfig{Logging: logging.DefaultConfig()}
}

// loadConfig reads path over the defaults. An empty path keeps the defaults.
func loadConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("config %s: workers must be >= 0, got %d", path, cfg.Workers)
	}

	return cfg, nil
}
