package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if necessary
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Engine.LedgerCapacity == 0 {
		cfg.Engine.LedgerCapacity = 1000
	}
	if cfg.Engine.DiscountBase == 0 {
		cfg.Engine.DiscountBase = 0.9
	}
	if cfg.Engine.TimeWeight == 0 {
		cfg.Engine.TimeWeight = 1.0 / 1000.0
	}

	return &cfg, nil
}
