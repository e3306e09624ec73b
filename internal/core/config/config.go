package config

import (
	redisclient "github.com/scanops/triage/internal/infra/redis"
	"github.com/scanops/triage/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig       `yaml:"server"`
	Engine   EngineConfig       `yaml:"engine"`
	Redis    redisclient.Config `yaml:"redis"`
	Logging  LoggingConfig      `yaml:"logging"`
	Database postgres.Config    `yaml:"database"`
}

// ServerConfig holds the observability HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// EngineConfig holds the recovery engine tunables. The scoring defaults are
// deliberate; see the selector documentation before changing them.
type EngineConfig struct {
	LedgerCapacity int     `yaml:"ledger_capacity"`
	DiscountBase   float64 `yaml:"discount_base"`
	TimeWeight     float64 `yaml:"time_weight"`
	// DiskPath is the mount point sampled for the resource snapshot.
	DiskPath string `yaml:"disk_path"`
}
