package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds environment-driven settings for the server
type Config struct {
	Host string `envconfig:"HOST" default:""`
	Port int    `envconfig:"PORT" default:"5000"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `envconfig:"STORAGE_TYPE" default:"memory"`
	RedisURL    string `envconfig:"REDIS_URL"`

	// Presence sweeper tuning
	SweepInterval  time.Duration `envconfig:"SWEEP_INTERVAL" default:"15s"`
	StaleThreshold time.Duration `envconfig:"STALE_THRESHOLD" default:"10s"`
}

// Load reads the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
