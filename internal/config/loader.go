package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load resolves the configuration from the environment. A .env file in the
// working directory is merged in first when present (local development);
// its absence is not an error. The populated struct is validated before it
// is returned.
func Load() (*Config, error) {
	// Pin the process to UTC so time math never drifts with the host zone.
	time.Local = time.UTC

	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate runs struct validation and checks the few constraints tags
// cannot express.
func validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Farm.Timezone); err != nil {
		return fmt.Errorf("invalid FARM_TIMEZONE %q: %w", cfg.Farm.Timezone, err)
	}
	if cfg.Store.Driver == "sqlite" && cfg.Store.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH must not be empty when STORE_DRIVER=sqlite")
	}
	return nil
}
