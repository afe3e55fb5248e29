// Package config defines the service configuration. Configuration is loaded
// once at process start and immutable thereafter, resolved from the OS
// environment with an optional .env file for local runs. Missing or invalid
// required values fail the load (fail fast).
package config

import "time"

// Config is the top-level configuration struct. Sub-components receive only
// the subsets they require.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Server  ServerConfig
	Store   StoreConfig
	Weather WeatherConfig
	Notify  NotifyConfig
	Farm    FarmConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"sqlite" validate:"required,oneof=memory sqlite postgres redis"`

	// sqlite
	SQLitePath string `envconfig:"SQLITE_PATH" default:"cropwatch.db"`

	// postgres
	PostgresURL string `envconfig:"DATABASE_URL" validate:"required_if=Driver postgres,omitempty,url"`

	// redis
	RedisAddr     string `envconfig:"REDIS_ADDR" validate:"required_if=Driver redis"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// WeatherConfig holds the forecast provider and warnings feed endpoints.
type WeatherConfig struct {
	BaseURL      string        `envconfig:"WEATHER_BASE_URL" default:"https://api.open-meteo.com" validate:"required,url"`
	AlertFeedURL string        `envconfig:"ALERT_FEED_URL" validate:"omitempty,url"`
	ForecastDays int           `envconfig:"FORECAST_DAYS" default:"7" validate:"min=1,max=16"`
	Timeout      time.Duration `envconfig:"WEATHER_TIMEOUT" default:"10s"`
	UserAgent    string        `envconfig:"WEATHER_USER_AGENT" default:"CropWatch/1.0"`
}

// NotifyConfig holds notification gateway and telemetry settings.
type NotifyConfig struct {
	// GatewayURL is the push gateway base URL. Empty selects the log-only
	// scheduler.
	GatewayURL string        `envconfig:"NOTIFY_GATEWAY_URL" validate:"omitempty,url"`
	Timeout    time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`

	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"false"`
	AWSRegion      string `envconfig:"AWS_REGION" default:"ap-southeast-1"`
}

// FarmConfig holds pipeline defaults tied to the farm rather than the
// deployment.
type FarmConfig struct {
	Timezone        string        `envconfig:"FARM_TIMEZONE" default:"Asia/Manila" validate:"required"`
	LookAheadDays   int           `envconfig:"LOOK_AHEAD_DAYS" default:"7" validate:"min=1,max=60"`
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"15m"`
}
