package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "cropwatch.db", cfg.Store.SQLitePath)
	assert.Equal(t, "https://api.open-meteo.com", cfg.Weather.BaseURL)
	assert.Equal(t, 7, cfg.Weather.ForecastDays)
	assert.Equal(t, "Asia/Manila", cfg.Farm.Timezone)
	assert.Equal(t, 7, cfg.Farm.LookAheadDays)
	assert.False(t, cfg.Notify.MetricsEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LOOK_AHEAD_DAYS", "14")
	t.Setenv("NOTIFY_GATEWAY_URL", "https://push.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
	assert.Equal(t, 14, cfg.Farm.LookAheadDays)
	assert.Equal(t, "https://push.example.com", cfg.Notify.GatewayURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown environment", map[string]string{"APP_ENV": "sandbox"}},
		{"unknown store driver", map[string]string{"STORE_DRIVER": "dynamo"}},
		{"postgres without url", map[string]string{"STORE_DRIVER": "postgres"}},
		{"redis without addr", map[string]string{"STORE_DRIVER": "redis"}},
		{"bad weather url", map[string]string{"WEATHER_BASE_URL": "not a url"}},
		{"forecast days out of range", map[string]string{"FORECAST_DAYS": "30"}},
		{"bad timezone", map[string]string{"FARM_TIMEZONE": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
