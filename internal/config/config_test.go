package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	t.Setenv("ACC_WEATHER_API_KEY", "secret")

	cfg, err := Load()

	is.NoErr(err)
	is.Equal(cfg.AccuWeatherAPIKey, "secret")
	is.Equal(cfg.AppEnv, "dev")
	is.Equal(cfg.LogLevel, slog.LevelInfo)
	is.Equal(cfg.HTTPTimeout, 10*time.Second)
	is.Equal(cfg.RequestsPerSecond, 5.0)
	is.Equal(cfg.KeyCacheMaxEntries, 1000)
	is.Equal(cfg.KeyCacheMaxAge, 24*time.Hour)
	is.Equal(cfg.Port, "8080")
	is.True(cfg.KeyCacheEnabled())
}

func TestLoadOverrides(t *testing.T) {
	is := is.New(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("KEY_CACHE_MAX_AGE", "0")
	t.Setenv("GEOCODER_API_KEY", "google")

	cfg, err := Load()

	is.NoErr(err)
	is.Equal(cfg.AppEnv, "prod")
	is.Equal(cfg.LogLevel, slog.LevelDebug)
	is.Equal(cfg.HTTPTimeout, 3*time.Second)
	is.Equal(cfg.GeocoderAPIKey, "google")
	is.True(!cfg.KeyCacheEnabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"APP_ENV":           "staging",
		"LOG_LEVEL":         "verbose",
		"HTTP_TIMEOUT":      "soon",
		"PROVIDER_RPS":      "-1",
		"KEY_CACHE_MAX_AGE": "a day",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
