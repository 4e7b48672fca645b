package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	AppEnv   string
	LogLevel slog.Level

	AccuWeatherAPIKey  string
	AccuWeatherBaseURL string

	// GeocoderAPIKey selects the Google geocoder when set; Nominatim is used otherwise.
	GeocoderAPIKey     string
	NominatimBaseURL   string
	NominatimUserAgent string

	// Outbound HTTP.
	HTTPTimeout       time.Duration
	RequestsPerSecond float64
	RequestBurst      int

	// Location key cache retention.
	KeyCacheMaxEntries    int           // max number of cached keys (0 = unlimited)
	KeyCacheMaxAge        time.Duration // 0 disables the cache
	KeyCachePruneInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "err", err)
	}
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.AccuWeatherAPIKey = os.Getenv("ACC_WEATHER_API_KEY")
	cfg.AccuWeatherBaseURL = getenvDefault("ACCUWEATHER_BASE_URL", "https://dataservice.accuweather.com")

	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.NominatimBaseURL = getenvDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	cfg.NominatimUserAgent = getenvDefault("NOMINATIM_USER_AGENT", "route-weather")

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	rps, err := strconv.ParseFloat(getenvDefault("PROVIDER_RPS", "5"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("invalid PROVIDER_RPS: must be a positive number")
	}
	cfg.RequestsPerSecond = rps
	cfg.RequestBurst = getenvInt("PROVIDER_BURST", 5)

	cfg.KeyCacheMaxEntries = getenvInt("KEY_CACHE_MAX_ENTRIES", 1000)
	if cfg.KeyCacheMaxAge, err = getenvDuration("KEY_CACHE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	if cfg.KeyCachePruneInterval, err = getenvDuration("KEY_CACHE_PRUNE_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// KeyCacheEnabled reports whether location keys should be cached.
func (c *AppConfig) KeyCacheEnabled() bool {
	return c.KeyCacheMaxAge > 0
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
