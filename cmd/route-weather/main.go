package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	httpapi "github.com/i474232898/route-weather/internal/api/http"
	"github.com/i474232898/route-weather/internal/config"
	"github.com/i474232898/route-weather/internal/logging"
	"github.com/i474232898/route-weather/internal/scheduler"
	"github.com/i474232898/route-weather/internal/store"
	"github.com/i474232898/route-weather/internal/weather"
	"github.com/i474232898/route-weather/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	log := logging.New(os.Stdout, cfg, "route-weather")
	slog.SetDefault(log)

	if cfg.AccuWeatherAPIKey == "" {
		log.Warn("ACC_WEATHER_API_KEY is not set; weather lookups will fail")
	}

	// Shared HTTP client and limiter for outbound provider calls.
	httpCfg := providers.HTTPClientConfig{
		Client: &http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Backoff: providers.DefaultBackoff,
		Limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst),
	}

	provider := providers.NewAccuWeatherProvider(httpCfg, cfg.AccuWeatherBaseURL, cfg.AccuWeatherAPIKey, log)

	var geocoder weather.Geocoder
	if cfg.GeocoderAPIKey != "" {
		geocoder = providers.NewGoogleGeocoder(cfg.GeocoderAPIKey)
		log.Info("using google geocoder")
	} else {
		geocoder = providers.NewNominatimGeocoder(httpCfg, cfg.NominatimBaseURL, cfg.NominatimUserAgent, log)
		log.Info("using nominatim geocoder", "url", cfg.NominatimBaseURL)
	}

	opts := []weather.Option{weather.WithLogger(log)}

	// Location keys are stable, so they are cached with retention.
	var pruner scheduler.Pruner
	if cfg.KeyCacheEnabled() {
		keyStore := store.NewMemoryStore(cfg.KeyCacheMaxEntries, cfg.KeyCacheMaxAge)
		opts = append(opts, weather.WithKeyCache(keyStore))
		pruner = keyStore
	}

	service := weather.NewService(provider, geocoder, opts...)

	sched := scheduler.New(pruner, cfg.KeyCachePruneInterval, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "err", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, log, os.Stdout)

	go func() {
		log.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "err", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "err", err)
	}
}
