package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/route-weather/internal/weather"
)

const DefaultAccuWeatherBaseURL = "https://dataservice.accuweather.com"

var errNoAPIKey = errors.New("accuweather api key is not configured")

// AccuWeatherProvider implements the weather.Provider interface for AccuWeather.
type AccuWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewAccuWeatherProvider(cfg HTTPClientConfig, baseURL, apiKey string, log *slog.Logger) *AccuWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultAccuWeatherBaseURL
	}
	return &AccuWeatherProvider{
		name:    "accuweather",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: cfg,
		circuit: newCircuitBreaker("accuweather", log),
	}
}

func (p *AccuWeatherProvider) Name() string {
	return p.name
}

// LocationKey looks up the AccuWeather location key for a geoposition.
// Any failure is reported as weather.ErrLocationNotFound.
func (p *AccuWeatherProvider) LocationKey(ctx context.Context, c weather.Coordinates) (weather.LocationKey, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("%w: %w", weather.ErrLocationNotFound, errNoAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("apikey", p.apiKey)
		values.Set("q", fmt.Sprintf("%g,%g", c.Lat, c.Lon))

		u := fmt.Sprintf("%s/locations/v1/cities/geoposition/search?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return "", fmt.Errorf("%w: %w", weather.ErrLocationNotFound, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Key           string `json:"Key"`
		LocalizedName string `json:"LocalizedName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode geoposition: %w", weather.ErrLocationNotFound, err)
	}
	if payload.Key == "" {
		return "", weather.ErrLocationNotFound
	}

	return weather.LocationKey(payload.Key), nil
}

// CurrentConditions fetches the current conditions for a location key.
// Any failure is reported as weather.ErrConditionsNotFound.
func (p *AccuWeatherProvider) CurrentConditions(ctx context.Context, key weather.LocationKey) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("%w: %w", weather.ErrConditionsNotFound, errNoAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("apikey", p.apiKey)
		// The wind block is only included in the detailed payload.
		values.Set("details", "true")

		u := fmt.Sprintf("%s/currentconditions/v1/%s?%s", p.baseURL, url.PathEscape(string(key)), values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, fmt.Errorf("%w: %w", weather.ErrConditionsNotFound, err)
	}
	defer resp.Body.Close()

	var payload []accuWeatherConditions
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("%w: decode conditions: %w", weather.ErrConditionsNotFound, err)
	}
	if len(payload) == 0 {
		return weather.Reading{}, weather.ErrConditionsNotFound
	}

	return payload[0].toReading(), nil
}

type accuWeatherValue struct {
	Metric *struct {
		Value *float64 `json:"Value"`
	} `json:"Metric"`
}

func (v *accuWeatherValue) metric() *float64 {
	if v == nil || v.Metric == nil {
		return nil
	}
	return v.Metric.Value
}

type accuWeatherConditions struct {
	Temperature *accuWeatherValue `json:"Temperature"`
	Wind        *struct {
		Speed *accuWeatherValue `json:"Speed"`
	} `json:"Wind"`
	PrecipitationProbability *float64 `json:"PrecipitationProbability"`
}

func (c accuWeatherConditions) toReading() weather.Reading {
	var r weather.Reading
	r.TemperatureC = c.Temperature.metric()
	if c.Wind != nil {
		r.WindSpeedKph = c.Wind.Speed.metric()
	}
	if c.PrecipitationProbability != nil {
		r.PrecipitationProbability = *c.PrecipitationProbability
	}
	return r
}
