package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/route-weather/internal/weather"
)

const DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// GoogleGeocoder resolves city names through the Google Geocoding API.
type GoogleGeocoder struct {
	geocode func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleGeocoder configures the package-level key used by kelvins/geocoder.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{geocode: geocoder.Geocoding}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, city string) (weather.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return weather.Coordinates{}, err
	}

	loc, err := g.geocode(geocoder.Address{City: city})
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("%w: %w", weather.ErrCityNotFound, err)
	}
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return weather.Coordinates{}, weather.ErrCityNotFound
	}

	return weather.Coordinates{Lat: loc.Latitude, Lon: loc.Longitude}, nil
}

// NominatimGeocoder resolves city names through an OpenStreetMap Nominatim instance.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

func NewNominatimGeocoder(cfg HTTPClientConfig, baseURL, userAgent string, log *slog.Logger) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimBaseURL
	}
	return &NominatimGeocoder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpCfg:   cfg,
		circuit:   newCircuitBreaker("nominatim", log),
	}
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, city string) (weather.Coordinates, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("format", "json")
		values.Set("limit", "1")

		req, err := http.NewRequest(http.MethodGet, g.baseURL+"/search?"+values.Encode(), nil)
		if err != nil {
			return nil, err
		}
		// Nominatim rejects requests without an identifying user agent.
		req.Header.Set("User-Agent", g.userAgent)
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return weather.Coordinates{}, err
	}
	defer resp.Body.Close()

	// Nominatim encodes coordinates as strings.
	var payload []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Coordinates{}, fmt.Errorf("decode nominatim response: %w", err)
	}
	if len(payload) == 0 {
		return weather.Coordinates{}, weather.ErrCityNotFound
	}

	lat, err := strconv.ParseFloat(payload[0].Lat, 64)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("parse latitude %q: %w", payload[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(payload[0].Lon, 64)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("parse longitude %q: %w", payload[0].Lon, err)
	}

	return weather.Coordinates{Lat: lat, Lon: lon}, nil
}
