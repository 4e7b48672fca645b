package weather

import (
	"context"
	"errors"
)

var (
	// ErrLocationNotFound is returned when no location key exists for a point.
	ErrLocationNotFound = errors.New("location not found")
	// ErrConditionsNotFound is returned when the provider has no current conditions for a key.
	ErrConditionsNotFound = errors.New("current conditions not found")
	// ErrCityNotFound is returned when a city name cannot be geocoded.
	ErrCityNotFound = errors.New("city not found")
	// ErrIncompleteReading is returned when temperature or wind is missing from a reading.
	ErrIncompleteReading = errors.New("reading is missing temperature or wind speed")
)

// Provider abstracts a weather data source keyed by provider-specific location keys (e.g. AccuWeather).
type Provider interface {
	Name() string
	LocationKey(ctx context.Context, c Coordinates) (LocationKey, error)
	CurrentConditions(ctx context.Context, key LocationKey) (Reading, error)
}

// Geocoder resolves a city name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (Coordinates, error)
}

// KeyCache is the contract the in-memory location key cache must satisfy.
type KeyCache interface {
	Get(key string) (LocationKey, bool)
	Put(key string, value LocationKey)
}
