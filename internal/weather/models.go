package weather

import (
	"encoding/json"
	"fmt"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Key returns a canonical string key for indexing these coordinates in caches.
func (c Coordinates) Key() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// MarshalJSON encodes the point as a [lat, lon] pair, the shape route requests use.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lon})
}

// LocationKey is the provider-specific identifier required to query current conditions.
type LocationKey string

// Reading is a snapshot of current conditions for one location.
// Temperature and wind are nil when the upstream payload omits them.
type Reading struct {
	TemperatureC             *float64 `json:"temperature"`
	WindSpeedKph             *float64 `json:"wind_speed"`
	PrecipitationProbability float64  `json:"precipitation_probability"`
}

// Report is a classified reading for a point.
type Report struct {
	Location   Coordinates
	Reading    Reading
	BadWeather bool
}

// RoutePoint is one entry of a multi-point route response.
type RoutePoint struct {
	Location   Coordinates `json:"location"`
	Weather    Reading     `json:"weather"`
	BadWeather bool        `json:"bad_weather"`
}

// CityReport is a report resolved from a city name.
type CityReport struct {
	City string
	Report
}

// CityComparison holds the start and end of a two-city route check.
type CityComparison struct {
	Start CityReport
	End   CityReport
}
