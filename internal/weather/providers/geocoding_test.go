package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kelvins/geocoder"
	"github.com/matryer/is"

	"github.com/i474232898/route-weather/internal/weather"
)

func TestNominatimGeocode(t *testing.T) {
	is := is.New(t)

	var userAgent, query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.UserAgent()
		query = r.URL.Query().Get("q")
		w.Write([]byte(`[{"place_id":1,"lat":"55.7505412","lon":"37.6174782","display_name":"Moscow, Russia"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(testHTTPConfig(srv.Client()), srv.URL, "route-weather-test", discard)
	c, err := g.Geocode(context.Background(), "Moscow")

	is.NoErr(err)
	is.Equal(c, weather.Coordinates{Lat: 55.7505412, Lon: 37.6174782})
	is.Equal(userAgent, "route-weather-test")
	is.Equal(query, "Moscow")
}

func TestNominatimGeocodeNoResults(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(testHTTPConfig(srv.Client()), srv.URL, "route-weather-test", discard)
	_, err := g.Geocode(context.Background(), "Atlantis")

	is.True(errors.Is(err, weather.ErrCityNotFound))
}

func TestGoogleGeocode(t *testing.T) {
	is := is.New(t)

	g := &GoogleGeocoder{geocode: func(a geocoder.Address) (geocoder.Location, error) {
		if a.City != "Berlin" {
			return geocoder.Location{}, errors.New("ZERO_RESULTS")
		}
		return geocoder.Location{Latitude: 52.52, Longitude: 13.405}, nil
	}}

	c, err := g.Geocode(context.Background(), "Berlin")
	is.NoErr(err)
	is.Equal(c, weather.Coordinates{Lat: 52.52, Lon: 13.405})

	_, err = g.Geocode(context.Background(), "Atlantis")
	is.True(errors.Is(err, weather.ErrCityNotFound))
}
