package weather

import (
	"context"
	"fmt"
	"log/slog"
)

// Service resolves locations, fetches current conditions and classifies them.
type Service struct {
	provider Provider
	geocoder Geocoder
	keys     KeyCache
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithKeyCache caches location keys by coordinates.
func WithKeyCache(c KeyCache) Option {
	return func(s *Service) { s.keys = c }
}

// WithLogger sets the logger used for dropped route points and cache activity.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a new Service.
func NewService(provider Provider, geocoder Geocoder, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		geocoder: geocoder,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current fetches and classifies the conditions at c.
func (s *Service) Current(ctx context.Context, c Coordinates) (Report, error) {
	key, err := s.locationKey(ctx, c)
	if err != nil {
		return Report{}, err
	}
	return s.report(ctx, c, key)
}

// CompareCities geocodes start and end and reports the conditions at both.
func (s *Service) CompareCities(ctx context.Context, start, end string) (CityComparison, error) {
	if s.geocoder == nil {
		return CityComparison{}, fmt.Errorf("no geocoder configured")
	}

	startCoords, err := s.geocoder.Geocode(ctx, start)
	if err != nil {
		return CityComparison{}, fmt.Errorf("geocode %q: %w", start, err)
	}
	endCoords, err := s.geocoder.Geocode(ctx, end)
	if err != nil {
		return CityComparison{}, fmt.Errorf("geocode %q: %w", end, err)
	}

	// Both keys are resolved before any conditions are fetched.
	startKey, err := s.locationKey(ctx, startCoords)
	if err != nil {
		return CityComparison{}, err
	}
	endKey, err := s.locationKey(ctx, endCoords)
	if err != nil {
		return CityComparison{}, err
	}

	startReport, err := s.report(ctx, startCoords, startKey)
	if err != nil {
		return CityComparison{}, err
	}
	endReport, err := s.report(ctx, endCoords, endKey)
	if err != nil {
		return CityComparison{}, err
	}

	return CityComparison{
		Start: CityReport{City: start, Report: startReport},
		End:   CityReport{City: end, Report: endReport},
	}, nil
}

// Route reports the conditions at each point in order. Points that cannot be
// resolved or classified are left out of the result.
func (s *Service) Route(ctx context.Context, points []Coordinates) []RoutePoint {
	results := make([]RoutePoint, 0, len(points))

	for _, p := range points {
		if ctx.Err() != nil {
			break
		}
		r, err := s.Current(ctx, p)
		if err != nil {
			s.log.Warn("route point dropped", "point", p.Key(), "err", err)
			continue
		}
		results = append(results, RoutePoint{
			Location:   p,
			Weather:    r.Reading,
			BadWeather: r.BadWeather,
		})
	}

	return results
}

func (s *Service) report(ctx context.Context, c Coordinates, key LocationKey) (Report, error) {
	reading, err := s.provider.CurrentConditions(ctx, key)
	if err != nil {
		return Report{}, fmt.Errorf("conditions for %s: %w", key, err)
	}
	bad, err := reading.Classify()
	if err != nil {
		return Report{}, fmt.Errorf("conditions for %s: %w", key, err)
	}
	return Report{Location: c, Reading: reading, BadWeather: bad}, nil
}

func (s *Service) locationKey(ctx context.Context, c Coordinates) (LocationKey, error) {
	if s.keys != nil {
		if key, ok := s.keys.Get(c.Key()); ok {
			return key, nil
		}
	}

	key, err := s.provider.LocationKey(ctx, c)
	if err != nil {
		return "", fmt.Errorf("%s location key for %s: %w", s.provider.Name(), c.Key(), err)
	}

	if s.keys != nil {
		s.keys.Put(c.Key(), key)
		s.log.Debug("location key cached", "point", c.Key(), "key", key)
	}
	return key, nil
}
