package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/route-weather/internal/weather"
)

var validate = validator.New()

// Default point for /weather when lat or lon is omitted.
const (
	defaultLat = "55"
	defaultLon = "37"
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, log *slog.Logger) {
	h := &handlers{service: service, log: log}

	app.Get("/", h.index)
	app.Get("/weather", h.currentWeather)
	app.Post("/check_route_weather", h.checkRouteWeather)
	app.Post("/route_weather", h.routeWeather)
}

type handlers struct {
	service *weather.Service
	log     *slog.Logger
}

func (h *handlers) index(c *fiber.Ctx) error {
	return renderIndex(c, fiber.StatusOK, indexPage{})
}

// currentResponse is the single-point JSON payload.
type currentResponse struct {
	weather.Reading
	BadWeather bool `json:"bad_weather"`
}

func (h *handlers) currentWeather(c *fiber.Ctx) error {
	q, err := parsePointQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	report, err := h.service.Current(c.UserContext(), q.toCoordinates())
	if err != nil {
		h.log.Error("current weather lookup failed", "lat", q.Lat, "lon", q.Lon, "err", err)
		if errors.Is(err, weather.ErrLocationNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch location data")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}

	return c.JSON(currentResponse{
		Reading:    report.Reading,
		BadWeather: report.BadWeather,
	})
}

func (h *handlers) checkRouteWeather(c *fiber.Ctx) error {
	var form cityForm
	if err := form.bind(c); err != nil {
		return renderIndex(c, fiber.StatusBadRequest, indexPage{Error: err.Error()})
	}

	cmp, err := h.service.CompareCities(c.UserContext(), form.Start, form.End)
	if err != nil {
		h.log.Error("route check failed", "start", form.Start, "end", form.End, "err", err)
		return renderIndex(c, fiber.StatusOK, indexPage{Error: compareErrorMessage(err)})
	}

	return renderIndex(c, fiber.StatusOK, indexPage{Comparison: &cmp})
}

func compareErrorMessage(err error) string {
	switch {
	case errors.Is(err, weather.ErrCityNotFound):
		return "Could not find coordinates for one of the cities"
	case errors.Is(err, weather.ErrLocationNotFound):
		return "Could not retrieve location data"
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}

func (h *handlers) routeWeather(c *fiber.Ctx) error {
	var req routeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid route payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "each route point must be a [lat, lon] pair")
	}

	points := make([]weather.Coordinates, 0, len(req.Route))
	for _, p := range req.Route {
		points = append(points, weather.Coordinates{Lat: p[0], Lon: p[1]})
	}

	return c.JSON(h.service.Route(c.UserContext(), points))
}

// pointQuery holds query parameters for a single point.
type pointQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func (q pointQuery) toCoordinates() weather.Coordinates {
	return weather.Coordinates{Lat: q.Lat, Lon: q.Lon}
}

func parsePointQuery(c *fiber.Ctx) (pointQuery, error) {
	var q pointQuery

	lat, err := strconv.ParseFloat(c.Query("lat", defaultLat), 64)
	if err != nil {
		return q, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(c.Query("lon", defaultLon), 64)
	if err != nil {
		return q, errors.New("lon must be a number")
	}
	q.Lat, q.Lon = lat, lon

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// cityForm holds the two-city route form.
type cityForm struct {
	Start string `validate:"required"`
	End   string `validate:"required"`
}

func (f *cityForm) bind(c *fiber.Ctx) error {
	f.Start = strings.TrimSpace(c.FormValue("start"))
	f.End = strings.TrimSpace(c.FormValue("end"))

	if err := validate.Struct(f); err != nil {
		return errors.New("both start and end cities are required")
	}
	return nil
}

// routeRequest is the multi-point route payload.
type routeRequest struct {
	Route [][]float64 `json:"route" validate:"dive,len=2"`
}
