package weather

// Thresholds for bad weather. Comparisons are strict.
const (
	MinTemperatureC             = -5.0
	MaxTemperatureC             = 35.0
	MaxWindSpeedKph             = 50.0
	MaxPrecipitationProbability = 70.0
)

// IsBadWeather reports whether any reading lies outside its threshold.
func IsBadWeather(temperatureC, windSpeedKph, precipitationProbability float64) bool {
	if temperatureC < MinTemperatureC || temperatureC > MaxTemperatureC {
		return true
	}
	if windSpeedKph > MaxWindSpeedKph {
		return true
	}
	return precipitationProbability > MaxPrecipitationProbability
}

// Classify applies IsBadWeather to r. It returns ErrIncompleteReading when
// temperature or wind is absent.
func (r Reading) Classify() (bool, error) {
	if r.TemperatureC == nil || r.WindSpeedKph == nil {
		return false, ErrIncompleteReading
	}
	return IsBadWeather(*r.TemperatureC, *r.WindSpeedKph, r.PrecipitationProbability), nil
}
