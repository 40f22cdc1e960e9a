package weather

import (
	"time"
)

// Condition is the coarse category a WMO code maps to. It drives theme selection.
type Condition string

const (
	ConditionClear  Condition = "clear"
	ConditionCloudy Condition = "cloudy"
	ConditionRain   Condition = "rain"
	ConditionSnow   Condition = "snow"
	ConditionStorm  Condition = "storm"
)

// Categories lists every condition category in a stable order.
var Categories = []Condition{ConditionClear, ConditionCloudy, ConditionRain, ConditionSnow, ConditionStorm}

// Coordinates is a geographic position in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions is the observation block of a forecast response.
type CurrentConditions struct {
	TemperatureC    float64 `json:"temperatureC"`
	FeelsLikeC      float64 `json:"feelsLikeC"`
	HumidityPct     float64 `json:"humidityPercent"`
	WindKph         float64 `json:"windKph"`
	PrecipitationMm float64 `json:"precipitationMm"`
	Code            int     `json:"weatherCode"`
	IsDay           bool    `json:"isDay"`
}

// HourlyPoint is one hour of forecast. Time carries the forecast location's zone.
type HourlyPoint struct {
	Time         time.Time `json:"time"`
	TemperatureC float64   `json:"temperatureC"`
	Code         int       `json:"weatherCode"`
	IsDay        bool      `json:"isDay"`
}

// DailyPoint is one calendar day of forecast.
type DailyPoint struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`

	MaxTemperatureC float64 `json:"maxTemperatureC"`
	MinTemperatureC float64 `json:"minTemperatureC"`
	Code            int     `json:"weatherCode"`
}

// SameDate reports whether t falls on this point's calendar date in t's own zone.
func (d DailyPoint) SameDate(t time.Time) bool {
	y, m, day := t.Date()
	return y == d.Year && m == d.Month && day == d.Day
}

// Date returns midnight of the point's date in loc.
func (d DailyPoint) Date(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Forecast is the decoded forecast for one position. Hourly is ascending by time.
type Forecast struct {
	Location *time.Location    `json:"-"`
	Timezone string            `json:"timezone"`
	Current  CurrentConditions `json:"current"`
	Hourly   []HourlyPoint     `json:"hourly"`
	Daily    []DailyPoint      `json:"daily"`
}

// Result is what one fetch produces: the forecast and an optional place name.
// An empty PlaceName means no name is available.
type Result struct {
	Forecast  Forecast    `json:"forecast"`
	PlaceName string      `json:"placeName"`
	Position  Coordinates `json:"position"`
	FetchedAt time.Time   `json:"fetchedAt"`
}
