package dashboard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/i474232898/weather-clock/internal/common"
	"github.com/i474232898/weather-clock/internal/weather"
)

// HourlyWindow is the maximum number of hourly items shown.
const HourlyWindow = 48

// CurrentView is the rendered current-conditions block.
type CurrentView struct {
	Temperature   string            `json:"temperature"`
	Condition     string            `json:"condition"`
	Icon          string            `json:"icon"`
	FeelsLike     string            `json:"feelsLike"`
	Humidity      string            `json:"humidity"`
	Wind          string            `json:"wind"`
	Precipitation string            `json:"precipitation"`
	Category      weather.Condition `json:"category"`
	IsDay         bool              `json:"isDay"`
}

type HourlyItem struct {
	Time        time.Time `json:"time"`
	Label       string    `json:"label"`
	Temperature string    `json:"temperature"`
	Icon        string    `json:"icon"`
}

type DailyItem struct {
	Label string `json:"label"`
	High  string `json:"high"`
	Low   string `json:"low"`
	Icon  string `json:"icon"`
}

// WeatherView is everything the weather section shows.
type WeatherView struct {
	Place   string       `json:"place"`
	Current CurrentView  `json:"current"`
	Hourly  []HourlyItem `json:"hourly"`
	Daily   []DailyItem  `json:"daily"`
}

// Render turns a fetch result into display strings. It has no side effects.
func Render(res weather.Result, now time.Time, format Format) WeatherView {
	cur := res.Forecast.Current
	entry := weather.Lookup(cur.Code)

	view := WeatherView{
		Place: res.PlaceName,
		Current: CurrentView{
			Temperature:   fmt.Sprintf("%d°C", common.RoundHalfUp(cur.TemperatureC)),
			Condition:     entry.Label,
			Icon:          entry.Icon,
			FeelsLike:     fmt.Sprintf("%d°C", common.RoundHalfUp(cur.FeelsLikeC)),
			Humidity:      plain(cur.HumidityPct) + "%",
			Wind:          plain(cur.WindKph) + " km/h",
			Precipitation: plain(cur.PrecipitationMm) + " mm",
			Category:      entry.Category,
			IsDay:         cur.IsDay,
		},
	}

	hourly := res.Forecast.Hourly
	start := HourlyWindowStart(hourly, now)
	end := min(start+HourlyWindow, len(hourly))
	view.Hourly = make([]HourlyItem, 0, end-start)
	for _, p := range hourly[start:end] {
		view.Hourly = append(view.Hourly, HourlyItem{
			Time:        p.Time,
			Label:       format.HourLabel(p.Time),
			Temperature: fmt.Sprintf("%d°", common.RoundHalfUp(p.TemperatureC)),
			Icon:        weather.ForecastIcon(p.Code),
		})
	}

	today := now
	if res.Forecast.Location != nil {
		today = now.In(res.Forecast.Location)
	}
	view.Daily = make([]DailyItem, 0, len(res.Forecast.Daily))
	for _, d := range res.Forecast.Daily {
		view.Daily = append(view.Daily, DailyItem{
			Label: DayLabel(d, today),
			High:  fmt.Sprintf("%d°", common.RoundHalfUp(d.MaxTemperatureC)),
			Low:   fmt.Sprintf("%d°", common.RoundHalfUp(d.MinTemperatureC)),
			Icon:  weather.ForecastIcon(d.Code),
		})
	}

	return view
}

// HourlyWindowStart returns the index of the last point not after now's hour:
// the first point at or after now, stepped back by one. When no point is at
// or after now the window starts at the beginning.
func HourlyWindowStart(points []weather.HourlyPoint, now time.Time) int {
	start := 0
	for i, p := range points {
		if !p.Time.Before(now) {
			start = i
			break
		}
	}
	if start > 0 {
		start--
	}
	return start
}

// DayLabel names a forecast day relative to today, which must already be in
// the forecast location's zone.
func DayLabel(d weather.DailyPoint, today time.Time) string {
	if d.SameDate(today) {
		return "Today"
	}
	if d.SameDate(today.AddDate(0, 0, 1)) {
		return "Tomorrow"
	}
	return d.Date(time.UTC).Weekday().String()
}

// plain formats v at its source precision, "12.3" or "65".
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
