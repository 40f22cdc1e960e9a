package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-clock/internal/weather"
)

const (
	// DefaultOpenMeteoURL is the public forecast endpoint.
	DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

	openMeteoCurrent = "temperature_2m,weather_code,is_day,relative_humidity_2m,apparent_temperature,precipitation,wind_speed_10m"
	openMeteoHourly  = "temperature_2m,weather_code,is_day"
	openMeteoDaily   = "weather_code,temperature_2m_max,temperature_2m_min"

	openMeteoHourLayout = "2006-01-02T15:04"
	openMeteoDateLayout = "2006-01-02"
)

// OpenMeteoProvider implements weather.ForecastProvider for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// OpenMeteoOptions configures the provider. Zero values fall back to defaults.
type OpenMeteoOptions struct {
	BaseURL string
	Backoff BackoffConfig
	Breaker BreakerConfig
}

func NewOpenMeteoProvider(client *http.Client, opts OpenMeteoOptions) *OpenMeteoProvider {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultOpenMeteoURL
	}
	if opts.Breaker.Interval == 0 {
		opts.Breaker.Interval = time.Minute
	}
	if opts.Breaker.Timeout == 0 {
		opts.Breaker.Timeout = 2 * time.Minute
	}

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: opts.BaseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: opts.Backoff,
		},
		circuit: newBreaker("openmeteo", opts.Breaker),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoResponse struct {
	UTCOffsetSeconds int    `json:"utc_offset_seconds"`
	Timezone         string `json:"timezone"`
	Current          *struct {
		Temperature         float64 `json:"temperature_2m"`
		WeatherCode         int     `json:"weather_code"`
		IsDay               int     `json:"is_day"`
		RelativeHumidity    float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		Precipitation       float64 `json:"precipitation"`
		WindSpeed           float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Hourly struct {
		Time        []string  `json:"time"`
		Temperature []float64 `json:"temperature_2m"`
		WeatherCode []int     `json:"weather_code"`
		IsDay       []int     `json:"is_day"`
	} `json:"hourly"`
	Daily struct {
		Time           []string  `json:"time"`
		WeatherCode    []int     `json:"weather_code"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) Forecast(ctx context.Context, pos weather.Coordinates) (weather.Forecast, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(pos.Latitude, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(pos.Longitude, 'f', -1, 64))
		values.Set("current", openMeteoCurrent)
		values.Set("hourly", openMeteoHourly)
		values.Set("daily", openMeteoDaily)
		values.Set("temperature_unit", "celsius")
		values.Set("wind_speed_unit", "kmh")
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.name, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Forecast{}, err
	}
	defer resp.Body.Close()

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Forecast{}, p.malformed(fmt.Errorf("decode payload: %w", err))
	}

	forecast, err := payload.toForecast()
	if err != nil {
		return weather.Forecast{}, p.malformed(err)
	}
	return forecast, nil
}

func (p *OpenMeteoProvider) malformed(err error) error {
	return &weather.MalformedResponseError{Service: p.name, Err: err}
}

func (r openMeteoResponse) toForecast() (weather.Forecast, error) {
	if r.Current == nil {
		return weather.Forecast{}, errors.New("missing current block")
	}

	loc := resolveLocation(r.Timezone, r.UTCOffsetSeconds)
	out := weather.Forecast{
		Location: loc,
		Timezone: r.Timezone,
		Current: weather.CurrentConditions{
			TemperatureC:    r.Current.Temperature,
			FeelsLikeC:      r.Current.ApparentTemperature,
			HumidityPct:     r.Current.RelativeHumidity,
			WindKph:         r.Current.WindSpeed,
			PrecipitationMm: r.Current.Precipitation,
			Code:            r.Current.WeatherCode,
			IsDay:           r.Current.IsDay == 1,
		},
	}

	h := r.Hourly
	if len(h.Temperature) != len(h.Time) || len(h.WeatherCode) != len(h.Time) || len(h.IsDay) != len(h.Time) {
		return weather.Forecast{}, fmt.Errorf("hourly series lengths differ: time=%d temperature=%d code=%d is_day=%d",
			len(h.Time), len(h.Temperature), len(h.WeatherCode), len(h.IsDay))
	}
	out.Hourly = make([]weather.HourlyPoint, 0, len(h.Time))
	for i, raw := range h.Time {
		ts, err := time.ParseInLocation(openMeteoHourLayout, raw, loc)
		if err != nil {
			return weather.Forecast{}, fmt.Errorf("hourly time %q: %w", raw, err)
		}
		out.Hourly = append(out.Hourly, weather.HourlyPoint{
			Time:         ts,
			TemperatureC: h.Temperature[i],
			Code:         h.WeatherCode[i],
			IsDay:        h.IsDay[i] == 1,
		})
	}

	d := r.Daily
	if len(d.WeatherCode) != len(d.Time) || len(d.TemperatureMax) != len(d.Time) || len(d.TemperatureMin) != len(d.Time) {
		return weather.Forecast{}, fmt.Errorf("daily series lengths differ: time=%d code=%d max=%d min=%d",
			len(d.Time), len(d.WeatherCode), len(d.TemperatureMax), len(d.TemperatureMin))
	}
	out.Daily = make([]weather.DailyPoint, 0, len(d.Time))
	for i, raw := range d.Time {
		date, err := time.Parse(openMeteoDateLayout, raw)
		if err != nil {
			return weather.Forecast{}, fmt.Errorf("daily date %q: %w", raw, err)
		}
		out.Daily = append(out.Daily, weather.DailyPoint{
			Year:            date.Year(),
			Month:           date.Month(),
			Day:             date.Day(),
			MaxTemperatureC: d.TemperatureMax[i],
			MinTemperatureC: d.TemperatureMin[i],
			Code:            d.WeatherCode[i],
		})
	}

	return out, nil
}

// resolveLocation prefers the IANA zone and falls back to the reported offset.
func resolveLocation(name string, offsetSeconds int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if name == "" {
		name = "UTC"
	}
	return time.FixedZone(name, offsetSeconds)
}
