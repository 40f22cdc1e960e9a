package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-clock/internal/weather"
)

const sampleForecast = `{
  "latitude": 38.72,
  "longitude": -9.14,
  "utc_offset_seconds": 3600,
  "timezone": "Europe/Lisbon",
  "current": {
    "time": "2026-06-01T14:00",
    "temperature_2m": 21.4,
    "weather_code": 2,
    "is_day": 1,
    "relative_humidity_2m": 65,
    "apparent_temperature": 20.6,
    "precipitation": 0.1,
    "wind_speed_10m": 12.3
  },
  "hourly": {
    "time": ["2026-06-01T13:00", "2026-06-01T14:00", "2026-06-01T15:00"],
    "temperature_2m": [20.9, 21.4, 22.0],
    "weather_code": [1, 2, 61],
    "is_day": [1, 1, 1]
  },
  "daily": {
    "time": ["2026-06-01", "2026-06-02"],
    "weather_code": [2, 95],
    "temperature_2m_max": [23.5, 19.2],
    "temperature_2m_min": [14.1, 13.0]
  }
}`

func newTestOpenMeteo(t *testing.T, handler http.HandlerFunc) *OpenMeteoProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenMeteoProvider(srv.Client(), OpenMeteoOptions{BaseURL: srv.URL})
}

func TestOpenMeteoForecastDecodes(t *testing.T) {
	var query map[string]string
	p := newTestOpenMeteo(t, func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleForecast))
	})

	fc, err := p.Forecast(context.Background(), weather.Coordinates{Latitude: 38.72, Longitude: -9.14})
	require.NoError(t, err)

	require.Equal(t, "38.72", query["latitude"])
	require.Equal(t, "-9.14", query["longitude"])
	require.Equal(t, openMeteoCurrent, query["current"])
	require.Equal(t, openMeteoHourly, query["hourly"])
	require.Equal(t, openMeteoDaily, query["daily"])
	require.Equal(t, "celsius", query["temperature_unit"])
	require.Equal(t, "kmh", query["wind_speed_unit"])
	require.Equal(t, "auto", query["timezone"])

	require.Equal(t, 21.4, fc.Current.TemperatureC)
	require.Equal(t, 20.6, fc.Current.FeelsLikeC)
	require.Equal(t, 65.0, fc.Current.HumidityPct)
	require.Equal(t, 12.3, fc.Current.WindKph)
	require.Equal(t, 0.1, fc.Current.PrecipitationMm)
	require.Equal(t, 2, fc.Current.Code)
	require.True(t, fc.Current.IsDay)

	require.Equal(t, "Europe/Lisbon", fc.Location.String())
	require.Len(t, fc.Hourly, 3)
	require.Equal(t, 15, fc.Hourly[2].Time.Hour())
	require.Equal(t, 61, fc.Hourly[2].Code)

	require.Len(t, fc.Daily, 2)
	require.Equal(t, 2026, fc.Daily[1].Year)
	require.Equal(t, time.June, fc.Daily[1].Month)
	require.Equal(t, 2, fc.Daily[1].Day)
	require.Equal(t, 95, fc.Daily[1].Code)
}

func TestOpenMeteoNonSuccessStatus(t *testing.T) {
	p := newTestOpenMeteo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := p.Forecast(context.Background(), weather.Coordinates{})
	var te *weather.TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, http.StatusServiceUnavailable, te.StatusCode)
}

func TestOpenMeteoMalformedPayloads(t *testing.T) {
	bodies := []string{
		`not json`,
		`{"timezone":"UTC","hourly":{"time":[]},"daily":{"time":[]}}`,
		`{"timezone":"UTC","current":{"weather_code":0},"hourly":{"time":["2026-06-01T13:00"],"temperature_2m":[],"weather_code":[1],"is_day":[1]}}`,
		`{"timezone":"UTC","current":{"weather_code":0},"hourly":{"time":["yesterday"],"temperature_2m":[1],"weather_code":[1],"is_day":[1]}}`,
	}
	for _, body := range bodies {
		body := body
		p := newTestOpenMeteo(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		_, err := p.Forecast(context.Background(), weather.Coordinates{})
		var me *weather.MalformedResponseError
		require.ErrorAs(t, err, &me, "body %s", body)
	}
}

func TestOpenMeteoNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewOpenMeteoProvider(http.DefaultClient, OpenMeteoOptions{BaseURL: url})
	_, err := p.Forecast(context.Background(), weather.Coordinates{})
	var ne *weather.NetworkError
	require.ErrorAs(t, err, &ne)
}

func TestResolveLocationFallsBackToOffset(t *testing.T) {
	loc := resolveLocation("Not/AZone", 7200)
	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, loc).Zone()
	require.Equal(t, 7200, offset)
}
