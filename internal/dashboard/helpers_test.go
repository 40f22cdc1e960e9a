package dashboard

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/i474232898/weather-clock/internal/prefs"
	"github.com/i474232898/weather-clock/internal/weather"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustFormat(locale string, loc *time.Location) Format {
	f, err := NewFormat(locale, loc)
	if err != nil {
		panic(err)
	}
	return f
}

type memPrefs struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	setErr error
}

func newMemPrefs() *memPrefs {
	return &memPrefs{values: map[string]string{}}
}

func (m *memPrefs) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", prefs.ErrNotFound
	}
	return v, nil
}

func (m *memPrefs) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

type fakeLocator struct {
	pos   weather.Coordinates
	err   error
	block bool
}

func (f fakeLocator) Locate(ctx context.Context) (weather.Coordinates, error) {
	if f.block {
		<-ctx.Done()
		return weather.Coordinates{}, ctx.Err()
	}
	return f.pos, f.err
}

type fakeFetcher struct {
	mu     sync.Mutex
	result weather.Result
	err    error
	calls  int
	gate   chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, pos weather.Coordinates) (weather.Result, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.result, f.err
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recorder struct {
	mu      sync.Mutex
	reports []CycleReport
}

func (r *recorder) Record(rep CycleReport) {
	r.mu.Lock()
	r.reports = append(r.reports, rep)
	r.mu.Unlock()
}

func sampleResult(loc *time.Location, start time.Time, hours int) weather.Result {
	fc := weather.Forecast{
		Location: loc,
		Current: weather.CurrentConditions{
			TemperatureC:    21.5,
			FeelsLikeC:      20.4,
			HumidityPct:     65,
			WindKph:         12.3,
			PrecipitationMm: 0.1,
			Code:            61,
			IsDay:           true,
		},
	}
	for i := 0; i < hours; i++ {
		fc.Hourly = append(fc.Hourly, weather.HourlyPoint{
			Time:         start.Add(time.Duration(i) * time.Hour),
			TemperatureC: float64(10 + i%5),
			Code:         []int{0, 3, 61, 42}[i%4],
			IsDay:        true,
		})
	}
	day := start.In(loc)
	for i := 0; i < 7; i++ {
		d := day.AddDate(0, 0, i)
		fc.Daily = append(fc.Daily, weather.DailyPoint{
			Year: d.Year(), Month: d.Month(), Day: d.Day(),
			MaxTemperatureC: 20.5, MinTemperatureC: 10.49, Code: 95,
		})
	}
	return weather.Result{Forecast: fc, PlaceName: "Lisbon"}
}
