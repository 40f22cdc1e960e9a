package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-clock/internal/geo"
	"github.com/i474232898/weather-clock/internal/weather"
)

func newTestLoader(board *Board, locator geo.Locator, fetcher Fetcher, rec CycleRecorder) *Loader {
	return NewLoader(LoaderOptions{
		Board:         board,
		Locator:       locator,
		Fetcher:       fetcher,
		Format:        mustFormat("en-US", time.UTC),
		LocateTimeout: 50 * time.Millisecond,
		Recorder:      rec,
		Logger:        discardLogger(),
	})
}

func TestLoadSuccess(t *testing.T) {
	board := NewBoard()
	now := time.Now().Truncate(time.Hour)
	fetcher := &fakeFetcher{result: sampleResult(time.UTC, now, 60)}
	rec := &recorder{}
	l := newTestLoader(board, fakeLocator{pos: weather.Coordinates{Latitude: 1, Longitude: 2}}, fetcher, rec)

	report := l.Load(context.Background())
	require.Equal(t, OutcomeSuccess, report.Outcome)
	require.Equal(t, Theme("day-rain"), report.Theme)
	require.False(t, report.FinishedAt.IsZero())

	s := board.Snapshot()
	require.Equal(t, Status{}, s.Status)
	require.NotNil(t, s.Weather)
	require.Equal(t, "Lisbon", s.Weather.Place)
	require.Equal(t, Theme("day-rain"), s.Theme)
	require.Contains(t, s.BodyClasses(), "day-rain")
	require.Len(t, rec.reports, 1)
	require.NotEmpty(t, rec.reports[0].ID)
}

func TestLoadNightThunderstorm(t *testing.T) {
	board := NewBoard()
	now := time.Now().Truncate(time.Hour)
	res := sampleResult(time.UTC, now, 24)
	res.Forecast.Current.Code = 95
	res.Forecast.Current.IsDay = false
	res.Forecast.Current.TemperatureC = 14.5
	l := newTestLoader(board, fakeLocator{}, &fakeFetcher{result: res}, nil)

	report := l.Load(context.Background())
	require.Equal(t, OutcomeSuccess, report.Outcome)

	s := board.Snapshot()
	require.NotNil(t, s.Weather)
	require.Equal(t, "Thunderstorm", s.Weather.Current.Condition)
	require.Equal(t, "⛈️", s.Weather.Current.Icon)
	require.Equal(t, "15°C", s.Weather.Current.Temperature)
	require.Equal(t, Theme("night-storm"), s.Theme)
	require.Contains(t, s.BodyClasses(), "night-storm")
	require.NotContains(t, s.BodyClasses(), "day-rain")
}

func TestLoadLocationErrors(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{geo.PermissionDenied, "Location access denied. Enable location to see weather."},
		{geo.PositionUnavailable, "Location unavailable."},
		{geo.Timeout, "Location request timed out."},
		{9, "Location unavailable."},
	}
	for _, tc := range cases {
		board := NewBoard()
		fetcher := &fakeFetcher{}
		l := newTestLoader(board, fakeLocator{err: &geo.PositionError{Code: tc.code}}, fetcher, nil)

		report := l.Load(context.Background())
		require.Equal(t, OutcomeLocationError, report.Outcome)
		require.Equal(t, Status{Text: tc.want, Error: true}, board.Snapshot().Status)
		require.Zero(t, fetcher.Calls())
	}
}

func TestLoadLocateTimeout(t *testing.T) {
	board := NewBoard()
	fetcher := &fakeFetcher{}
	l := newTestLoader(board, fakeLocator{block: true}, fetcher, nil)

	l.Load(context.Background())
	require.Equal(t, Status{Text: "Location request timed out.", Error: true}, board.Snapshot().Status)
	require.Zero(t, fetcher.Calls())
}

func TestLoadFetchFailureKeepsPreviousForecast(t *testing.T) {
	board := NewBoard()
	now := time.Now().Truncate(time.Hour)
	fetcher := &fakeFetcher{result: sampleResult(time.UTC, now, 60)}
	l := newTestLoader(board, fakeLocator{}, fetcher, nil)
	l.Load(context.Background())

	fetcher.err = &weather.TransportError{Service: "openmeteo", StatusCode: 502}
	report := l.Load(context.Background())
	require.Equal(t, OutcomeFetchError, report.Outcome)

	s := board.Snapshot()
	require.Equal(t, Status{Text: StatusFailed, Error: true}, s.Status)
	require.NotNil(t, s.Weather)
	var te *weather.TransportError
	require.True(t, errors.As(report.Err, &te))
}

func TestStaleCycleDoesNotOverwriteNewer(t *testing.T) {
	board := NewBoard()
	now := time.Now().Truncate(time.Hour)

	slowResult := sampleResult(time.UTC, now, 60)
	slowResult.PlaceName = "Old"
	slow := &fakeFetcher{result: slowResult, gate: make(chan struct{})}
	fast := &fakeFetcher{result: sampleResult(time.UTC, now, 60)}

	older := newTestLoader(board, fakeLocator{}, slow, nil)
	newer := newTestLoader(board, fakeLocator{}, fast, nil)

	done := make(chan CycleReport, 1)
	go func() { done <- older.Load(context.Background()) }()
	require.Eventually(t, func() bool { return slow.Calls() == 1 }, time.Second, time.Millisecond)

	require.Equal(t, OutcomeSuccess, newer.Load(context.Background()).Outcome)
	close(slow.gate)

	report := <-done
	require.Equal(t, OutcomeSuperseded, report.Outcome)
	require.Equal(t, "Lisbon", board.Snapshot().Weather.Place)
}
