package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Fetcher issues the forecast and place-name requests for one position concurrently.
type Fetcher struct {
	forecast ForecastProvider
	places   PlaceResolver
	logger   *slog.Logger
	now      func() time.Time
}

// NewFetcher creates a Fetcher. places may be nil, in which case no name is resolved.
func NewFetcher(forecast ForecastProvider, places PlaceResolver, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		forecast: forecast,
		places:   places,
		logger:   logger.With("component", "fetcher"),
		now:      time.Now,
	}
}

// Fetch returns the forecast and place name for pos. It returns only after both
// requests have finished. A forecast failure fails the fetch; a place-name
// failure is absorbed into an empty name.
func (f *Fetcher) Fetch(ctx context.Context, pos Coordinates) (Result, error) {
	if f.forecast == nil {
		return Result{}, fmt.Errorf("no forecast provider configured")
	}

	var (
		wg          sync.WaitGroup
		forecast    Forecast
		forecastErr error
		place       string
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		forecast, forecastErr = f.forecast.Forecast(ctx, pos)
	}()

	if f.places != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := f.places.ResolvePlace(ctx, pos)
			if err != nil {
				f.logger.Debug("place name unavailable", "resolver", f.places.Name(), "error", err)
				return
			}
			place = name
		}()
	}

	wg.Wait()

	if forecastErr != nil {
		return Result{}, fmt.Errorf("fetch forecast from %s: %w", f.forecast.Name(), forecastErr)
	}

	return Result{
		Forecast:  forecast,
		PlaceName: place,
		Position:  pos,
		FetchedAt: f.now(),
	}, nil
}
