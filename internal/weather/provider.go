package weather

import (
	"context"
)

// ForecastProvider abstracts the forecast source (Open-Meteo in production).
type ForecastProvider interface {
	Name() string
	Forecast(ctx context.Context, pos Coordinates) (Forecast, error)
}

// PlaceResolver turns a position into a human-readable place name.
// An empty name with a nil error means the service had nothing to offer.
type PlaceResolver interface {
	Name() string
	ResolvePlace(ctx context.Context, pos Coordinates) (string, error)
}
