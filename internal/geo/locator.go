// Package geo provides the sources the dashboard asks for its position.
package geo

import (
	"context"
	"errors"
	"fmt"

	"github.com/i474232898/weather-clock/internal/weather"
)

// Geolocation failure codes, numbered as browsers report them.
const (
	PermissionDenied    = 1
	PositionUnavailable = 2
	Timeout             = 3
)

// Locator yields the current position or a *PositionError.
type Locator interface {
	Locate(ctx context.Context) (weather.Coordinates, error)
}

// PositionError is a geolocation failure with its numeric code.
type PositionError struct {
	Code int
	Err  error
}

func (e *PositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation failed (code %d): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("geolocation failed (code %d)", e.Code)
}

func (e *PositionError) Unwrap() error { return e.Err }

// Message maps a geolocation failure to the text shown to the user.
func Message(err error) string {
	var pe *PositionError
	if !errors.As(err, &pe) {
		return "Location unavailable."
	}
	switch pe.Code {
	case PermissionDenied:
		return "Location access denied. Enable location to see weather."
	case Timeout:
		return "Location request timed out."
	default:
		return "Location unavailable."
	}
}

// AsPositionError normalizes any locator failure. Deadline expiry becomes
// Timeout and anything unrecognised becomes PositionUnavailable.
func AsPositionError(err error) *PositionError {
	var pe *PositionError
	if errors.As(err, &pe) {
		return pe
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &PositionError{Code: Timeout, Err: err}
	}
	return &PositionError{Code: PositionUnavailable, Err: err}
}

// StaticLocator always reports the same position.
type StaticLocator struct {
	Position weather.Coordinates
}

func (s StaticLocator) Locate(ctx context.Context) (weather.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return weather.Coordinates{}, AsPositionError(err)
	}
	return s.Position, nil
}
