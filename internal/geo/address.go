package geo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-clock/internal/common"
	"github.com/i474232898/weather-clock/internal/weather"
)

// AddressLocator resolves a configured street address to coordinates through
// the Google Geocoding API. The first successful lookup is cached for the
// life of the process.
type AddressLocator struct {
	address geocoder.Address
	geocode func(geocoder.Address) (geocoder.Location, error)

	mu       sync.Mutex
	resolved *weather.Coordinates
}

// NewAddressLocator builds a locator for city/state/country.
func NewAddressLocator(apiKey, city, state, country string) *AddressLocator {
	common.SetGeocoderKey(apiKey)
	return &AddressLocator{
		address: geocoder.Address{City: city, State: state, Country: country},
		geocode: geocoder.Geocoding,
	}
}

func (l *AddressLocator) Locate(ctx context.Context) (weather.Coordinates, error) {
	l.mu.Lock()
	if l.resolved != nil {
		pos := *l.resolved
		l.mu.Unlock()
		return pos, nil
	}
	l.mu.Unlock()

	type outcome struct {
		loc geocoder.Location
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		loc, err := l.geocode(l.address)
		done <- outcome{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return weather.Coordinates{}, AsPositionError(ctx.Err())
	case out := <-done:
		if out.err != nil {
			return weather.Coordinates{}, &PositionError{Code: PositionUnavailable, Err: fmt.Errorf("geocode %s: %w", l.address.City, out.err)}
		}
		if out.loc.Latitude == 0 && out.loc.Longitude == 0 {
			return weather.Coordinates{}, &PositionError{Code: PositionUnavailable, Err: errors.New("geocoder returned no position")}
		}
		pos := weather.Coordinates{Latitude: out.loc.Latitude, Longitude: out.loc.Longitude}
		l.mu.Lock()
		l.resolved = &pos
		l.mu.Unlock()
		return pos, nil
	}
}
