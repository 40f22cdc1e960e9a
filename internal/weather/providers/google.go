package providers

import (
	"context"
	"errors"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-clock/internal/common"
	"github.com/i474232898/weather-clock/internal/weather"
)

// GoogleResolver implements weather.PlaceResolver using the Google Geocoding API.
type GoogleResolver struct {
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

// NewGoogleResolver configures the geocoder package with apiKey.
func NewGoogleResolver(apiKey string) *GoogleResolver {
	common.SetGeocoderKey(apiKey)
	return &GoogleResolver{reverse: geocoder.GeocodingReverse}
}

func (r *GoogleResolver) Name() string {
	return "google"
}

func (r *GoogleResolver) ResolvePlace(ctx context.Context, pos weather.Coordinates) (string, error) {
	type outcome struct {
		addresses []geocoder.Address
		err       error
	}
	done := make(chan outcome, 1)

	// geocoder has no context support; abandon the call when ctx ends.
	go func() {
		addrs, err := r.reverse(geocoder.Location{Latitude: pos.Latitude, Longitude: pos.Longitude})
		done <- outcome{addresses: addrs, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", &weather.NetworkError{Service: r.Name(), Err: ctx.Err()}
	case out := <-done:
		if out.err != nil {
			return "", &weather.NetworkError{Service: r.Name(), Err: out.err}
		}
		if len(out.addresses) == 0 {
			return "", &weather.MalformedResponseError{Service: r.Name(), Err: errors.New("no results")}
		}
		a := out.addresses[0]
		return common.FirstNonEmpty(a.City, a.County, a.State), nil
	}
}
