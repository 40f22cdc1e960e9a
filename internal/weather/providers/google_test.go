package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-clock/internal/weather"
)

func TestGoogleResolverPicksCityThenCounty(t *testing.T) {
	var got geocoder.Location
	r := &GoogleResolver{reverse: func(loc geocoder.Location) ([]geocoder.Address, error) {
		got = loc
		return []geocoder.Address{{County: "Cascais", State: "Lisboa"}}, nil
	}}

	name, err := r.ResolvePlace(context.Background(), weather.Coordinates{Latitude: 38.7, Longitude: -9.4})
	require.NoError(t, err)
	require.Equal(t, "Cascais", name)
	require.Equal(t, 38.7, got.Latitude)
}

func TestGoogleResolverErrors(t *testing.T) {
	r := &GoogleResolver{reverse: func(geocoder.Location) ([]geocoder.Address, error) {
		return nil, errors.New("REQUEST_DENIED")
	}}
	_, err := r.ResolvePlace(context.Background(), weather.Coordinates{})
	var ne *weather.NetworkError
	require.ErrorAs(t, err, &ne)

	r = &GoogleResolver{reverse: func(geocoder.Location) ([]geocoder.Address, error) {
		return nil, nil
	}}
	_, err = r.ResolvePlace(context.Background(), weather.Coordinates{})
	var me *weather.MalformedResponseError
	require.ErrorAs(t, err, &me)
}

func TestGoogleResolverHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	r := &GoogleResolver{reverse: func(geocoder.Location) ([]geocoder.Address, error) {
		<-release
		return nil, nil
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := r.ResolvePlace(ctx, weather.Coordinates{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
