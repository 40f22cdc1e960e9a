package providers

import (
	"context"
	"sync"

	"github.com/umahmood/haversine"

	"github.com/i474232898/weather-clock/internal/weather"
)

// CachedResolver reuses the last resolved place name while new positions stay
// within RadiusKm of the position it was resolved for.
type CachedResolver struct {
	next     weather.PlaceResolver
	radiusKm float64

	mu   sync.Mutex
	pos  weather.Coordinates
	name string
	ok   bool
}

// NewCachedResolver wraps next. A radius <= 0 returns next unchanged.
func NewCachedResolver(next weather.PlaceResolver, radiusKm float64) weather.PlaceResolver {
	if radiusKm <= 0 {
		return next
	}
	return &CachedResolver{next: next, radiusKm: radiusKm}
}

func (c *CachedResolver) Name() string {
	return c.next.Name() + "+cache"
}

func (c *CachedResolver) ResolvePlace(ctx context.Context, pos weather.Coordinates) (string, error) {
	c.mu.Lock()
	if c.ok && distanceKm(c.pos, pos) <= c.radiusKm {
		name := c.name
		c.mu.Unlock()
		return name, nil
	}
	c.mu.Unlock()

	name, err := c.next.ResolvePlace(ctx, pos)
	if err != nil {
		return "", err
	}
	if name != "" {
		c.mu.Lock()
		c.pos, c.name, c.ok = pos, name, true
		c.mu.Unlock()
	}
	return name, nil
}

func distanceKm(a, b weather.Coordinates) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Latitude, Lon: a.Longitude},
		haversine.Coord{Lat: b.Latitude, Lon: b.Longitude},
	)
	return km
}
