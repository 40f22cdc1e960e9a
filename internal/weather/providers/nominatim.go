package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-clock/internal/common"
	"github.com/i474232898/weather-clock/internal/weather"
)

const (
	// DefaultNominatimURL is the public OpenStreetMap reverse geocoding endpoint.
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/reverse"
	// DefaultUserAgent identifies the application to Nominatim, which requires one.
	DefaultUserAgent = "WeatherClockApp/1.0"
)

// NominatimResolver implements weather.PlaceResolver using OpenStreetMap Nominatim.
type NominatimResolver struct {
	name      string
	baseURL   string
	userAgent string
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

// NominatimOptions configures the resolver. Zero values fall back to defaults.
type NominatimOptions struct {
	BaseURL   string
	UserAgent string
	Breaker   BreakerConfig
}

func NewNominatimResolver(client *http.Client, opts NominatimOptions) *NominatimResolver {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultNominatimURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Breaker.Interval == 0 {
		opts.Breaker.Interval = time.Minute
	}
	if opts.Breaker.Timeout == 0 {
		opts.Breaker.Timeout = 2 * time.Minute
	}
	return &NominatimResolver{
		name:      "nominatim",
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		httpCfg:   HTTPClientConfig{Client: client},
		circuit:   newBreaker("nominatim", opts.Breaker),
	}
}

func (r *NominatimResolver) Name() string {
	return r.name
}

type nominatimResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		State   string `json:"state"`
	} `json:"address"`
}

// ResolvePlace returns the most specific populated name among city, town,
// village, county and state.
func (r *NominatimResolver) ResolvePlace(ctx context.Context, pos weather.Coordinates) (string, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", strconv.FormatFloat(pos.Latitude, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(pos.Longitude, 'f', -1, 64))
		values.Set("format", "json")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", r.baseURL, values.Encode()), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept-Language", "en")
		req.Header.Set("User-Agent", r.userAgent)
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, r.name, r.httpCfg, r.circuit, buildRequest)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &weather.MalformedResponseError{Service: r.name, Err: fmt.Errorf("decode payload: %w", err)}
	}

	a := payload.Address
	return common.FirstNonEmpty(a.City, a.Town, a.Village, a.County, a.State), nil
}
