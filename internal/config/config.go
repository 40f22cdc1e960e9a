package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// AppConfig is the runtime configuration of the weather clock.
type AppConfig struct {
	Port        string            `yaml:"port" validate:"required"`
	HTTP        HTTPConfig        `yaml:"http"`
	Clock       ClockConfig       `yaml:"clock"`
	Weather     WeatherConfig     `yaml:"weather"`
	Geocoding   GeocodingConfig   `yaml:"geocoding"`
	Geolocation GeolocationConfig `yaml:"geolocation"`
	Display     DisplayConfig     `yaml:"display"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Store       StoreConfig       `yaml:"store"`
}

type HTTPConfig struct {
	// ClientTimeout bounds every outbound request.
	ClientTimeout time.Duration `yaml:"clientTimeout" validate:"min=1s"`
}

type ClockConfig struct {
	Interval time.Duration `yaml:"interval" validate:"min=1s"`
}

type WeatherConfig struct {
	RefreshInterval time.Duration `yaml:"refreshInterval" validate:"min=1s"`
	ForecastURL     string        `yaml:"forecastUrl" validate:"required,url"`
	// MaxRetries is zero by default: a failed cycle waits for the next one.
	MaxRetries      int    `yaml:"maxRetries" validate:"gte=0,lte=5"`
	BreakerFailures uint32 `yaml:"breakerFailures"`
}

type GeocodingConfig struct {
	NominatimURL  string  `yaml:"nominatimUrl" validate:"required,url"`
	UserAgent     string  `yaml:"userAgent" validate:"required"`
	GoogleAPIKey  string  `yaml:"googleApiKey"`
	CacheRadiusKm float64 `yaml:"cacheRadiusKm" validate:"gte=0"`
}

// GeolocationConfig selects where positions come from: "reported" waits for
// display clients, "static" uses Latitude/Longitude, "address" geocodes
// City/State/Country.
type GeolocationConfig struct {
	Mode      string        `yaml:"mode" validate:"oneof=reported static address"`
	Timeout   time.Duration `yaml:"timeout" validate:"min=1ms"`
	MaxAge    time.Duration `yaml:"maxAge" validate:"gte=0"`
	Latitude  float64       `yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64       `yaml:"longitude" validate:"gte=-180,lte=180"`
	City      string        `yaml:"city" validate:"required_if=Mode address"`
	State     string        `yaml:"state"`
	Country   string        `yaml:"country"`
}

type DisplayConfig struct {
	Locale   string `yaml:"locale"`
	Timezone string `yaml:"timezone"`
	// SystemScheme stands in for the platform's preferred colour scheme.
	SystemScheme string        `yaml:"systemScheme" validate:"omitempty,oneof=light dark"`
	HideDelay    time.Duration `yaml:"hideDelay" validate:"min=1ms"`
}

type PreferencesConfig struct {
	Backend        string `yaml:"backend" validate:"oneof=memory sqlite valkey"`
	SQLitePath     string `yaml:"sqlitePath" validate:"required_if=Backend sqlite"`
	ValkeyAddr     string `yaml:"valkeyAddr" validate:"required_if=Backend valkey"`
	ValkeyPassword string `yaml:"valkeyPassword"`
	ValkeyPrefix   string `yaml:"valkeyPrefix"`
}

// StoreConfig sets retention of the in-memory cycle log.
type StoreConfig struct {
	MaxHistory int           `yaml:"maxHistory" validate:"gte=0"` // 0 = unlimited
	MaxAge     time.Duration `yaml:"maxAge" validate:"gte=0"`     // 0 = unlimited
}

var validate = validator.New()

// Load reads .env, then the YAML file (CONFIG_PATH or configs/config.yaml if
// present), then environment overrides, and validates the result.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *AppConfig {
	return &AppConfig{
		Port: "8080",
		HTTP: HTTPConfig{ClientTimeout: 15 * time.Second},
		Clock: ClockConfig{
			Interval: 30 * time.Second,
		},
		Weather: WeatherConfig{
			RefreshInterval: 10 * time.Minute,
			ForecastURL:     "https://api.open-meteo.com/v1/forecast",
			BreakerFailures: 5,
		},
		Geocoding: GeocodingConfig{
			NominatimURL: "https://nominatim.openstreetmap.org/reverse",
			UserAgent:    "WeatherClockApp/1.0",
		},
		Geolocation: GeolocationConfig{
			Mode:    "reported",
			Timeout: 10 * time.Second,
		},
		Display: DisplayConfig{
			Locale:    "en-US",
			HideDelay: 3 * time.Second,
		},
		Preferences: PreferencesConfig{
			Backend:    "sqlite",
			SQLitePath: "weather-clock.db",
		},
		Store: StoreConfig{
			MaxHistory: 144, // a day of 10-minute cycles
			MaxAge:     24 * time.Hour,
		},
	}
}

// Validate checks field constraints and cross-field rules.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Geolocation.Mode == "address" && c.Geocoding.GoogleAPIKey == "" {
		return errors.New("geolocation mode address requires geocoding.googleApiKey")
	}
	if c.Display.Timezone != "" {
		if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
			return fmt.Errorf("invalid display timezone: %w", err)
		}
	}
	return nil
}

// DisplayLocation returns the zone the clock is shown in.
func (c *AppConfig) DisplayLocation() *time.Location {
	if c.Display.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func hydrateFromFile(cfg *AppConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *AppConfig) error {
	cfg.Port = getenvDefault("PORT", cfg.Port)
	cfg.Weather.ForecastURL = getenvDefault("OPEN_METEO_URL", cfg.Weather.ForecastURL)
	cfg.Geocoding.NominatimURL = getenvDefault("NOMINATIM_URL", cfg.Geocoding.NominatimURL)
	cfg.Geocoding.UserAgent = getenvDefault("NOMINATIM_USER_AGENT", cfg.Geocoding.UserAgent)
	cfg.Geocoding.GoogleAPIKey = getenvDefault("GOOGLE_GEOCODING_API_KEY", cfg.Geocoding.GoogleAPIKey)
	cfg.Geolocation.Mode = getenvDefault("GEOLOCATION_MODE", cfg.Geolocation.Mode)
	cfg.Geolocation.City = getenvDefault("WEATHER_LOCATION_CITY", cfg.Geolocation.City)
	cfg.Geolocation.State = getenvDefault("WEATHER_LOCATION_STATE", cfg.Geolocation.State)
	cfg.Geolocation.Country = getenvDefault("WEATHER_LOCATION_COUNTRY", cfg.Geolocation.Country)
	cfg.Display.Locale = getenvDefault("DISPLAY_LOCALE", cfg.Display.Locale)
	cfg.Display.Timezone = getenvDefault("DISPLAY_TIMEZONE", cfg.Display.Timezone)
	cfg.Display.SystemScheme = getenvDefault("DISPLAY_SYSTEM_SCHEME", cfg.Display.SystemScheme)
	cfg.Preferences.Backend = getenvDefault("PREFERENCES_BACKEND", cfg.Preferences.Backend)
	cfg.Preferences.SQLitePath = getenvDefault("PREFERENCES_SQLITE_PATH", cfg.Preferences.SQLitePath)
	cfg.Preferences.ValkeyAddr = getenvDefault("VALKEY_ADDR", cfg.Preferences.ValkeyAddr)
	cfg.Preferences.ValkeyPassword = getenvDefault("VALKEY_PASSWORD", cfg.Preferences.ValkeyPassword)
	cfg.Preferences.ValkeyPrefix = getenvDefault("VALKEY_PREFIX", cfg.Preferences.ValkeyPrefix)
	cfg.Weather.MaxRetries = getenvInt("WEATHER_MAX_RETRIES", cfg.Weather.MaxRetries)
	cfg.Store.MaxHistory = getenvInt("STORE_MAX_HISTORY", cfg.Store.MaxHistory)

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"HTTP_CLIENT_TIMEOUT", &cfg.HTTP.ClientTimeout},
		{"CLOCK_INTERVAL", &cfg.Clock.Interval},
		{"FETCH_INTERVAL", &cfg.Weather.RefreshInterval},
		{"GEOLOCATION_TIMEOUT", &cfg.Geolocation.Timeout},
		{"GEOLOCATION_MAX_AGE", &cfg.Geolocation.MaxAge},
		{"CONTROLS_HIDE_DELAY", &cfg.Display.HideDelay},
		{"STORE_MAX_AGE", &cfg.Store.MaxAge},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"WEATHER_LOCATION_LAT", &cfg.Geolocation.Latitude},
		{"WEATHER_LOCATION_LON", &cfg.Geolocation.Longitude},
		{"GEOCODING_CACHE_RADIUS_KM", &cfg.Geocoding.CacheRadiusKm},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = parsed
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
