package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 30*time.Second, cfg.Clock.Interval)
	require.Equal(t, 10*time.Minute, cfg.Weather.RefreshInterval)
	require.Equal(t, 10*time.Second, cfg.Geolocation.Timeout)
	require.Equal(t, 3*time.Second, cfg.Display.HideDelay)
	require.Zero(t, cfg.Weather.MaxRetries)
	require.Equal(t, 15*time.Second, cfg.HTTP.ClientTimeout)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := `
port: "9090"
weather:
  refreshInterval: 5m
geolocation:
  mode: static
  latitude: 38.72
  longitude: -9.14
display:
  locale: en-GB
  timezone: Europe/Lisbon
preferences:
  backend: memory
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("CLOCK_INTERVAL", "15s")
	t.Setenv("DISPLAY_SYSTEM_SCHEME", "light")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 5*time.Minute, cfg.Weather.RefreshInterval)
	require.Equal(t, 15*time.Second, cfg.Clock.Interval)
	require.Equal(t, "static", cfg.Geolocation.Mode)
	require.Equal(t, 38.72, cfg.Geolocation.Latitude)
	require.Equal(t, "light", cfg.Display.SystemScheme)
	require.Equal(t, "Europe/Lisbon", cfg.DisplayLocation().String())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("FETCH_INTERVAL", "soon")
	_, err = Load()
	require.ErrorContains(t, err, "invalid FETCH_INTERVAL")
}

func TestValidateRules(t *testing.T) {
	cfg := Default()
	cfg.Geolocation.Latitude = 95
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Geolocation.Mode = "address"
	require.Error(t, cfg.Validate())
	cfg.Geolocation.City = "Lisbon"
	require.ErrorContains(t, cfg.Validate(), "googleApiKey")
	cfg.Geocoding.GoogleAPIKey = "key"
	require.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Preferences.Backend = "valkey"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Display.Timezone = "Mars/Olympus"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Display.SystemScheme = "sepia"
	require.Error(t, cfg.Validate())
}
