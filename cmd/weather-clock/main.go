package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-clock/internal/api/http"
	"github.com/i474232898/weather-clock/internal/config"
	"github.com/i474232898/weather-clock/internal/dashboard"
	"github.com/i474232898/weather-clock/internal/geo"
	"github.com/i474232898/weather-clock/internal/logger"
	"github.com/i474232898/weather-clock/internal/prefs"
	"github.com/i474232898/weather-clock/internal/scheduler"
	"github.com/i474232898/weather-clock/internal/store"
	"github.com/i474232898/weather-clock/internal/weather"
	"github.com/i474232898/weather-clock/internal/weather/providers"
)

func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("weather clock failed", "error", err)
		os.Exit(1)
	}
}

// run wires and serves the dashboard until a termination signal arrives.
func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTP.ClientTimeout,
	}

	forecast := providers.NewOpenMeteoProvider(httpClient, providers.OpenMeteoOptions{
		BaseURL: cfg.Weather.ForecastURL,
		Backoff: providers.BackoffConfig{
			MaxRetries:      cfg.Weather.MaxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		Breaker: providers.BreakerConfig{ConsecutiveFailures: cfg.Weather.BreakerFailures},
	})

	var places weather.PlaceResolver
	if cfg.Geocoding.GoogleAPIKey != "" {
		places = providers.NewGoogleResolver(cfg.Geocoding.GoogleAPIKey)
	} else {
		places = providers.NewNominatimResolver(httpClient, providers.NominatimOptions{
			BaseURL:   cfg.Geocoding.NominatimURL,
			UserAgent: cfg.Geocoding.UserAgent,
		})
	}
	places = providers.NewCachedResolver(places, cfg.Geocoding.CacheRadiusKm)

	fetcher := weather.NewFetcher(forecast, places, log)

	locator, reported := newLocator(cfg)

	prefStore, err := newPreferenceStore(cfg)
	if err != nil {
		return fmt.Errorf("open %s preference store: %w", cfg.Preferences.Backend, err)
	}
	defer prefStore.Close()

	format, err := dashboard.NewFormat(cfg.Display.Locale, cfg.DisplayLocation())
	if err != nil {
		return fmt.Errorf("display locale: %w", err)
	}

	cycles := store.NewCycleLog(cfg.Store.MaxHistory, cfg.Store.MaxAge)

	dash := dashboard.New(dashboard.Options{
		Locator:       locator,
		Fetcher:       fetcher,
		Format:        format,
		LocateTimeout: cfg.Geolocation.Timeout,
		Recorder:      cycles,
		Preferences:   prefStore,
		SystemMode:    dashboard.Mode(cfg.Display.SystemScheme),
		HideDelay:     cfg.Display.HideDelay,
		Logger:        log,
	})
	dash.Init(context.Background())

	sched := scheduler.New(log,
		scheduler.Job{
			Name:     "clock",
			Interval: cfg.Clock.Interval,
			Run:      func(context.Context) { dash.Clock.Tick() },
		},
		scheduler.Job{
			Name:     "weather",
			Interval: cfg.Weather.RefreshInterval,
			Run:      func(ctx context.Context) { dash.Loader.Load(ctx) },
		},
	)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-clock",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-clock",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Dashboard: dash,
		Reported:  reported,
		Cycles:    cycles,
		Refresh:   func() { go dash.Loader.Load(context.Background()) },
		Logger:    log,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()
	log.Info("weather clock started", "port", cfg.Port, "geolocation", cfg.Geolocation.Mode, "preferences", cfg.Preferences.Backend)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	return nil
}

// newLocator returns the configured position source. The second result is
// non-nil only when positions come from display clients.
func newLocator(cfg *config.AppConfig) (geo.Locator, *geo.ReportedLocator) {
	g := cfg.Geolocation
	switch g.Mode {
	case "static":
		return geo.StaticLocator{Position: weather.Coordinates{Latitude: g.Latitude, Longitude: g.Longitude}}, nil
	case "address":
		return geo.NewAddressLocator(cfg.Geocoding.GoogleAPIKey, g.City, g.State, g.Country), nil
	default:
		r := geo.NewReportedLocator(g.MaxAge)
		return r, r
	}
}

func newPreferenceStore(cfg *config.AppConfig) (prefs.Store, error) {
	p := cfg.Preferences
	switch p.Backend {
	case "memory":
		return prefs.NewMemoryStore(), nil
	case "sqlite":
		return prefs.NewSQLite(p.SQLitePath)
	case "valkey":
		return prefs.NewValkeyStore(p.ValkeyAddr, p.ValkeyPassword, p.ValkeyPrefix)
	default:
		return nil, fmt.Errorf("unknown preference backend %q", p.Backend)
	}
}

