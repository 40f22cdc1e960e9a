package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-clock/internal/geo"
	"github.com/i474232898/weather-clock/internal/weather"
)

// Status texts shown during a load cycle.
const (
	StatusDetecting = "Detecting location…"
	StatusLoading   = "Loading weather…"
	StatusFailed    = "Unable to load weather data."
)

// DefaultLocateTimeout bounds the wait for a position.
const DefaultLocateTimeout = 10 * time.Second

// Fetcher is the weather source the loader drives.
type Fetcher interface {
	Fetch(ctx context.Context, pos weather.Coordinates) (weather.Result, error)
}

// Outcome classifies how a cycle ended.
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeLocationError Outcome = "location_error"
	OutcomeFetchError    Outcome = "fetch_error"
	OutcomeSuperseded    Outcome = "superseded"
)

// CycleReport describes one finished load cycle.
type CycleReport struct {
	ID         string
	Sequence   uint64
	StartedAt  time.Time
	FinishedAt time.Time
	Outcome    Outcome
	Position   *weather.Coordinates
	Place      string
	Theme      Theme
	Message    string
	Err        error
}

// CycleRecorder receives every cycle report.
type CycleRecorder interface {
	Record(r CycleReport)
}

// LoaderOptions wires a Loader.
type LoaderOptions struct {
	Board         *Board
	Locator       geo.Locator
	Fetcher       Fetcher
	Format        Format
	LocateTimeout time.Duration
	Recorder      CycleRecorder
	Logger        *slog.Logger
}

// Loader runs load cycles: locate, fetch, render, theme.
type Loader struct {
	board         *Board
	locator       geo.Locator
	fetcher       Fetcher
	format        Format
	locateTimeout time.Duration
	recorder      CycleRecorder
	logger        *slog.Logger
	now           func() time.Time
}

func NewLoader(opts LoaderOptions) *Loader {
	if opts.LocateTimeout <= 0 {
		opts.LocateTimeout = DefaultLocateTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Loader{
		board:         opts.Board,
		locator:       opts.Locator,
		fetcher:       opts.Fetcher,
		format:        opts.Format,
		locateTimeout: opts.LocateTimeout,
		recorder:      opts.Recorder,
		logger:        opts.Logger.With("component", "loader"),
		now:           time.Now,
	}
}

// Load runs one cycle. Failures end up on the status line; the returned
// report says how the cycle ended. A cycle overtaken by a newer one stops
// writing to the board.
func (l *Loader) Load(ctx context.Context) (report CycleReport) {
	seq := l.board.BeginCycle()
	report = CycleReport{
		ID:        uuid.NewString(),
		Sequence:  seq,
		StartedAt: l.now(),
	}
	logger := l.logger.With("cycle", report.ID, "seq", seq)
	defer func() {
		report.FinishedAt = l.now()
		if l.recorder != nil {
			l.recorder.Record(report)
		}
	}()

	l.setStatus(seq, StatusDetecting, false)

	pos, err := l.locate(ctx)
	if err != nil {
		pe := geo.AsPositionError(err)
		report.Outcome = OutcomeLocationError
		report.Err = pe
		report.Message = geo.Message(pe)
		logger.Warn("geolocation failed", "code", pe.Code, "error", pe)
		if !l.setStatus(seq, report.Message, true) {
			report.Outcome = OutcomeSuperseded
		}
		return report
	}
	report.Position = &pos

	if !l.setStatus(seq, StatusLoading, false) {
		report.Outcome = OutcomeSuperseded
		return report
	}

	res, err := l.fetcher.Fetch(ctx, pos)
	if err != nil {
		report.Outcome = OutcomeFetchError
		report.Err = err
		report.Message = StatusFailed
		logger.Error("weather load failed", "error", err)
		if !l.setStatus(seq, StatusFailed, true) {
			report.Outcome = OutcomeSuperseded
		}
		return report
	}

	view := Render(res, l.now(), l.format)
	theme := SelectTheme(view.Current.Category, view.Current.IsDay)

	applied := l.board.UpdateCycle(seq, func(s *State) {
		s.Weather = &view
		s.Theme = theme
		ApplyTheme(&s.Body, theme)
		s.Status = Status{}
	})
	if !applied {
		report.Outcome = OutcomeSuperseded
		logger.Info("discarding result of superseded cycle")
		return report
	}

	report.Outcome = OutcomeSuccess
	report.Place = view.Place
	report.Theme = theme
	logger.Info("weather updated", "place", view.Place, "theme", theme, "hourly", len(view.Hourly), "daily", len(view.Daily))
	return report
}

func (l *Loader) locate(ctx context.Context) (weather.Coordinates, error) {
	if l.locator == nil {
		return weather.Coordinates{}, &geo.PositionError{Code: geo.PositionUnavailable}
	}
	ctx, cancel := context.WithTimeout(ctx, l.locateTimeout)
	defer cancel()
	return l.locator.Locate(ctx)
}

func (l *Loader) setStatus(seq uint64, text string, isError bool) bool {
	return l.board.UpdateCycle(seq, func(s *State) {
		s.Status = Status{Text: text, Error: isError}
	})
}
