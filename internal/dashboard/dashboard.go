package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/i474232898/weather-clock/internal/geo"
)

// Options wires a Dashboard.
type Options struct {
	Locator       geo.Locator
	Fetcher       Fetcher
	Format        Format
	LocateTimeout time.Duration
	Recorder      CycleRecorder
	Preferences   PreferenceStore
	SystemMode    Mode
	HideDelay     time.Duration
	Logger        *slog.Logger
}

// Dashboard bundles the board with every component that writes to it.
type Dashboard struct {
	Board       *Board
	Clock       *ClockUpdater
	Loader      *Loader
	Preferences *Preferences
	Panel       *Panel
	Controls    *IdleControls
	Gestures    *Gestures

	strips map[string]*DragScroll
}

func New(opts Options) *Dashboard {
	board := NewBoard()
	gestures := &Gestures{}
	return &Dashboard{
		Board: board,
		Clock: NewClockUpdater(board, opts.Format),
		Loader: NewLoader(LoaderOptions{
			Board:         board,
			Locator:       opts.Locator,
			Fetcher:       opts.Fetcher,
			Format:        opts.Format,
			LocateTimeout: opts.LocateTimeout,
			Recorder:      opts.Recorder,
			Logger:        opts.Logger,
		}),
		Preferences: NewPreferences(board, opts.Preferences, opts.SystemMode, opts.Logger),
		Panel:       NewPanel(board, gestures),
		Controls:    NewIdleControls(board, opts.HideDelay),
		Gestures:    gestures,
		strips: map[string]*DragScroll{
			StripHourly: NewDragScroll(StripHourly, AxisX, board, gestures),
			StripDaily:  NewDragScroll(StripDaily, AxisX, board, gestures),
		},
	}
}

// Init renders the clock and restores the light/dark preference.
func (d *Dashboard) Init(ctx context.Context) {
	d.Clock.Tick()
	d.Preferences.Init(ctx)
}

// Strip returns the drag controller for name.
func (d *Dashboard) Strip(name string) (*DragScroll, error) {
	s, ok := d.strips[name]
	if !ok {
		return nil, fmt.Errorf("unknown strip %q", name)
	}
	return s, nil
}

// Snapshot refreshes time-based state and returns a copy of the board.
func (d *Dashboard) Snapshot() State {
	d.Controls.Refresh()
	return d.Board.Snapshot()
}
