package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/i474232898/weather-clock/internal/prefs"
)

// Mode is the light/dark display preference.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// PreferenceKey is the storage key of the saved mode.
const PreferenceKey = "theme"

const lightModeClass = "light-mode"

// PreferenceStore persists string preferences. A missing key is reported as
// prefs.ErrNotFound.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// PreferenceView is what the toggle control and page chrome show for a mode.
type PreferenceView struct {
	Mode       Mode   `json:"mode"`
	Icon       string `json:"icon"`
	AriaLabel  string `json:"ariaLabel"`
	ThemeColor string `json:"themeColor"`
}

// ViewFor returns the control presentation for m.
func ViewFor(m Mode) PreferenceView {
	if m == ModeLight {
		return PreferenceView{Mode: ModeLight, Icon: "🌙", AriaLabel: "Switch to dark mode", ThemeColor: "#89d4f5"}
	}
	return PreferenceView{Mode: ModeDark, Icon: "☀️", AriaLabel: "Switch to light mode", ThemeColor: "#16213e"}
}

// ResolveMode picks the initial mode. A saved value wins; "light" means light
// and anything else means dark. Without one the system signal decides, and
// without that the mode is dark.
func ResolveMode(saved string, hasSaved bool, system Mode) Mode {
	if hasSaved {
		if saved == string(ModeLight) {
			return ModeLight
		}
		return ModeDark
	}
	if system == ModeLight {
		return ModeLight
	}
	return ModeDark
}

// Preferences drives the light/dark toggle.
type Preferences struct {
	board  *Board
	store  PreferenceStore
	system Mode
	logger *slog.Logger

	mu   sync.Mutex
	mode Mode
}

// NewPreferences creates the toggle. system is the platform's preferred
// scheme, or "" when there is none.
func NewPreferences(board *Board, store PreferenceStore, system Mode, logger *slog.Logger) *Preferences {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preferences{
		board:  board,
		store:  store,
		system: system,
		logger: logger.With("component", "preferences"),
		mode:   ModeDark,
	}
}

// Init restores the saved mode and applies it. Storage failures count as no
// saved value.
func (p *Preferences) Init(ctx context.Context) PreferenceView {
	saved, hasSaved := "", false
	if p.store != nil {
		v, err := p.store.Get(ctx, PreferenceKey)
		switch {
		case err == nil:
			saved, hasSaved = v, true
		case errors.Is(err, prefs.ErrNotFound):
		default:
			p.logger.Warn("could not read saved preference", "error", err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = ResolveMode(saved, hasSaved, p.system)
	return p.apply(p.mode)
}

// Toggle flips the mode, applies it and saves it.
func (p *Preferences) Toggle(ctx context.Context) PreferenceView {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := ModeLight
	if p.mode == ModeLight {
		next = ModeDark
	}
	p.mode = next
	view := p.apply(next)

	if p.store != nil {
		if err := p.store.Set(ctx, PreferenceKey, string(next)); err != nil {
			p.logger.Warn("could not save preference", "mode", next, "error", err)
		}
	}
	return view
}

// Mode returns the current mode.
func (p *Preferences) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

func (p *Preferences) apply(m Mode) PreferenceView {
	view := ViewFor(m)
	p.board.Update(func(s *State) {
		s.Body.Toggle(lightModeClass, m == ModeLight)
		s.Preference = view
	})
	return view
}
