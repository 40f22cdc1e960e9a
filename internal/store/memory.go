package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-clock/internal/dashboard"
	"github.com/i474232898/weather-clock/internal/weather"
)

var (
	// ErrNotFound is returned when no cycle has been recorded yet.
	ErrNotFound = errors.New("no load cycles recorded")
)

// CycleEntry is the stored form of a load cycle.
type CycleEntry struct {
	ID         string               `json:"id"`
	Sequence   uint64               `json:"sequence"`
	StartedAt  time.Time            `json:"startedAt"`
	FinishedAt time.Time            `json:"finishedAt"`
	DurationMS int64                `json:"durationMs"`
	Outcome    dashboard.Outcome    `json:"outcome"`
	Position   *weather.Coordinates `json:"position,omitempty"`
	Place      string               `json:"place,omitempty"`
	Theme      dashboard.Theme      `json:"theme,omitempty"`
	Message    string               `json:"message,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// CycleLog is a concurrency-safe in-memory history of load cycles.
type CycleLog struct {
	mu      sync.RWMutex
	entries []CycleEntry

	// retention configuration
	maxHistory int           // max number of entries kept
	maxAge     time.Duration // optional max age of entries
	now        func() time.Time
}

// NewCycleLog creates a CycleLog with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewCycleLog(maxHistory int, maxAge time.Duration) *CycleLog {
	return &CycleLog{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Record appends a finished cycle and enforces retention.
func (l *CycleLog) Record(r dashboard.CycleReport) {
	entry := CycleEntry{
		ID:         r.ID,
		Sequence:   r.Sequence,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		DurationMS: r.FinishedAt.Sub(r.StartedAt).Milliseconds(),
		Outcome:    r.Outcome,
		Position:   r.Position,
		Place:      r.Place,
		Theme:      r.Theme,
		Message:    r.Message,
	}
	if r.Err != nil {
		entry.Error = r.Err.Error()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)

	// Enforce retention by count.
	if l.maxHistory > 0 && len(l.entries) > l.maxHistory {
		over := len(l.entries) - l.maxHistory
		l.entries = l.entries[over:]
	}

	// Enforce retention by age, always keeping the newest entry.
	if l.maxAge > 0 {
		cutoff := l.now().Add(-l.maxAge)
		i := 0
		for ; i < len(l.entries)-1; i++ {
			if !l.entries[i].FinishedAt.Before(cutoff) {
				break
			}
		}
		l.entries = l.entries[i:]
	}
}

// Latest returns the most recent cycle.
func (l *CycleLog) Latest() (CycleEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return CycleEntry{}, ErrNotFound
	}
	return l.entries[len(l.entries)-1], nil
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (l *CycleLog) Recent(limit int) []CycleEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]CycleEntry, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}
