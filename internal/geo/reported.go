package geo

import (
	"context"
	"sync"
	"time"

	"github.com/i474232898/weather-clock/internal/weather"
)

type report struct {
	pos weather.Coordinates
	err error
	at  time.Time
}

// ReportedLocator takes its position from display clients. Locate registers a
// pending request and blocks until a client reports a fix or a failure, or ctx
// ends. Clients see the request through Pending.
type ReportedLocator struct {
	maxAge time.Duration
	now    func() time.Time

	mu      sync.Mutex
	waiters map[chan report]struct{}
	last    *report
}

// NewReportedLocator creates a locator. A positive maxAge lets Locate answer
// from a fix reported within that window instead of waiting for a new one.
func NewReportedLocator(maxAge time.Duration) *ReportedLocator {
	return &ReportedLocator{
		maxAge:  maxAge,
		now:     time.Now,
		waiters: make(map[chan report]struct{}),
	}
}

func (l *ReportedLocator) Locate(ctx context.Context) (weather.Coordinates, error) {
	l.mu.Lock()
	if l.maxAge > 0 && l.last != nil && l.last.err == nil && l.now().Sub(l.last.at) <= l.maxAge {
		pos := l.last.pos
		l.mu.Unlock()
		return pos, nil
	}
	ch := make(chan report, 1)
	l.waiters[ch] = struct{}{}
	l.mu.Unlock()

	select {
	case r := <-ch:
		return r.pos, r.err
	case <-ctx.Done():
		l.mu.Lock()
		delete(l.waiters, ch)
		l.mu.Unlock()
		return weather.Coordinates{}, AsPositionError(ctx.Err())
	}
}

// Pending reports whether a Locate call is waiting for a client.
func (l *ReportedLocator) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.waiters) > 0
}

// Report delivers a fix to every waiting Locate call.
func (l *ReportedLocator) Report(pos weather.Coordinates) {
	l.deliver(report{pos: pos})
}

// ReportError delivers a failure with the client's error code.
func (l *ReportedLocator) ReportError(code int) {
	l.deliver(report{err: &PositionError{Code: code}})
}

func (l *ReportedLocator) deliver(r report) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r.at = l.now()
	l.last = &r
	for ch := range l.waiters {
		ch <- r
		delete(l.waiters, ch)
	}
}
