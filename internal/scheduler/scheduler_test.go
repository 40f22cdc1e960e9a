package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsJobsImmediately(t *testing.T) {
	var clock, weather atomic.Int32
	s := New(slog.New(slog.NewTextHandler(io.Discard, nil)),
		Job{Name: "clock", Interval: time.Hour, Run: func(context.Context) { clock.Add(1) }},
		Job{Name: "weather", Interval: time.Hour, Timeout: time.Second, Run: func(ctx context.Context) {
			if _, ok := ctx.Deadline(); ok {
				weather.Add(1)
			}
		}},
	)
	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return clock.Load() == 1 && weather.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerWithoutJobs(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Start())
	s.Stop()
}
