package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIdleControlsHideAfterDelay(t *testing.T) {
	board := NewBoard()
	clock := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	c := NewIdleControls(board, 3*time.Second)
	c.now = func() time.Time { return clock }
	c.Activity()

	clock = clock.Add(2 * time.Second)
	require.True(t, c.Refresh().Visible)

	clock = clock.Add(time.Second)
	v := c.Refresh()
	require.False(t, v.Visible)
	require.True(t, v.CursorHidden)
	require.Contains(t, board.Snapshot().BodyClasses(), "cursor-hidden")

	v = c.Activity()
	require.True(t, v.Visible)
	require.False(t, v.CursorHidden)
	require.NotContains(t, board.Snapshot().BodyClasses(), "cursor-hidden")
}

func TestIdleControlsStayWhileHovered(t *testing.T) {
	board := NewBoard()
	clock := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	c := NewIdleControls(board, 3*time.Second)
	c.now = func() time.Time { return clock }
	c.Activity()

	c.Hover(true)
	clock = clock.Add(time.Minute)
	require.True(t, c.Refresh().Visible)

	c.Hover(false)
	clock = clock.Add(3 * time.Second)
	v := c.Refresh()
	require.False(t, v.Visible)
	require.False(t, v.CursorHidden)
}
