package dashboard

import (
	"sync"
	"time"
)

// DefaultHideDelay is how long the controls stay up after the last activity.
const DefaultHideDelay = 3 * time.Second

const cursorHiddenClass = "cursor-hidden"

// ControlsView reports whether the mode toggle and the cursor are shown.
type ControlsView struct {
	Visible      bool `json:"visible"`
	CursorHidden bool `json:"cursorHidden"`
}

// IdleControls hides the mode toggle and the cursor after a quiet period.
// Deadlines are evaluated lazily by Refresh.
type IdleControls struct {
	board *Board
	delay time.Duration
	now   func() time.Time

	mu          sync.Mutex
	armed       bool
	deadline    time.Time
	hidesCursor bool
	hovering    bool
	view        ControlsView
}

func NewIdleControls(board *Board, delay time.Duration) *IdleControls {
	if delay <= 0 {
		delay = DefaultHideDelay
	}
	c := &IdleControls{board: board, delay: delay, now: time.Now}
	c.Activity()
	return c
}

// Activity shows the controls and restarts the hide countdown.
func (c *IdleControls) Activity() ControlsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = ControlsView{Visible: true}
	if c.hovering {
		c.armed = false
	} else {
		c.arm(true)
	}
	return c.publish()
}

// Hover records the pointer entering (true) or leaving (false) the toggle.
// While hovered the toggle never hides; leaving restarts the countdown for
// the toggle only.
func (c *IdleControls) Hover(inside bool) ControlsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hovering = inside
	if inside {
		c.armed = false
	} else {
		c.arm(false)
	}
	return c.publish()
}

// Refresh applies an expired countdown.
func (c *IdleControls) Refresh() ControlsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.armed && !c.now().Before(c.deadline) {
		c.armed = false
		c.view.Visible = false
		if c.hidesCursor {
			c.view.CursorHidden = true
		}
	}
	return c.publish()
}

func (c *IdleControls) arm(hidesCursor bool) {
	c.armed = true
	c.deadline = c.now().Add(c.delay)
	c.hidesCursor = hidesCursor
}

func (c *IdleControls) publish() ControlsView {
	v := c.view
	c.board.Update(func(s *State) {
		s.Controls = v
		s.Body.Toggle(cursorHiddenClass, v.CursorHidden)
	})
	return v
}
