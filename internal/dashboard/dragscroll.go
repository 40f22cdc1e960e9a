package dashboard

import (
	"math"
	"sync"
)

// DragThreshold is how far the pointer must travel on either axis before a
// press becomes a drag.
const DragThreshold = 4.0

// Strip names.
const (
	StripHourly = "hourly"
	StripDaily  = "daily"
)

// Axis is the scroll direction of a strip.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Gestures carries the "a drag just ended" signal from the strips to the
// click handlers that must ignore the click that follows it.
type Gestures struct {
	mu      sync.Mutex
	dragged bool
}

// MarkDrag records that a drag finished.
func (g *Gestures) MarkDrag() {
	g.mu.Lock()
	g.dragged = true
	g.mu.Unlock()
}

// ConsumeDrag reports whether a drag finished since the last call and clears it.
func (g *Gestures) ConsumeDrag() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	d := g.dragged
	g.dragged = false
	return d
}

// MoveResult is the outcome of a pointer move.
type MoveResult struct {
	Dragging       bool    `json:"dragging"`
	Offset         float64 `json:"offset"`
	PreventDefault bool    `json:"preventDefault"`
}

// DragScroll turns primary-button drags on a strip into scroll offsets.
type DragScroll struct {
	name     string
	axis     Axis
	board    *Board
	gestures *Gestures

	mu          sync.Mutex
	down        bool
	dragged     bool
	startX      float64
	startY      float64
	startOffset float64
}

func NewDragScroll(name string, axis Axis, board *Board, gestures *Gestures) *DragScroll {
	return &DragScroll{name: name, axis: axis, board: board, gestures: gestures}
}

func (d *DragScroll) Name() string { return d.name }

// Press starts tracking at (x, y) with the strip scrolled to offset. Only the
// primary button (0) is accepted.
func (d *DragScroll) Press(button int, x, y, offset float64) bool {
	if button != 0 {
		return false
	}
	d.mu.Lock()
	d.down = true
	d.dragged = false
	d.startX, d.startY = x, y
	d.startOffset = offset
	d.mu.Unlock()

	d.board.Update(func(s *State) {
		s.Strips[d.name] = StripState{Offset: offset, Dragging: true}
	})
	return true
}

// Move scrolls the strip once the pointer has travelled DragThreshold on
// either axis. Moves below the threshold before that change nothing.
func (d *DragScroll) Move(x, y float64) MoveResult {
	d.mu.Lock()
	if !d.down {
		d.mu.Unlock()
		return MoveResult{}
	}
	dx, dy := x-d.startX, y-d.startY
	if !d.dragged && math.Abs(dx) < DragThreshold && math.Abs(dy) < DragThreshold {
		d.mu.Unlock()
		return MoveResult{}
	}
	d.dragged = true
	delta := dx
	if d.axis == AxisY {
		delta = dy
	}
	offset := math.Max(0, d.startOffset-delta)
	d.mu.Unlock()

	d.board.Update(func(s *State) {
		s.Strips[d.name] = StripState{Offset: offset, Dragging: true}
	})
	return MoveResult{Dragging: true, Offset: offset, PreventDefault: true}
}

// Release ends tracking. It reports whether the press turned into a drag, in
// which case the next summary click is swallowed.
func (d *DragScroll) Release() bool {
	d.mu.Lock()
	if !d.down {
		d.mu.Unlock()
		return false
	}
	d.down = false
	dragged := d.dragged
	d.mu.Unlock()

	d.board.Update(func(s *State) {
		st := s.Strips[d.name]
		st.Dragging = false
		s.Strips[d.name] = st
	})
	if dragged && d.gestures != nil {
		d.gestures.MarkDrag()
	}
	return dragged
}
