// Package dashboard holds the display state of the weather clock and the
// components that mutate it.
package dashboard

import (
	"encoding/json"
	"slices"
	"sync"
)

// Status is the weather status line. Error marks it as an error message.
type Status struct {
	Text  string `json:"text"`
	Error bool   `json:"error"`
}

// ClassList is an ordered set of CSS class names. Mutators take a pointer.
// Readers and MarshalJSON take a value so a ClassList embedded in a State
// passed by value still encodes as a JSON array.
type ClassList struct {
	names []string
}

// Add appends name unless it is already present.
func (c *ClassList) Add(name string) {
	if !c.Contains(name) {
		c.names = append(c.names, name)
	}
}

// Remove drops every listed name.
func (c *ClassList) Remove(names ...string) {
	c.names = slices.DeleteFunc(c.names, func(n string) bool {
		return slices.Contains(names, n)
	})
}

// Toggle adds name when on is true and removes it otherwise.
func (c *ClassList) Toggle(name string, on bool) {
	if on {
		c.Add(name)
		return
	}
	c.Remove(name)
}

// Contains reports whether name is present.
func (c ClassList) Contains(name string) bool {
	return slices.Contains(c.names, name)
}

// List returns a copy of the names in insertion order.
func (c ClassList) List() []string {
	return slices.Clone(c.names)
}

func (c ClassList) MarshalJSON() ([]byte, error) {
	if c.names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.names)
}

// StripState is the scroll position of one forecast strip.
type StripState struct {
	Offset   float64 `json:"offset"`
	Dragging bool    `json:"dragging"`
}

// PanelState reports whether the detail panel and its backdrop are shown.
type PanelState struct {
	Expanded        bool `json:"expanded"`
	BackdropVisible bool `json:"backdropVisible"`
}

// State is a point-in-time copy of everything the page displays.
type State struct {
	Status     Status                `json:"status"`
	Clock      ClockView             `json:"clock"`
	Weather    *WeatherView          `json:"weather,omitempty"`
	Theme      Theme                 `json:"theme,omitempty"`
	Body       ClassList             `json:"bodyClasses"`
	Preference PreferenceView        `json:"preference"`
	Panel      PanelState            `json:"panel"`
	Strips     map[string]StripState `json:"strips"`
	Controls   ControlsView          `json:"controls"`
	Cycle      uint64                `json:"cycle"`
	// Revision counts writes made by load cycles.
	Revision   uint64                `json:"revision"`
}

// BodyClasses returns the classes applied to the page body.
func (s State) BodyClasses() []string {
	return s.Body.List()
}

// Board owns the display state. All access goes through its methods.
type Board struct {
	mu    sync.RWMutex
	state State
	cycle uint64
}

func NewBoard() *Board {
	return &Board{
		state: State{
			Strips: map[string]StripState{
				StripHourly: {},
				StripDaily:  {},
			},
		},
	}
}

// Snapshot returns a deep copy of the current state.
func (b *Board) Snapshot() State {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := b.state
	s.Body = ClassList{names: b.state.Body.List()}
	s.Strips = make(map[string]StripState, len(b.state.Strips))
	for k, v := range b.state.Strips {
		s.Strips[k] = v
	}
	if b.state.Weather != nil {
		w := *b.state.Weather
		w.Hourly = slices.Clone(w.Hourly)
		w.Daily = slices.Clone(w.Daily)
		s.Weather = &w
	}
	return s
}

// Update applies fn to the state under the write lock.
func (b *Board) Update(fn func(*State)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.state)
}

// BeginCycle starts a new load cycle and returns its sequence number.
// Earlier cycles lose the right to write.
func (b *Board) BeginCycle() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cycle++
	b.state.Cycle = b.cycle
	return b.cycle
}

// UpdateCycle applies fn only if seq is still the newest cycle. It reports
// whether the write happened.
func (b *Board) UpdateCycle(seq uint64, fn func(*State)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.cycle {
		return false
	}
	fn(&b.state)
	b.state.Revision++
	return true
}
