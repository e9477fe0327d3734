// Package center computes the one-time pan offset that centers a diagram's
// root in its container.
//
// A [Controller] is a two-state machine. It starts [Unmeasured] on every
// mount. Hosts call [Controller.Pass] after each layout; the first pass that
// sees an attached container with a non-zero size commits the offset
// {width/2, 20} and moves to [Centered]. Every later pass is a no-op, so the
// offset stays frozen even when the container is resized.
package center

import (
	"fmt"
	"sync"
)

// TopInset keeps the root node off the container's top edge.
const TopInset = 20.0

// Offset is a pan translation in container pixels.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State is the lifecycle state of a Controller.
type State int

const (
	Unmeasured State = iota
	Centered
)

func (s State) String() string {
	if s == Centered {
		return "centered"
	}
	return "unmeasured"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "unmeasured":
		*s = Unmeasured
	case "centered":
		*s = Centered
	default:
		return fmt.Errorf("unknown centering state %q", text)
	}
	return nil
}

// Measurer reports a container's rendered box. ok is false while the
// container is not attached.
type Measurer interface {
	Measure() (width, height float64, ok bool)
}

// Box is a Measurer with a fixed, already-known size.
type Box struct {
	Width, Height float64
}

// Measure implements Measurer.
func (b Box) Measure() (float64, float64, bool) {
	return b.Width, b.Height, true
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func() (width, height float64, ok bool)

// Measure implements Measurer.
func (f MeasureFunc) Measure() (float64, float64, bool) {
	return f()
}

// Controller owns the offset of a single mounted diagram.
// The zero value is an unmeasured controller ready to use.
type Controller struct {
	mu     sync.Mutex
	offset Offset
	state  State

	// OnCentered, if set, is called once with the committed offset.
	OnCentered func(Offset)
}

// Pass runs one post-layout measurement. It returns the offset and true once
// the controller is centered, and the zero offset and false otherwise.
func (c *Controller) Pass(m Measurer) (Offset, bool) {
	c.mu.Lock()
	if c.state == Centered {
		defer c.mu.Unlock()
		return c.offset, true
	}
	if m == nil {
		c.mu.Unlock()
		return Offset{}, false
	}
	w, h, ok := m.Measure()
	if !ok || !(w > 0) || !(h > 0) {
		c.mu.Unlock()
		return Offset{}, false
	}

	c.offset = Offset{X: w / 2, Y: TopInset}
	c.state = Centered
	off, hook := c.offset, c.OnCentered
	c.mu.Unlock()

	if hook != nil {
		hook(off)
	}
	return off, true
}

// Offset returns the committed offset and whether one has been committed.
func (c *Controller) Offset() (Offset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset, c.state == Centered
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Translate returns the committed offset, or {0, 0} while unmeasured.
func (c *Controller) Translate() Offset {
	off, _ := c.Offset()
	return off
}
