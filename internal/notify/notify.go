// Package notify holds the single transient-message slot.
package notify

import (
	"sync"
	"time"
)

const (
	// DisplayDuration is how long a toast stays fully visible.
	DisplayDuration = 5 * time.Second
	// FadeDuration is the fade-out transition before the toast is hidden.
	FadeDuration = 300 * time.Millisecond
)

// Variant is the visual style of a toast.
type Variant string

const (
	Success Variant = "success"
	Error   Variant = "error"
)

// State is the visibility of the slot.
type State int

const (
	Hidden State = iota
	Visible
	Fading
)

func (s State) String() string {
	switch s {
	case Visible:
		return "visible"
	case Fading:
		return "fading"
	default:
		return "hidden"
	}
}

// Toast is one transient message.
type Toast struct {
	Message string
	Variant Variant
	State   State
}

// Notifier accepts user-visible messages.
type Notifier interface {
	Notify(message string, variant Variant)
}

// Timer is the part of *time.Timer the slot needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Slot shows at most one toast at a time. A new toast replaces the current
// one and cancels its pending timers.
type Slot struct {
	mu         sync.Mutex
	afterFunc  AfterFunc
	current    Toast
	generation uint64
	timer      Timer
}

// NewSlot creates an empty slot driven by real timers.
func NewSlot() *Slot {
	return NewSlotWithTimer(realAfterFunc)
}

// NewSlotWithTimer creates a slot using afterFunc to schedule transitions.
func NewSlotWithTimer(afterFunc AfterFunc) *Slot {
	return &Slot{afterFunc: afterFunc}
}

// Notify shows message, replacing whatever was showing.
func (s *Slot) Notify(message string, variant Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}

	s.generation++
	gen := s.generation
	s.current = Toast{Message: message, Variant: variant, State: Visible}
	s.timer = s.afterFunc(DisplayDuration, func() { s.fade(gen) })
}

func (s *Slot) fade(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || s.current.State != Visible {
		return
	}
	s.current.State = Fading
	s.timer = s.afterFunc(FadeDuration, func() { s.hide(gen) })
}

func (s *Slot) hide(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return
	}
	s.current.State = Hidden
	s.timer = nil
}

// Current returns the toast in the slot. ok is false when nothing is showing.
func (s *Slot) Current() (Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current.State != Hidden
}

// Dismiss hides the toast immediately.
func (s *Slot) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	s.current.State = Hidden
}
