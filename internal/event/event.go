// Package event is a synchronous in-process dispatcher.
package event

import (
	"context"
	"sync"
)

// Names of the events raised by the session manager.
const (
	SessionLogin    = "session.login"
	SessionRegister = "session.register"
	SessionLogout   = "session.logout"
)

// Event is a named occurrence with an optional payload.
type Event struct {
	Name    string
	Payload any
}

// Handler reacts to an event.
type Handler func(ctx context.Context, e Event)

// Dispatcher fans events out to registered handlers. Handlers run on the
// dispatching goroutine, in registration order.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewDispatcher creates a dispatcher with no handlers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler)}
}

// On registers h for events named name.
func (d *Dispatcher) On(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// Dispatch calls every handler registered for e.Name.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) {
	d.mu.RLock()
	handlers := append([]Handler(nil), d.handlers[e.Name]...)
	d.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, e)
	}
}
