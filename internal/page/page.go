// Package page tracks which top-level page is shown and runs per-page hooks
// when a page is entered.
package page

import (
	"context"
	"fmt"
	"sync"

	"krisik-bazar/internal/model"

	"github.com/rs/zerolog"
)

// Name identifies a page.
type Name string

const (
	Home       Name = "home"
	Products   Name = "products"
	Login      Name = "login"
	Register   Name = "register"
	AddProduct Name = "add-product"
	Contact    Name = "contact"
)

// All lists every page in navigation order.
var All = []Name{Home, Products, Login, Register, AddProduct, Contact}

// Parse returns the page called s.
func Parse(s string) (Name, bool) {
	for _, n := range All {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}

// Hook runs after its page becomes active.
type Hook func(ctx context.Context)

// Router holds the single active page.
type Router struct {
	logger zerolog.Logger

	mu     sync.RWMutex
	active Name
	hooks  map[Name][]Hook
}

// NewRouter creates a router showing initial.
func NewRouter(initial string, logger zerolog.Logger) (*Router, error) {
	name, ok := Parse(initial)
	if !ok {
		return nil, fmt.Errorf("initial page %q: %w", initial, model.ErrUnknownPage)
	}

	return &Router{
		logger: logger.With().Str("component", "page").Logger(),
		active: name,
		hooks:  make(map[Name][]Hook),
	}, nil
}

// OnEnter registers h to run whenever name is navigated to.
func (r *Router) OnEnter(name Name, h Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[name] = append(r.hooks[name], h)
}

// Navigate makes target the only active page and runs its hooks. An unknown
// target leaves the active page unchanged.
func (r *Router) Navigate(ctx context.Context, target string) error {
	name, ok := Parse(target)
	if !ok {
		r.logger.Warn().Str("page", target).Msg("page not found")
		return model.ErrUnknownPage
	}

	r.mu.Lock()
	r.active = name
	hooks := append([]Hook(nil), r.hooks[name]...)
	r.mu.Unlock()

	r.logger.Debug().Str("page", string(name)).Msg("navigated")

	for _, h := range hooks {
		h(ctx)
	}
	return nil
}

// Active returns the page being shown.
func (r *Router) Active() Name {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}
