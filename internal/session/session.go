// Package session manages the simulated login state persisted in the store.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"krisik-bazar/internal/event"
	"krisik-bazar/internal/model"
	"krisik-bazar/internal/store"
	"krisik-bazar/internal/validation"

	"github.com/rs/zerolog"
)

const tokenPrefix = "demo_token_"

// LoginForm is the input of Login.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm is the input of Register.
type RegisterForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,simpleemail"`
	Password string `form:"password" validate:"required"`
}

// Manager holds the current session. It is anonymous until Restore finds a
// saved session or Login/Register succeeds.
type Manager struct {
	store      store.Store
	dispatcher *event.Dispatcher
	validator  *validation.Validator
	now        func() time.Time
	logger     zerolog.Logger

	mu      sync.RWMutex
	current *model.Session
}

// NewManager creates an anonymous session manager.
func NewManager(s store.Store, dispatcher *event.Dispatcher, v *validation.Validator, logger zerolog.Logger) *Manager {
	return NewManagerWithClock(s, dispatcher, v, time.Now, logger)
}

// NewManagerWithClock is NewManager with an explicit clock for ids and tokens.
func NewManagerWithClock(s store.Store, dispatcher *event.Dispatcher, v *validation.Validator, now func() time.Time, logger zerolog.Logger) *Manager {
	return &Manager{
		store:      s,
		dispatcher: dispatcher,
		validator:  v,
		now:        now,
		logger:     logger.With().Str("component", "session").Logger(),
	}
}

// Restore loads the persisted session. A malformed record is removed and the
// manager stays anonymous.
func (m *Manager) Restore(ctx context.Context) error {
	var saved model.Session
	ok, err := store.GetJSON(ctx, m.store, store.KeyUser, &saved)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil

	switch {
	case errors.Is(err, store.ErrCorrupt):
		m.logger.Error().Err(err).Msg("error parsing saved session")
		if rmErr := m.store.Remove(ctx, store.KeyUser); rmErr != nil {
			m.logger.Error().Err(rmErr).Msg("failed to remove corrupt session")
		}
		return model.ErrCorruptSession
	case err != nil:
		return fmt.Errorf("failed to read session: %w", err)
	case !ok:
		return nil
	}

	m.current = &saved
	m.logger.Debug().Str("email", saved.Email).Msg("session restored")
	return nil
}

// Login starts a session for any non-empty email and password.
func (m *Manager) Login(ctx context.Context, form LoginForm) (model.Session, error) {
	if errs := m.validator.All(form); errs != nil {
		return model.Session{}, model.ErrMissingFields
	}

	localPart, _, _ := strings.Cut(form.Email, "@")
	s, err := m.start(ctx, localPart, form.Email)
	if err != nil {
		return model.Session{}, err
	}

	m.dispatcher.Dispatch(ctx, event.Event{Name: event.SessionLogin, Payload: s})
	return s, nil
}

// Register starts a session under the given name. The email must look like
// an address.
func (m *Manager) Register(ctx context.Context, form RegisterForm) (model.Session, error) {
	if errs := m.validator.All(form); errs != nil {
		if validation.HasTag(errs, "required") {
			return model.Session{}, model.ErrMissingFields
		}
		return model.Session{}, model.ErrInvalidEmail
	}

	s, err := m.start(ctx, form.Name, form.Email)
	if err != nil {
		return model.Session{}, err
	}

	m.dispatcher.Dispatch(ctx, event.Event{Name: event.SessionRegister, Payload: s})
	return s, nil
}

func (m *Manager) start(ctx context.Context, name, email string) (model.Session, error) {
	ms := m.now().UnixMilli()
	s := model.Session{
		ID:    ms,
		Name:  name,
		Email: email,
		Token: tokenPrefix + strconv.FormatInt(ms, 10),
	}

	if err := store.SetJSON(ctx, m.store, store.KeyUser, s); err != nil {
		m.logger.Error().Err(err).Msg("failed to save session")
		return model.Session{}, fmt.Errorf("failed to save session: %w", err)
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	m.logger.Info().Int64("user_id", s.ID).Str("email", s.Email).Msg("session started")
	return s, nil
}

// Logout forgets the session. Only the session key is removed; saved
// products stay in the store.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Remove(ctx, store.KeyUser); err != nil {
		m.logger.Error().Err(err).Msg("failed to remove session")
		return fmt.Errorf("failed to remove session: %w", err)
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	m.logger.Info().Msg("session ended")
	m.dispatcher.Dispatch(ctx, event.Event{Name: event.SessionLogout})
	return nil
}

// Current returns the active session, if any.
func (m *Manager) Current() (model.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return model.Session{}, false
	}
	return *m.current, true
}

// Authenticated reports whether a session is active.
func (m *Manager) Authenticated() bool {
	_, ok := m.Current()
	return ok
}
