package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Migrate renames legacy keys. For each legacy key that holds a value while its
// replacement is absent, the value is copied and the legacy key removed.
// Running it again changes nothing.
func Migrate(ctx context.Context, s Store, renames map[string]string, logger zerolog.Logger) error {
	legacyKeys := make([]string, 0, len(renames))
	for k := range renames {
		legacyKeys = append(legacyKeys, k)
	}
	sort.Strings(legacyKeys)

	for _, legacy := range legacyKeys {
		current := renames[legacy]

		value, ok, err := s.Get(ctx, legacy)
		if err != nil {
			return fmt.Errorf("failed to read legacy key %s: %w", legacy, err)
		}
		if !ok {
			continue
		}

		_, exists, err := s.Get(ctx, current)
		if err != nil {
			return fmt.Errorf("failed to read key %s: %w", current, err)
		}
		if exists {
			continue
		}

		if err := s.Set(ctx, current, value); err != nil {
			return fmt.Errorf("failed to copy %s to %s: %w", legacy, current, err)
		}
		if err := s.Remove(ctx, legacy); err != nil {
			return fmt.Errorf("failed to remove legacy key %s: %w", legacy, err)
		}

		logger.Info().
			Str("from", legacy).
			Str("to", current).
			Msg("migrated legacy store key")
	}

	return nil
}

// Migrating wraps a Store and runs the legacy-key migration before the first
// access. A failed migration is retried on the next access.
type Migrating struct {
	next    Store
	renames map[string]string
	logger  zerolog.Logger

	mu   sync.Mutex
	done bool
}

// NewMigrating wraps next with the standard legacy renames.
func NewMigrating(next Store, logger zerolog.Logger) *Migrating {
	return &Migrating{
		next:    next,
		renames: LegacyRenames,
		logger:  logger.With().Str("component", "store-migration").Logger(),
	}
}

func (m *Migrating) ensure(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return nil
	}
	if err := Migrate(ctx, m.next, m.renames, m.logger); err != nil {
		m.logger.Error().Err(err).Msg("legacy key migration failed")
		return err
	}
	m.done = true
	return nil
}

func (m *Migrating) Get(ctx context.Context, key string) (string, bool, error) {
	if err := m.ensure(ctx); err != nil {
		return "", false, err
	}
	return m.next.Get(ctx, key)
}

func (m *Migrating) Set(ctx context.Context, key, value string) error {
	if err := m.ensure(ctx); err != nil {
		return err
	}
	return m.next.Set(ctx, key, value)
}

func (m *Migrating) Remove(ctx context.Context, key string) error {
	if err := m.ensure(ctx); err != nil {
		return err
	}
	return m.next.Remove(ctx, key)
}
