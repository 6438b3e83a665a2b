// Package store persists string values under string keys. It stands in for
// the browser's local storage: sessions and user-authored products live here
// across restarts.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys used by the marketplace.
const (
	KeyUser         = "krisik_bazar_user"
	KeyUserProducts = "krisik_bazar_user_products"

	LegacyKeyUser         = "merobajar_user"
	LegacyKeyUserProducts = "merobajar_user_products"
)

// LegacyRenames maps each legacy key to the key that replaced it.
var LegacyRenames = map[string]string{
	LegacyKeyUser:         KeyUser,
	LegacyKeyUserProducts: KeyUserProducts,
}

// ErrCorrupt is wrapped by GetJSON when a stored value is not valid JSON.
var ErrCorrupt = errors.New("stored value is not valid JSON")

// Store is a string key-value store. A missing key is reported with ok=false,
// never as an error, and removing a missing key succeeds.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// GetJSON decodes the value under key into v. It reports ok=false when the key
// is absent.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("key %s: %w: %v", key, ErrCorrupt, err)
	}

	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}
