package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"krisik-bazar/internal/model"
	"krisik-bazar/internal/store"

	"github.com/rs/zerolog"
)

// productRepository implements ProductRepository over an in-memory collection
// with the user subset persisted as JSON in a store.
type productRepository struct {
	store  store.Store
	now    func() time.Time
	logger zerolog.Logger

	mu     sync.RWMutex
	remote []model.Product
	local  []model.Product
	merged []model.Product
	lastID int64
}

// NewProductRepository creates a repository persisting to s.
func NewProductRepository(s store.Store, logger zerolog.Logger) ProductRepository {
	return newProductRepository(s, time.Now, logger)
}

func newProductRepository(s store.Store, now func() time.Time, logger zerolog.Logger) *productRepository {
	return &productRepository{
		store:  s,
		now:    now,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Merge concatenates remote then local. Nothing is de-duplicated; colliding
// ids are logged so the first-match lookup rule stays visible.
func Merge(remote, local []model.Product, logger zerolog.Logger) []model.Product {
	merged := make([]model.Product, 0, len(remote)+len(local))
	merged = append(merged, remote...)
	merged = append(merged, local...)

	if len(remote) > 0 && len(local) > 0 {
		remoteIDs := make(map[int64]struct{}, len(remote))
		for _, p := range remote {
			remoteIDs[p.ID] = struct{}{}
		}
		for _, p := range local {
			if _, dup := remoteIDs[p.ID]; dup {
				logger.Warn().Int64("product_id", p.ID).Msg("user product id collides with a remote product")
			}
		}
	}

	return merged
}

func (r *productRepository) Load(ctx context.Context) error {
	var local []model.Product
	_, err := store.GetJSON(ctx, r.store, store.KeyUserProducts, &local)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.local = nil
		r.merged = Merge(r.remote, nil, r.logger)
		if errors.Is(err, store.ErrCorrupt) {
			r.logger.Error().Err(err).Msg("error parsing user products")
			return model.ErrCorruptProducts
		}
		r.logger.Error().Err(err).Msg("failed to read user products")
		return fmt.Errorf("failed to read user products: %w", err)
	}

	for i := range local {
		local[i].IsUserProduct = true
		if local[i].ID > r.lastID {
			r.lastID = local[i].ID
		}
	}

	r.local = local
	r.merged = Merge(r.remote, r.local, r.logger)

	r.logger.Debug().Int("count", len(local)).Msg("loaded user products")
	return nil
}

func (r *productRepository) Replace(remote []model.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.remote = append([]model.Product(nil), remote...)
	r.merged = Merge(r.remote, r.local, r.logger)
}

func (r *productRepository) All() []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Product(nil), r.merged...)
}

func (r *productRepository) Local() []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Product(nil), r.local...)
}

func (r *productRepository) FindByID(id int64) (model.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.local {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range r.merged {
		if p.ID == id {
			return p, true
		}
	}

	r.logger.Debug().Int64("product_id", id).Msg("product not found")
	return model.Product{}, false
}

func (r *productRepository) Add(ctx context.Context, p model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.IsUserProduct = true
	local := append(append([]model.Product(nil), r.local...), p)
	if err := r.persist(ctx, local); err != nil {
		return err
	}

	r.local = local
	r.merged = Merge(r.remote, r.local, r.logger)

	r.logger.Info().Int64("product_id", p.ID).Str("name", p.Name).Msg("user product added")
	return nil
}

func (r *productRepository) Remove(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	local := make([]model.Product, 0, len(r.local))
	for _, p := range r.local {
		if p.ID != id {
			local = append(local, p)
		}
	}
	removed := len(local) != len(r.local)

	if err := r.persist(ctx, local); err != nil {
		return false, err
	}

	r.local = local
	r.merged = Merge(r.remote, r.local, r.logger)

	r.logger.Info().Int64("product_id", id).Bool("removed", removed).Msg("user product delete")
	return removed, nil
}

// persist writes the user subset. Callers hold the write lock.
func (r *productRepository) persist(ctx context.Context, local []model.Product) error {
	if err := store.SetJSON(ctx, r.store, store.KeyUserProducts, local); err != nil {
		r.logger.Error().Err(err).Int("count", len(local)).Msg("failed to save user products")
		return fmt.Errorf("failed to save user products: %w", err)
	}
	return nil
}

func (r *productRepository) Search(query string) []model.Product {
	q := strings.ToLower(strings.TrimSpace(query))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if q == "" {
		return append([]model.Product(nil), r.merged...)
	}

	var matches []model.Product
	for _, p := range r.merged {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			(p.NameNepali != "" && strings.Contains(strings.ToLower(p.NameNepali), q)) {
			matches = append(matches, p)
		}
	}
	return matches
}

func (r *productRepository) FilterByCategory(category string) []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if category == "" {
		return append([]model.Product(nil), r.merged...)
	}

	var matches []model.Product
	for _, p := range r.merged {
		if p.Category == category {
			matches = append(matches, p)
		}
	}
	return matches
}

func (r *productRepository) ClearLocal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.local = nil
	r.merged = Merge(r.remote, nil, r.logger)
}

// NextID derives the id from the current time in milliseconds, bumped past
// the last id handed out so ids stay strictly increasing.
func (r *productRepository) NextID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}
