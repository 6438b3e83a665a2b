package repository

import (
	"context"

	"krisik-bazar/internal/model"
)

// ProductRepository holds the merged product collection: remote listings
// followed by the user's own products.
type ProductRepository interface {
	// Load reads the user's products from the store. A corrupt entry leaves
	// the user subset empty and returns model.ErrCorruptProducts.
	Load(ctx context.Context) error

	// Replace installs a freshly fetched remote subset.
	Replace(remote []model.Product)

	// All returns the merged collection in display order.
	All() []model.Product

	// Local returns the user-authored subset.
	Local() []model.Product

	// FindByID looks in the user subset first, then the merged collection.
	FindByID(id int64) (model.Product, bool)

	// Add appends a user product and persists the user subset.
	Add(ctx context.Context, p model.Product) error

	// Remove deletes a user product by id and persists the user subset.
	// Remote products are never removed.
	Remove(ctx context.Context, id int64) (bool, error)

	// Search matches name or localized name, case-insensitively.
	Search(query string) []model.Product

	// FilterByCategory matches the category exactly.
	FilterByCategory(category string) []model.Product

	// ClearLocal drops the in-memory user subset without touching the store.
	ClearLocal()

	// NextID returns an id for a new user product.
	NextID() int64
}
