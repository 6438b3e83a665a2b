package service

import (
	"context"

	"krisik-bazar/internal/model"
	"krisik-bazar/internal/notify"
	"krisik-bazar/internal/page"
	"krisik-bazar/internal/session"
)

// Marketplace is the state of one browser context. Every action runs to
// completion before the next one starts, and every failure a user can cause is
// turned into a notification.
type Marketplace interface {
	// Start restores the saved session and enters the initial page.
	Start(ctx context.Context)

	// Navigate shows the named page and runs its enter hooks.
	Navigate(ctx context.Context, name string) error

	// LoadListings fetches remote products and merges them with the saved user
	// products. The search and category filter are reset.
	LoadListings(ctx context.Context)

	// Search narrows the visible products to those whose name matches query.
	Search(ctx context.Context, query string)

	// FilterByCategory narrows the visible products to one category. An empty
	// category reloads the full listing.
	FilterByCategory(ctx context.Context, category string)

	// ShowProduct opens the detail dialog for a product.
	ShowProduct(ctx context.Context, id int64) error

	// AddProduct validates form and saves a new user product.
	AddProduct(ctx context.Context, form ProductForm) error

	// DeleteProduct removes a user product. Without confirmation it only opens
	// the confirmation dialog.
	DeleteProduct(ctx context.Context, id int64, confirmed bool) error

	// EditProduct is a placeholder that only notifies.
	EditProduct(ctx context.Context, id int64) error

	Login(ctx context.Context, form session.LoginForm) error
	Register(ctx context.Context, form session.RegisterForm) error
	Logout(ctx context.Context) error

	// Contact validates the contact form. Nothing is sent anywhere.
	Contact(ctx context.Context, form ContactForm) error

	// Snapshot returns everything needed to render the current page.
	Snapshot() Snapshot

	Loader
}

// Loader loads the listings once, on first use.
type Loader interface {
	EnsureLoaded(ctx context.Context)
}

// ProductService is the read-only product catalogue behind the JSON API.
type ProductService interface {
	// List returns products matching query and category. Empty values match
	// everything.
	List(ctx context.Context, query, category string) ([]model.Product, error)

	// GetByID returns a single product, user products first.
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}

// ListingFetcher loads the remote products. It never fails; a fallback list
// is returned instead.
type ListingFetcher interface {
	FetchListings(ctx context.Context) []model.Product
}

// Toaster is the notification slot.
type Toaster interface {
	notify.Notifier
	Current() (notify.Toast, bool)
}

// Snapshot is a copy of the marketplace state.
type Snapshot struct {
	Active        page.Name
	Session       model.Session
	Authenticated bool
	Products      []model.Product
	Query         string
	Category      string
	Modal         *model.Product
	ConfirmDelete *model.Product
	Toast         notify.Toast
	CanAddProduct bool
}
