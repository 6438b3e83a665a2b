package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"krisik-bazar/internal/event"
	"krisik-bazar/internal/model"
	"krisik-bazar/internal/notify"
	"krisik-bazar/internal/page"
	"krisik-bazar/internal/repository"
	"krisik-bazar/internal/session"
	"krisik-bazar/internal/validation"

	"github.com/rs/zerolog"
)

// Success messages. Failure messages come from the model's domain errors.
const (
	msgLoginOK     = "Login successful!"
	msgRegisterOK  = "Registration successful! Welcome to Krisik Bazar!"
	msgLogoutOK    = "Logged out successfully"
	msgNoMatches   = "No products found matching your search"
	msgAddedOK     = "Product added successfully!"
	msgDeletedOK   = "Product deleted successfully"
	msgEditSoon    = "Edit functionality coming soon!"
	msgContactSent = "Message sent successfully! We'll get back to you soon."
)

// productDateLayout matches the millisecond ISO-8601 form used for saved
// products.
const productDateLayout = "2006-01-02T15:04:05.000Z07:00"

// marketplace implements Marketplace. Public methods take mu; everything they
// call, including event and page hooks, runs on the same goroutine and must
// not take it again.
type marketplace struct {
	repo      repository.ProductRepository
	sessions  *session.Manager
	router    *page.Router
	fetcher   ListingFetcher
	toaster   Toaster
	validator *validation.Validator
	now       func() time.Time
	logger    zerolog.Logger

	mu       sync.Mutex
	loaded   bool
	visible  []model.Product
	query    string
	category string
	modal    *model.Product
	confirm  *model.Product
	canAdd   bool
}

// NewMarketplace wires the marketplace to its collaborators and subscribes to
// session events on dispatcher.
func NewMarketplace(
	repo repository.ProductRepository,
	sessions *session.Manager,
	router *page.Router,
	fetcher ListingFetcher,
	toaster Toaster,
	dispatcher *event.Dispatcher,
	v *validation.Validator,
	logger zerolog.Logger,
) Marketplace {
	m := &marketplace{
		repo:      repo,
		sessions:  sessions,
		router:    router,
		fetcher:   fetcher,
		toaster:   toaster,
		validator: v,
		now:       time.Now,
		logger:    logger.With().Str("service", "marketplace").Logger(),
	}

	dispatcher.On(event.SessionLogin, m.onLogin)
	dispatcher.On(event.SessionRegister, m.onRegister)
	dispatcher.On(event.SessionLogout, m.onLogout)

	router.OnEnter(page.Products, func(ctx context.Context) { m.loadListings(ctx) })
	router.OnEnter(page.AddProduct, func(context.Context) { m.checkAddAccess() })

	return m
}

func (m *marketplace) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.sessions.Restore(ctx); err != nil {
		m.logger.Error().Err(err).Msg("error restoring session")
		m.report(err, errGeneric)
	}
	m.checkAddAccess()

	active := m.router.Active()
	if err := m.router.Navigate(ctx, string(active)); err != nil {
		m.logger.Error().Err(err).Str("page", string(active)).Msg("failed to enter initial page")
	}

	m.logger.Info().Str("page", string(active)).Bool("authenticated", m.sessions.Authenticated()).Msg("marketplace started")
}

func (m *marketplace) Navigate(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeDialogs()
	return m.router.Navigate(ctx, name)
}

func (m *marketplace) LoadListings(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadListings(ctx)
}

// loadListings fetches, re-reads the saved user products and re-merges.
func (m *marketplace) loadListings(ctx context.Context) {
	remote := m.fetcher.FetchListings(ctx)

	if err := m.repo.Load(ctx); err != nil {
		m.logger.Error().Err(err).Msg("error loading user products")
		m.report(err, errGeneric)
	}
	m.repo.Replace(remote)

	m.loaded = true
	m.query = ""
	m.category = ""
	m.visible = m.repo.All()

	m.logger.Debug().Int("count", len(m.visible)).Msg("listings loaded")
}

func (m *marketplace) EnsureLoaded(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		m.loadListings(ctx)
	}
}

func (m *marketplace) Search(ctx context.Context, query string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		m.loadListings(ctx)
	}
	m.closeDialogs()
	m.query = query
	m.refilter()

	if len(m.visible) == 0 {
		m.toaster.Notify(msgNoMatches, notify.Success)
	}
}

func (m *marketplace) FilterByCategory(ctx context.Context, category string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeDialogs()
	if category == "" {
		m.loadListings(ctx)
		return
	}

	if !m.loaded {
		m.loadListings(ctx)
	}
	m.category = category
	m.refilter()
}

// refilter recomputes the visible products from the current query and
// category.
func (m *marketplace) refilter() {
	m.visible = filterCategory(m.repo.Search(m.query), m.category)
}

func filterCategory(products []model.Product, category string) []model.Product {
	if category == "" {
		return products
	}

	var out []model.Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (m *marketplace) ShowProduct(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		m.loadListings(ctx)
	}
	m.closeDialogs()

	p, ok := m.repo.FindByID(id)
	if !ok {
		return m.fail(model.ErrProductNotFound)
	}

	m.modal = &p
	return nil
}

func (m *marketplace) AddProduct(ctx context.Context, form ProductForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.sessions.Current()
	if !ok {
		return m.fail(model.ErrLoginToAdd)
	}

	p, err := form.parse(m.validator)
	if err != nil {
		return m.fail(err)
	}

	p.ID = m.repo.NextID()
	p.Seller = current.DisplayName()
	p.Date = m.now().UTC().Format(productDateLayout)
	p.IsUserProduct = true

	if err := m.repo.Add(ctx, p); err != nil {
		m.logger.Error().Err(err).Int64("product_id", p.ID).Msg("error adding product")
		return m.fail(model.ErrAddProductFailed)
	}

	m.logger.Info().Int64("product_id", p.ID).Str("seller", p.Seller).Msg("product added")
	m.toaster.Notify(msgAddedOK, notify.Success)

	m.closeDialogs()
	return m.router.Navigate(ctx, string(page.Products))
}

func (m *marketplace) DeleteProduct(ctx context.Context, id int64, confirmed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sessions.Authenticated() {
		return m.fail(model.ErrLoginToDelete)
	}

	if !confirmed {
		if !m.loaded {
			m.loadListings(ctx)
		}
		m.closeDialogs()
		p, ok := m.repo.FindByID(id)
		if !ok {
			p = model.Product{ID: id}
		}
		m.confirm = &p
		return model.ErrConfirmRequired
	}

	m.closeDialogs()
	removed, err := m.repo.Remove(ctx, id)
	if err != nil {
		m.logger.Error().Err(err).Int64("product_id", id).Msg("error deleting product")
		return m.fail(model.ErrDeleteProductFailed)
	}
	if !removed {
		m.logger.Debug().Int64("product_id", id).Msg("delete matched no user product")
	}

	m.toaster.Notify(msgDeletedOK, notify.Success)

	if m.router.Active() == page.Products {
		m.loadListings(ctx)
	} else {
		m.refilter()
	}
	return nil
}

func (m *marketplace) EditProduct(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug().Int64("product_id", id).Msg("edit requested")
	m.toaster.Notify(msgEditSoon, notify.Success)
	return nil
}

func (m *marketplace) Login(ctx context.Context, form session.LoginForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.sessions.Login(ctx, form); err != nil {
		return m.failOr(err, model.ErrLoginFailed)
	}
	return nil
}

func (m *marketplace) Register(ctx context.Context, form session.RegisterForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.sessions.Register(ctx, form); err != nil {
		return m.failOr(err, model.ErrRegisterFailed)
	}
	return nil
}

func (m *marketplace) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.sessions.Logout(ctx); err != nil {
		return m.failOr(err, model.ErrLogoutFailed)
	}
	return nil
}

func (m *marketplace) onLogin(ctx context.Context, _ event.Event) {
	m.toaster.Notify(msgLoginOK, notify.Success)
	m.goHome(ctx)
}

func (m *marketplace) onRegister(ctx context.Context, _ event.Event) {
	m.toaster.Notify(msgRegisterOK, notify.Success)
	m.goHome(ctx)
}

func (m *marketplace) onLogout(ctx context.Context, _ event.Event) {
	m.repo.ClearLocal()
	m.visible = m.repo.All()
	m.toaster.Notify(msgLogoutOK, notify.Success)
	m.goHome(ctx)
}

func (m *marketplace) goHome(ctx context.Context) {
	m.closeDialogs()
	if err := m.router.Navigate(ctx, string(page.Home)); err != nil {
		m.logger.Error().Err(err).Msg("failed to navigate home")
	}
}

func (m *marketplace) Contact(_ context.Context, form ContactForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := form.check(m.validator); err != nil {
		return m.fail(err)
	}

	m.toaster.Notify(msgContactSent, notify.Success)
	return nil
}

func (m *marketplace) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, authenticated := m.sessions.Current()
	toast, _ := m.toaster.Current()

	return Snapshot{
		Active:        m.router.Active(),
		Session:       current,
		Authenticated: authenticated,
		Products:      append([]model.Product(nil), m.visible...),
		Query:         m.query,
		Category:      m.category,
		Modal:         m.modal,
		ConfirmDelete: m.confirm,
		Toast:         toast,
		CanAddProduct: m.canAdd,
	}
}

// checkAddAccess re-evaluates whether the add-product form is offered.
func (m *marketplace) checkAddAccess() {
	m.canAdd = m.sessions.Authenticated()
}

func (m *marketplace) closeDialogs() {
	m.modal = nil
	m.confirm = nil
}

// fail shows err to the user and returns it.
func (m *marketplace) fail(err error) error {
	return m.failOr(err, errGeneric)
}

var errGeneric = model.NewDomainError(model.ErrCodeInternalError, "An error occurred")

// failOr shows err when it is a domain error, otherwise logs it and shows
// fallback.
func (m *marketplace) failOr(err error, fallback *model.DomainError) error {
	if !isDomainError(err) {
		m.logger.Error().Err(err).Msg("action failed")
	}
	m.report(err, fallback)
	return err
}

// report shows err when it is a domain error, otherwise fallback. The caller
// has already logged it.
func (m *marketplace) report(err error, fallback *model.DomainError) {
	var de *model.DomainError
	if errors.As(err, &de) {
		m.toaster.Notify(de.Message, notify.Error)
		return
	}
	m.toaster.Notify(fallback.Message, notify.Error)
}

func isDomainError(err error) bool {
	var de *model.DomainError
	return errors.As(err, &de)
}
