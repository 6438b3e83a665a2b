package handler

import (
	"errors"
	"net/http"
	"strconv"

	"krisik-bazar/internal/model"
	"krisik-bazar/internal/page"
	"krisik-bazar/internal/service"
	"krisik-bazar/internal/session"
	"krisik-bazar/internal/view"

	"github.com/rs/zerolog"
)

const maxFormBytes = 64 << 10

// PageHandler serves the HTML pages and form posts. Every route runs one
// marketplace action and renders the resulting state; action failures show up
// as the toast rather than as an error status.
type PageHandler struct {
	market service.Marketplace
	logger zerolog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(market service.Marketplace, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		market: market,
		logger: logger.With().Str("handler", "page").Logger(),
	}
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, string(page.Home))
}

// Page handles GET /{page}. An unknown page keeps the current one and answers
// 404.
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, r.PathValue("page"))
}

func (h *PageHandler) navigate(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.market.Navigate(r.Context(), name); err != nil {
		if errors.Is(err, model.ErrUnknownPage) {
			h.render(w, http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("page", name).Msg("navigation failed")
	}
	h.render(w, http.StatusOK)
}

// Products handles GET /products. q searches by name and category filters.
func (h *PageHandler) Products(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.market.Navigate(ctx, string(page.Products)); err != nil {
		h.logger.Error().Err(err).Msg("navigation failed")
	}

	query := r.URL.Query()
	if q := query.Get("q"); q != "" {
		h.market.Search(ctx, q)
	}
	if category := query.Get("category"); category != "" {
		h.market.FilterByCategory(ctx, category)
	}

	h.render(w, http.StatusOK)
}

// Product handles GET /products/{id} by opening the detail dialog.
func (h *PageHandler) Product(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	h.logResult(h.market.ShowProduct(r.Context(), id), "show product")
	h.render(w, http.StatusOK)
}

// EditProduct handles POST /products/{id}/edit.
func (h *PageHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	h.logResult(h.market.EditProduct(r.Context(), id), "edit product")
	h.render(w, http.StatusOK)
}

// ConfirmDelete handles GET /products/{id}/delete by asking for confirmation.
func (h *PageHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	h.logResult(h.market.DeleteProduct(r.Context(), id, false), "confirm delete")
	h.render(w, http.StatusOK)
}

// DeleteProduct handles POST /products/{id}/delete. Nothing is deleted unless
// the form carries confirmed=true.
func (h *PageHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok || !h.parseForm(w, r) {
		return
	}

	confirmed := r.PostFormValue("confirmed") == "true"
	h.logResult(h.market.DeleteProduct(r.Context(), id, confirmed), "delete product")
	h.render(w, http.StatusOK)
}

// AddProduct handles POST /add-product.
func (h *PageHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	form := service.ProductForm{
		Name:        r.PostFormValue("name"),
		NameNepali:  r.PostFormValue("name_nepali"),
		Category:    r.PostFormValue("category"),
		PricePerKg:  r.PostFormValue("price_per_kg"),
		Quantity:    r.PostFormValue("quantity"),
		Market:      r.PostFormValue("market"),
		Description: r.PostFormValue("description"),
	}
	h.logResult(h.market.AddProduct(r.Context(), form), "add product")
	h.render(w, http.StatusOK)
}

// Login handles POST /login.
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	form := session.LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	h.logResult(h.market.Login(r.Context(), form), "login")
	h.render(w, http.StatusOK)
}

// Register handles POST /register.
func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	form := session.RegisterForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	h.logResult(h.market.Register(r.Context(), form), "register")
	h.render(w, http.StatusOK)
}

// Logout handles POST /logout.
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.logResult(h.market.Logout(r.Context()), "logout")
	h.render(w, http.StatusOK)
}

// Contact handles POST /contact.
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	form := service.ContactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}
	h.logResult(h.market.Contact(r.Context(), form), "contact")
	h.render(w, http.StatusOK)
}

func (h *PageHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Debug().Str("id", raw).Msg("invalid product ID")
		h.render(w, http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func (h *PageHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid form body")
		h.render(w, http.StatusBadRequest)
		return false
	}
	return true
}

// logResult records the outcome of an action. The user already sees failures
// as a toast.
func (h *PageHandler) logResult(err error, action string) {
	if err == nil {
		return
	}

	var de *model.DomainError
	if errors.As(err, &de) {
		h.logger.Debug().Str("action", action).Str("code", de.Code).Msg(de.Message)
		return
	}
	h.logger.Error().Err(err).Str("action", action).Msg("action failed")
}

func (h *PageHandler) render(w http.ResponseWriter, status int) {
	writeHTML(w, status, view.Page(pageData(h.market.Snapshot())), h.logger)
}

func pageData(s service.Snapshot) view.PageData {
	return view.PageData{
		Active:        s.Active,
		Session:       s.Session,
		Authenticated: s.Authenticated,
		Products:      s.Products,
		Query:         s.Query,
		Category:      s.Category,
		Modal:         s.Modal,
		ConfirmDelete: s.ConfirmDelete,
		Toast:         s.Toast,
		CanAddProduct: s.CanAddProduct,
	}
}
