package router

import (
	"net/http"

	"krisik-bazar/internal/handler"
	"krisik-bazar/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Metrics are registered on reg and served from gatherer.
func New(
	pageHandler *handler.PageHandler,
	productHandler *handler.ProductHandler,
	apiKey string,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Pages
	mux.HandleFunc("GET /{$}", pageHandler.Home)
	mux.HandleFunc("GET /{page}", pageHandler.Page)
	mux.HandleFunc("GET /products", pageHandler.Products)
	mux.HandleFunc("GET /products/{id}", pageHandler.Product)
	mux.HandleFunc("POST /products/{id}/edit", pageHandler.EditProduct)
	mux.HandleFunc("GET /products/{id}/delete", pageHandler.ConfirmDelete)
	mux.HandleFunc("POST /products/{id}/delete", pageHandler.DeleteProduct)

	// Forms
	mux.HandleFunc("POST /login", pageHandler.Login)
	mux.HandleFunc("POST /register", pageHandler.Register)
	mux.HandleFunc("POST /logout", pageHandler.Logout)
	mux.HandleFunc("POST /add-product", pageHandler.AddProduct)
	mux.HandleFunc("POST /contact", pageHandler.Contact)

	// JSON API
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth -> Metrics
	var handler http.Handler = mux
	handler = middleware.Metrics(reg)(handler)
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
