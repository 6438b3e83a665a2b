package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"krisik-bazar/internal/model"
	"krisik-bazar/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const priceBoardBody = `[
	{"id": 7, "crop_name": "Tomato", "crop_name_nepali": "गोलभेडा", "market_name": "Kalimati", "price_per_kg": "60.00", "date": "2025-01-15"},
	{"id": 8, "crop_name": "Onion", "market_name": "Kalimati", "price_per_kg": 55, "date": "2025-01-15"}
]`

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if strings.HasPrefix(path, "/api/") {
		req.Header.Set("X-API-Key", testAPIKey)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func postForm(t *testing.T, h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func listProducts(t *testing.T, h http.Handler) []model.Product {
	t.Helper()

	w := get(t, h, "/api/products")
	require.Equal(t, http.StatusOK, w.Code)

	var products []model.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))

	return products
}

func findByName(products []model.Product, name string) (model.Product, bool) {
	for _, p := range products {
		if p.Name == name {
			return p, true
		}
	}
	return model.Product{}, false
}

func TestMarketplace_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	s := NewPostgresStore(t, testDB)
	board := NewPriceBoard(t, priceBoardBody)

	t.Run("remote listings are served", func(t *testing.T) {
		CleanupStore(t, s)
		app := NewApp(t, s, board, "home")

		products := listProducts(t, app.Handler)
		require.Len(t, products, 2)

		tomato, ok := findByName(products, "Tomato")
		require.True(t, ok)
		assert.Equal(t, "60.00", tomato.PricePerKg.StringFixed(2))
		assert.False(t, tomato.IsUserProduct)

		w := get(t, app.Handler, "/products?q=tom")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Tomato")
		assert.NotContains(t, w.Body.String(), "Onion")
	})

	t.Run("session and products survive a restart", func(t *testing.T) {
		CleanupStore(t, s)
		app := NewApp(t, s, board, "home")

		w := postForm(t, app.Handler, "/login", url.Values{
			"email":    {"ram@example.com"},
			"password": {"secret"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Login successful!")
		assert.Contains(t, w.Body.String(), `id="user-menu"`)

		w = postForm(t, app.Handler, "/add-product", url.Values{
			"name":         {"Cauliflower"},
			"name_nepali":  {"काउली"},
			"category":     {"vegetables"},
			"price_per_kg": {"80"},
			"quantity":     {"12"},
			"market":       {"Kalimati"},
			"description":  {"Fresh from Dhading"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Product added successfully!")
		assert.Contains(t, w.Body.String(), "Cauliflower")

		restarted := NewApp(t, s, board, "home")

		w = get(t, restarted.Handler, "/")
		assert.Contains(t, w.Body.String(), `id="user-menu"`)

		added, ok := findByName(listProducts(t, restarted.Handler), "Cauliflower")
		require.True(t, ok)
		assert.True(t, added.IsUserProduct)
		assert.Equal(t, "ram", added.Seller)
		assert.Equal(t, "vegetables", added.Category)

		w = postForm(t, restarted.Handler, "/logout", url.Values{})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Logged out successfully")

		_, ok, err := s.Get(context.Background(), store.KeyUser)
		require.NoError(t, err)
		assert.False(t, ok)

		// Logging out keeps saved products.
		afterLogout := NewApp(t, s, board, "home")
		_, ok = findByName(listProducts(t, afterLogout.Handler), "Cauliflower")
		assert.True(t, ok)
		assert.Contains(t, get(t, afterLogout.Handler, "/").Body.String(), `id="auth-buttons"`)
	})

	t.Run("delete requires confirmation", func(t *testing.T) {
		CleanupStore(t, s)
		app := NewApp(t, s, board, "home")

		postForm(t, app.Handler, "/login", url.Values{"email": {"sita@example.com"}, "password": {"pw"}})
		postForm(t, app.Handler, "/add-product", url.Values{
			"name":         {"Ginger"},
			"category":     {"spices"},
			"price_per_kg": {"150"},
			"quantity":     {"3"},
			"description":  {"Organic"},
		})

		ginger, ok := findByName(listProducts(t, app.Handler), "Ginger")
		require.True(t, ok)
		path := fmt.Sprintf("/products/%d/delete", ginger.ID)

		w := get(t, app.Handler, path)
		assert.Contains(t, w.Body.String(), `id="delete-confirm"`)
		_, ok = findByName(listProducts(t, app.Handler), "Ginger")
		assert.True(t, ok)

		w = postForm(t, app.Handler, path, url.Values{"confirmed": {"true"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Product deleted successfully")

		_, ok = findByName(listProducts(t, app.Handler), "Ginger")
		assert.False(t, ok)

		value, ok, err := s.Get(context.Background(), store.KeyUserProducts)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `[]`, value)
	})

	t.Run("legacy keys are migrated", func(t *testing.T) {
		CleanupStore(t, s)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, store.LegacyKeyUser, `{"id":1,"name":"Hari","email":"hari@example.com","token":"demo_token_1"}`))

		app := NewApp(t, s, board, "home")

		w := get(t, app.Handler, "/")
		assert.Contains(t, w.Body.String(), `id="user-menu"`)
		assert.Contains(t, w.Body.String(), "Hari")

		_, ok, err := s.Get(ctx, store.LegacyKeyUser)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = s.Get(ctx, store.KeyUser)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unreachable price board falls back", func(t *testing.T) {
		CleanupStore(t, s)
		board.SetFailing(true)
		defer board.SetFailing(false)

		app := NewApp(t, s, board, "home")

		w := get(t, app.Handler, "/products")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Rice")
		assert.Contains(t, w.Body.String(), "Failed to load products")

		toast, ok := app.Toaster.Current()
		require.True(t, ok)
		assert.Equal(t, "Failed to load products", toast.Message)
	})

	t.Run("API rejects unknown category", func(t *testing.T) {
		app := NewApp(t, s, board, "home")

		w := get(t, app.Handler, "/api/products?category=toys")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_CATEGORY")
	})
}
