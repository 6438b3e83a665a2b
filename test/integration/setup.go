package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"krisik-bazar/internal/event"
	"krisik-bazar/internal/handler"
	"krisik-bazar/internal/listing"
	"krisik-bazar/internal/notify"
	"krisik-bazar/internal/page"
	"krisik-bazar/internal/repository"
	"krisik-bazar/internal/router"
	"krisik-bazar/internal/service"
	"krisik-bazar/internal/session"
	"krisik-bazar/internal/store"
	"krisik-bazar/internal/validation"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testAPIKey = "test-api-key"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// NewPostgresStore opens the key-value store on the test database.
func NewPostgresStore(t *testing.T, testDB *TestDB) store.Store {
	t.Helper()

	s, err := store.NewPostgres(context.Background(), testDB.Pool, zerolog.Nop())
	require.NoError(t, err)

	return s
}

// CleanupStore removes every key the marketplace writes, legacy keys included.
func CleanupStore(t *testing.T, s store.Store) {
	t.Helper()

	ctx := context.Background()
	for _, key := range []string{store.KeyUser, store.KeyUserProducts, store.LegacyKeyUser, store.LegacyKeyUserProducts} {
		require.NoError(t, s.Remove(ctx, key))
	}
}

// PriceBoard is a fake remote price board.
type PriceBoard struct {
	*httptest.Server
	body     atomic.Value
	failing  atomic.Bool
	requests atomic.Int32
}

// NewPriceBoard starts a price board serving body as its JSON response.
func NewPriceBoard(t *testing.T, body string) *PriceBoard {
	t.Helper()

	b := &PriceBoard{}
	b.body.Store(body)
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		if b.failing.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(b.body.Load().(string)))
	}))
	t.Cleanup(b.Close)

	return b
}

// SetFailing makes the board answer every request with 503.
func (b *PriceBoard) SetFailing(failing bool) {
	b.failing.Store(failing)
}

// Requests returns how many requests the board has served.
func (b *PriceBoard) Requests() int {
	return int(b.requests.Load())
}

// App is a fully wired marketplace behind its HTTP router.
type App struct {
	Handler http.Handler
	Toaster *notify.Slot
}

// NewApp wires the marketplace on s the way the serve command does. Building a
// second App on the same store simulates a restart.
func NewApp(t *testing.T, s store.Store, board *PriceBoard, initialPage string) *App {
	t.Helper()

	logger := zerolog.Nop()
	ctx := context.Background()

	pages, err := page.NewRouter(initialPage, logger)
	require.NoError(t, err)

	toaster := notify.NewSlot()
	dispatcher := event.NewDispatcher()
	validator := validation.New()

	fetcher := listing.NewFetcher(listing.NewClient(board.URL, 5*time.Second, logger), toaster, logger)
	migrating := store.NewMigrating(s, logger)

	repo := repository.NewProductRepository(migrating, logger)
	sessions := session.NewManager(migrating, dispatcher, validator, logger)
	market := service.NewMarketplace(repo, sessions, pages, fetcher, toaster, dispatcher, validator, logger)
	market.Start(ctx)

	reg := prometheus.NewRegistry()
	h := router.New(
		handler.NewPageHandler(market, logger),
		handler.NewProductHandler(service.NewProductService(repo, market, logger), logger),
		testAPIKey,
		reg,
		reg,
		logger,
	)

	return &App{Handler: h, Toaster: toaster}
}
