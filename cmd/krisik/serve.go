package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"krisik-bazar/internal/config"
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var initialPage string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the marketplace HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if initialPage != "" {
				cfg.UI.InitialPage = initialPage
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&initialPage, "page", "", "page shown first (overrides INITIAL_PAGE)")

	return cmd
}

// buildHandler assembles the marketplace and returns its HTTP handler.
func buildHandler(ctx context.Context, cfg *config.Config, s store.Store, reg prometheus.Registerer, gatherer prometheus.Gatherer, logger zerolog.Logger) (http.Handler, error) {
	pages, err := page.NewRouter(cfg.UI.InitialPage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize page router: %w", err)
	}

	toaster := notify.NewSlot()
	dispatcher := event.NewDispatcher()
	validator := validation.New()

	client := listing.NewClient(cfg.Listing.URL, cfg.Listing.Timeout, logger)
	fetcher := listing.NewFetcher(client, toaster, logger)

	repo := repository.NewProductRepository(s, logger)
	sessions := session.NewManager(s, dispatcher, validator, logger)
	market := service.NewMarketplace(repo, sessions, pages, fetcher, toaster, dispatcher, validator, logger)
	market.Start(ctx)

	productService := service.NewProductService(repo, market, logger)

	return router.New(
		handler.NewPageHandler(market, logger),
		handler.NewProductHandler(productService, logger),
		cfg.Auth.APIKey,
		reg,
		gatherer,
		logger,
	), nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("backend", cfg.Store.Backend).Msg("starting krisik bazar server")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	backend, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	mux, err := buildHandler(ctx, cfg, store.NewMigrating(backend, logger), prometheus.DefaultRegisterer, prometheus.DefaultGatherer, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
