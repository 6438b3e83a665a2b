package main

import (
	"fmt"

	"krisik-bazar/internal/config"
	"krisik-bazar/internal/store"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Rename legacy storage keys and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logger := config.NewLogger(cfg.Logger)
			ctx := cmd.Context()

			s, closeStore, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Migrate(ctx, s, store.LegacyRenames, logger); err != nil {
				return fmt.Errorf("failed to migrate store: %w", err)
			}

			logger.Info().Str("backend", cfg.Store.Backend).Msg("store migration completed")
			return nil
		},
	}
}
