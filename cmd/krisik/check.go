package main

import (
	"context"
	"fmt"
	"io"

	"krisik-bazar/internal/config"
	"krisik-bazar/internal/store"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Connect to the configured store and report which keys it holds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logger := config.NewLogger(cfg.Logger)

			s, closeStore, err := openStore(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			fmt.Fprintf(cmd.OutOrStdout(), "store backend: %s\n", cfg.Store.Backend)
			return reportKeys(cmd.Context(), cmd.OutOrStdout(), s)
		},
	}
}

// reportKeys writes one line per known key saying whether it is set.
func reportKeys(ctx context.Context, w io.Writer, s store.Store) error {
	keys := []string{store.KeyUser, store.KeyUserProducts, store.LegacyKeyUser, store.LegacyKeyUserProducts}
	for _, key := range keys {
		value, ok, err := s.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			fmt.Fprintf(w, "%-28s absent\n", key)
			continue
		}
		fmt.Fprintf(w, "%-28s %d bytes\n", key, len(value))
	}
	return nil
}
