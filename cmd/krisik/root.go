package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "krisik",
		Short:         "Krisik Bazar agricultural marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCmd(), newMigrateCmd(), newCheckCmd())

	return cmd
}
