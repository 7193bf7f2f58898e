package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/FAIR-DM/fairdm-sub001/internal/app"
	"github.com/FAIR-DM/fairdm-sub001/internal/config"
	"github.com/FAIR-DM/fairdm-sub001/internal/db"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
	"github.com/FAIR-DM/fairdm-sub001/internal/rbac"
)

// newCheckCmd builds and validates the full plugin registry the way the
// server does at startup. The non-zero exit on validation errors makes
// it suitable as a CI gate.
func newCheckCmd() *cobra.Command {
	var skipDB bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the plugin registry and print diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			catalog, err := app.BuildCatalog()
			if err != nil {
				return fmt.Errorf("failed to build entity catalog: %w", err)
			}
			registry, err := app.BuildRegistry(catalog)
			if err != nil {
				return fmt.Errorf("failed to build plugin registry: %w", err)
			}

			var opts []plugin.ValidateOption
			if !skipDB {
				cfg := config.Load()
				database, err := db.New(ctx, cfg.DatabaseURL)
				if err != nil {
					log.Printf("WARNING: database unavailable, skipping permission vocabulary check: %v", err)
				} else {
					defer database.Close()
					opts = append(opts, plugin.WithPermissionLister(rbac.NewEngine(database.Pool)))
				}
			}

			diags := plugin.Validate(ctx, registry, opts...)
			for _, d := range diags {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			if plugin.HasErrors(diags) {
				return fmt.Errorf("plugin registry has validation errors")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d entity types, %d diagnostics\n",
				len(registry.Types()), len(diags))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipDB, "skip-db", false, "do not consult the database for the permission vocabulary")
	return cmd
}
