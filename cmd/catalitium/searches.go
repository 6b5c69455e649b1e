package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/catalitium/internal/db"
	"github.com/jonathan/catalitium/internal/observability"
)

func newSearchesCmd(opts *rootOptions) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "searches",
		Short: "List recently logged searches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.settings()
			if err != nil {
				return err
			}

			store, err := db.Open(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			logs, err := store.RecentSearches(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if logs == nil {
					logs = []db.SearchLog{}
				}
				return enc.Encode(logs)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintSearchLog(logs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", db.DefaultSearchLimit, "Number of searches to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the log as JSON")
	return cmd
}
