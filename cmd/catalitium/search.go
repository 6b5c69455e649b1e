package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/catalitium/internal/observability"
	"github.com/jonathan/catalitium/internal/salaryref"
	"github.com/jonathan/catalitium/internal/search"
	"github.com/jonathan/catalitium/internal/types"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		req    types.SearchRequest
		asJSON bool
		jobs   string
		salary string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the listing dataset from the command line",
		Long:  `Run one search against the configured datasets and print the requested page.`,
		Example: `  catalitium search --title "data engineer >80k" --country germany
  catalitium search --title swe --page 2 --per-page 10 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.settings()
			if err != nil {
				return err
			}
			if jobs != "" {
				cfg.JobsPath = jobs
			}
			if salary != "" {
				cfg.SalaryPath = salary
			}
			if !cmd.Flags().Changed("per-page") {
				req.PageSize = cfg.PerPage
			}
			if err := req.Validate(); err != nil {
				return fmt.Errorf("invalid search: %w", err)
			}

			logger, err := newLogger(cfg.Verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			svc := search.NewService(search.Config{
				JobsPath:   cfg.JobsPath,
				SalaryPath: cfg.SalaryPath,
			}, salaryref.NewFileCache(), logger)

			result, err := svc.Search(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintSearchResult(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "Title query; may carry a salary expression such as \"80k-100k\" or \">90k\"")
	cmd.Flags().StringVar(&req.Country, "country", "", "Country name or ISO code")
	cmd.Flags().IntVar(&req.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&req.PageSize, "per-page", types.MaxPageSize, "Listings per page (max 100)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().StringVar(&jobs, "jobs", "", "Listing dataset path (overrides JOBS_CSV and the config file)")
	cmd.Flags().StringVar(&salary, "salary", "", "Salary reference path (overrides SALARY_CSV and the config file)")
	return cmd
}
