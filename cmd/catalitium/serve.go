package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/catalitium/internal/db"
	"github.com/jonathan/catalitium/internal/salaryref"
	"github.com/jonathan/catalitium/internal/search"
	"github.com/jonathan/catalitium/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  `Start an HTTP server exposing GET /jobs, POST /subscribe and GET /health.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.settings()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			logger, err := newLogger(cfg.Verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			store, err := db.Open(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			svc := search.NewService(search.Config{
				JobsPath:   cfg.JobsPath,
				SalaryPath: cfg.SalaryPath,
			}, salaryref.NewFileCache(), logger.Named("search"))

			logger.Info("serving listings",
				zap.String("jobs", cfg.JobsPath),
				zap.String("salary", cfg.SalaryPath),
				zap.Int("port", cfg.Port))

			srv := server.New(server.Config{
				Port:    cfg.Port,
				PerPage: cfg.PerPage,
			}, svc, store, logger.Named("http"))

			return srv.Start(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides PORT and the config file)")
	return cmd
}
