// Package main provides the catalitium CLI: the job search HTTP server and
// offline search commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/catalitium/internal/config"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "catalitium",
		Short:         "Job listing search with salary reference enrichment",
		Long:          "Catalitium searches a job listing dataset by title, country and salary, enriching listings with reference salaries for their city or country.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newServeCmd(opts), newSearchCmd(opts), newSearchesCmd(opts))
	return rootCmd
}

// settings resolves the configuration from the config file and environment.
func (o *rootOptions) settings() (*config.Config, error) {
	cfg, err := config.Resolve(o.configPath, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// newLogger returns a development logger in verbose mode and a production
// logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
