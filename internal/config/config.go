// Package config loads catalitium settings from a config file, the
// environment and built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/catalitium/internal/schemas"
	"github.com/jonathan/catalitium/internal/types"
)

// MaxPerPage caps the configured page size.
const MaxPerPage = types.MaxPageSize

// Config represents the settings that can be loaded from a JSON or YAML file.
// All fields are optional; missing values come from the environment or
// Defaults.
type Config struct {
	JobsPath    string `json:"jobs_path,omitempty" yaml:"jobs_path,omitempty"`       // Listing dataset (TAB by default)
	SalaryPath  string `json:"salary_path,omitempty" yaml:"salary_path,omitempty"`   // Salary reference dataset
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // postgres:// URL, sqlite:// URL or SQLite file path
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
	PerPage     int    `json:"per_page,omitempty" yaml:"per_page,omitempty"`
	Verbose     bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		JobsPath:    "jobs.csv",
		SalaryPath:  "salary.csv",
		DatabaseURL: "sqlite://catalitium.db",
		Port:        5000,
		PerPage:     MaxPerPage,
	}
}

// LoadConfig loads configuration from a JSON or YAML file. The format is
// chosen by extension (.yaml, .yml) and the document is checked against the
// embedded config schema before decoding.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		if err := schemas.Validate(schemas.Config, doc); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if !json.Valid(data) {
			return nil, fmt.Errorf("failed to parse config JSON: %s is not valid JSON", path)
		}
		if err := schemas.ValidateJSON(schemas.Config, data); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads JOBS_CSV, SALARY_CSV, DATABASE_URL (or DB_PATH), PORT and
// PER_PAGE. Unset or malformed values stay zero.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		JobsPath:    strings.TrimSpace(getenv("JOBS_CSV")),
		SalaryPath:  strings.TrimSpace(getenv("SALARY_CSV")),
		DatabaseURL: strings.TrimSpace(getenv("DATABASE_URL")),
		Port:        envInt(getenv, "PORT"),
		PerPage:     envInt(getenv, "PER_PAGE"),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = strings.TrimSpace(getenv("DB_PATH"))
	}
	return cfg
}

func envInt(getenv func(string) string, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(getenv(key)))
	if err != nil {
		return 0
	}
	return n
}

// Resolve layers the environment over an optional config file over
// Defaults and validates the result.
func Resolve(path string, getenv func(string) string) (*Config, error) {
	file := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	env := FromEnv(getenv)
	merged := env.MergeWithDefaults(*file)
	merged = merged.MergeWithDefaults(Defaults())
	merged.Verbose = file.Verbose

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.PerPage < 0 || c.PerPage > MaxPerPage {
		return fmt.Errorf("config error: 'per_page' must be between 1 and %d", MaxPerPage)
	}
	if c.JobsPath != "" {
		if info, err := os.Stat(c.JobsPath); err == nil && info.IsDir() {
			return fmt.Errorf("config error: jobs path is a directory: %s", c.JobsPath)
		}
	}
	if c.SalaryPath != "" {
		if info, err := os.Stat(c.SalaryPath); err == nil && info.IsDir() {
			return fmt.Errorf("config error: salary path is a directory: %s", c.SalaryPath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.JobsPath == "" {
		result.JobsPath = defaults.JobsPath
	}
	if result.SalaryPath == "" {
		result.SalaryPath = defaults.SalaryPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.PerPage == 0 {
		result.PerPage = defaults.PerPage
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
