package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one method and path. A path ending in "/" matches every path
// below it. A Limit of zero leaves the route unlimited.
type Rule struct {
	Method string
	Path   string
	Limit  int
	Window time.Duration
	Burst  int
}

func (r Rule) key() string {
	return r.Method + " " + r.Path
}

func (r Rule) capacity() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

func (r Rule) matches(method, path string) bool {
	if r.Method != method {
		return false
	}
	if strings.HasSuffix(r.Path, "/") {
		return strings.HasPrefix(path, r.Path)
	}
	return r.Path == path
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	Default Rule
	Rules   []Rule
	IdleTTL time.Duration
	Sweep   time.Duration
	Allowed map[string]bool
	Blocked map[string]bool
}

// DefaultRules protect the write path harder than reads. /health is never
// limited.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "GET", Path: "/health"},
		{Method: "POST", Path: "/subscribe", Limit: 5, Window: time.Minute, Burst: 5},
		{Method: "GET", Path: "/jobs", Limit: 120, Window: time.Minute, Burst: 30},
	}
}

// LoadConfig reads RATE_LIMIT_* settings from the environment.
func LoadConfig() *Config {
	return configFrom(os.Getenv)
}

func configFrom(getenv func(string) string) *Config {
	env := envReader(getenv)
	if !env.boolean("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	limit := env.integer("RATE_LIMIT_DEFAULT_LIMIT", 600)
	return &Config{
		Enabled: true,
		Default: Rule{
			Limit:  limit,
			Window: env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
			Burst:  limit,
		},
		Rules:   DefaultRules(),
		IdleTTL: env.duration("RATE_LIMIT_IDLE_TTL", time.Hour),
		Sweep:   env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Allowed: parseIPList(env("RATE_LIMIT_WHITELIST")),
		Blocked: parseIPList(env("RATE_LIMIT_BLACKLIST")),
	}
}

// Match returns the rule for a request, falling back to the default rule.
func (c *Config) Match(method, path string) Rule {
	for _, r := range c.Rules {
		if r.matches(method, path) {
			return r
		}
	}
	return c.Default
}

type envReader func(string) string

func (e envReader) integer(key string, def int) int {
	if v, err := strconv.Atoi(e(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) boolean(key string, def bool) bool {
	if v, err := strconv.ParseBool(e(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(e(key)); err == nil {
		return v
	}
	return def
}

func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
