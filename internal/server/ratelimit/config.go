package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig limits one method and path. A Path ending in "/" matches every
// path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window; 0 disables limiting
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// LoadConfig reads the limiter configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", 60, strconv.Atoi),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envOr("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		IdleTTL:         envOr("RATE_LIMIT_IDLE_TTL", time.Hour, time.ParseDuration),
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the limits for endpoints that do more work than
// a plain read. Compiling to PDF or SVG spawns a typst process per request.
func DefaultEndpointConfigs() []EndpointConfig {
	render := func(method, path string) EndpointConfig {
		return EndpointConfig{Path: path, Method: method, Limit: 30, Window: time.Minute, Burst: 5}
	}
	return []EndpointConfig{
		render(http.MethodPost, "/render"),
		render(http.MethodPost, "/render/stream"),
		render(http.MethodGet, "/resumes/"),
		{Path: "/engine/initialize", Method: http.MethodPost, Limit: 10, Window: time.Minute, Burst: 2},
	}
}

// envOr parses the environment variable key, returning def when it is unset or
// does not parse.
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// clientSet parses a comma-separated list of client addresses.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, c := range strings.Split(list, ",") {
		if c = strings.TrimSpace(c); c != "" {
			set[c] = true
		}
	}
	return set
}
