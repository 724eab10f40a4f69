package ratelimit

import (
	"net/http"
	"strings"
)

// probes are never limited so health checks and status polling keep working
// while a client is throttled.
var probes = map[string]bool{
	"/health":        true,
	"/engine/status": true,
}

// unlimited is returned for probes.
var unlimited = EndpointConfig{}

// MatchEndpoint returns the configuration for method and path, preferring an exact
// path over a "/"-suffixed prefix. It returns nil when nothing matches.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && probes[path] {
		u := unlimited
		return &u
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if prefix == nil && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			prefix = c
		}
	}
	return prefix
}
