package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited marks endpoints that serve static data: the health check and the template
// catalog. "/templates/" also covers "/templates/{id}".
var unlimited = []string{"/health", "/templates", "/templates/"}

// MatchEndpoint returns the configuration for a request path and method, or nil when
// the default limit applies. An exact path wins over a prefix ("/wizard/" matches
// "/wizard/create"), and among prefixes the longest wins. Catalog reads and the health
// check match a zero Limit, meaning unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && isUnlimited(path) {
		return &EndpointConfig{Path: path, Method: method}
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if best == nil || len(config.Path) > len(best.Path) {
				best = config
			}
		}
	}
	return best
}

func isUnlimited(path string) bool {
	for _, p := range unlimited {
		if path == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(path, p) && !strings.Contains(path[len(p):], "/")) {
			return true
		}
	}
	return false
}
