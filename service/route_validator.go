package service

import "strings"

// DefaultOpenPaths lists the path patterns exempt from authentication.
// A pattern ending in "/*" matches the prefix before it (including the
// bare prefix itself); any other pattern matches the path exactly.
// Patterns are evaluated in order and the first match wins, so a request
// is secured iff no pattern matches.
var DefaultOpenPaths = []string{
	"/api/v1/auth/login",
	"/api/v1/auth/register",
	"/api/v1/auth/refresh",
	"/api/v1/auth/logout",
	"/api/v1/admin/login",
	"/api/v1/admin/signup",
	"/api/v1/users",
	"/api/v1/feature-flags/status",
	"/api/v1/locations/public/*",
	"/api/v1/files/public/*",
	// The revocation API is called by the identity service directly and
	// must not recurse through the authentication filter.
	"/api/v1/token/*",
	"/health",
	"/actuator/*",
	"/test/*",
	"/swagger/*",
}

// RouteValidator decides whether a request path requires a verified
// bearer token, based on an ordered set of explicit open-path patterns.
// Matching is exact-path or prefix-wildcard only; substring containment
// is deliberately not supported because it over-matches (an open
// fragment appearing inside an unrelated protected path would expose it).
type RouteValidator struct {
	patterns []string
}

// NewRouteValidator builds a validator over the given patterns, falling
// back to DefaultOpenPaths when none are configured.
func NewRouteValidator(openPaths []string) *RouteValidator {
	if len(openPaths) == 0 {
		openPaths = DefaultOpenPaths
	}
	return &RouteValidator{patterns: openPaths}
}

// IsSecured reports whether the given request path requires authentication.
func (v *RouteValidator) IsSecured(path string) bool {
	for _, pattern := range v.patterns {
		if matchPattern(pattern, path) {
			return false
		}
	}
	return true
}

func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}
