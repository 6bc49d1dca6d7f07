package middleware

import "strings"

// RouteClass is the access policy assigned to a request path.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteProtected
	RouteAuthOnly
)

// RouteTable is a static partition of path prefixes into protected,
// auth-only and public. Protected and AuthOnly must be disjoint; every path
// not matched by either list is public.
type RouteTable struct {
	Protected   []string
	AuthOnly    []string
	LoginPath   string
	LandingPath string
}

// Classify maps a request path to exactly one class. Protected wins over
// auth-only so a misconfigured overlap fails toward the safer branch.
func (t RouteTable) Classify(path string) RouteClass {
	for _, p := range t.Protected {
		if matchPrefix(path, p) {
			return RouteProtected
		}
	}
	for _, p := range t.AuthOnly {
		if matchPrefix(path, p) {
			return RouteAuthOnly
		}
	}
	return RoutePublic
}

// matchPrefix implements glob-style prefix matching: a pattern ending in "*"
// matches any path with the remaining prefix; otherwise the pattern matches
// itself and any path nested under it.
func matchPrefix(path, pattern string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(path, strings.TrimSuffix(pattern, "*"))
	}
	return path == pattern || strings.HasPrefix(path, pattern+"/")
}
