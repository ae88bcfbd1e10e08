package guard

import (
	"strings"

	auth "github.com/bazarhub/go-auth"
)

// PolicyEntry maps a path pattern and method to the role required to invoke
// it. An empty Method matches every method; an empty Role means any
// authenticated user may pass.
type PolicyEntry struct {
	PathPrefix string
	Method     string
	Role       auth.UserRole
}

// RoutePolicy is the immutable (path, method) -> required-role table plus
// the list of public path prefixes that skip authentication entirely. It is
// built once at process start and never mutated; entries match in
// declaration order, so list specific prefixes before general ones.
type RoutePolicy struct {
	public  []string
	entries []PolicyEntry
}

// NewRoutePolicy copies its inputs so later mutation of the caller's slices
// cannot change the table
func NewRoutePolicy(public []string, entries []PolicyEntry) *RoutePolicy {
	p := &RoutePolicy{
		public:  make([]string, len(public)),
		entries: make([]PolicyEntry, len(entries)),
	}
	copy(p.public, public)
	copy(p.entries, entries)

	for i := range p.entries {
		p.entries[i].Method = strings.ToUpper(p.entries[i].Method)
	}

	return p
}

// DefaultRoutePolicy leaves registration, login, refresh, and health probes
// public and requires authentication everywhere else with no specific role.
func DefaultRoutePolicy() *RoutePolicy {
	return NewRoutePolicy([]string{
		"/auth/register",
		"/auth/login",
		"/auth/refresh",
		"/health",
		"/status",
	}, nil)
}

// RequiresAuthentication is true for any path not explicitly listed public
func (p *RoutePolicy) RequiresAuthentication(path string) bool {
	for _, prefix := range p.public {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// RequiredRole looks up the role required for a (path, method) pair. The
// second return is false when no entry matches: authenticated access with no
// specific role.
func (p *RoutePolicy) RequiredRole(path, method string) (auth.UserRole, bool) {
	method = strings.ToUpper(method)
	for _, entry := range p.entries {
		if !strings.HasPrefix(path, entry.PathPrefix) {
			continue
		}
		if entry.Method != "" && entry.Method != method {
			continue
		}
		if entry.Role == "" {
			return "", false
		}
		return entry.Role, true
	}
	return "", false
}
