// Package guard is the single enforcement point between inbound requests
// and protected operations: it parses bearer headers, authenticates tokens
// through the auth service, and applies the route policy table.
package guard

import (
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"

	auth "github.com/bazarhub/go-auth"
)

// Fixed denial messages. Nothing attacker-supplied is ever reflected back.
const (
	msgMissingAuthorizationHeader = "missing authorization header"
	msgInvalidAuthorizationHeader = "invalid authorization header format"
	msgInsufficientRole           = "insufficient role"
)

// ErrInsufficientRole distinguishes a 403 from the 401 tier in error handlers
var ErrInsufficientRole = goerrors.New(msgInsufficientRole, goerrors.CategoryAuth).
	WithTextCode("INSUFFICIENT_ROLE")

// Guard authenticates requests and enforces the route policy
type Guard struct {
	service auth.Service
	policy  *RoutePolicy
	logger  auth.Logger
}

// New creates a Guard over the given service and policy. A nil policy means
// everything requires authentication and no route needs a specific role.
func New(service auth.Service, policy *RoutePolicy) *Guard {
	if policy == nil {
		policy = NewRoutePolicy(nil, nil)
	}
	return &Guard{
		service: service,
		policy:  policy,
	}
}

func (g *Guard) WithLogger(logger auth.Logger) *Guard {
	g.logger = logger
	return g
}

func (g *Guard) debug(format string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(format, args...)
	}
}

// Authenticate reads an Authorization header value and authenticates the
// bearer token inside it
func (g *Guard) Authenticate(header string) auth.AuthResult {
	if header == "" {
		return auth.Denied(msgMissingAuthorizationHeader)
	}

	token := auth.ExtractBearerToken(header)
	if token == "" {
		return auth.Denied(msgInvalidAuthorizationHeader)
	}

	return g.AuthenticateToken(token)
}

// AuthenticateToken authenticates a raw token string. It is total: empty,
// oversized, binary, or injection-shaped input degrades to an
// unauthenticated result with a fixed message.
func (g *Guard) AuthenticateToken(token string) auth.AuthResult {
	result := g.service.ValidateToken(token)
	if !result.Authenticated {
		g.debug("token rejected", "result", print.MaybePrettyJSON(result))
	}
	return result
}

// RequiresAuthentication is true for any path not listed public in the policy
func (g *Guard) RequiresAuthentication(path string) bool {
	return g.policy.RequiresAuthentication(path)
}

// RequiredRole looks up the immutable policy table; unmatched pairs default
// to authenticated access with no specific role
func (g *Guard) RequiredRole(path, method string) (auth.UserRole, bool) {
	return g.policy.RequiredRole(path, method)
}

// HasRole is an exact, case-sensitive match against the single role carried
// by the result; always false for unauthenticated results.
func HasRole(result auth.AuthResult, role auth.UserRole) bool {
	return result.Authenticated && result.Role == role
}

// HasAnyRole is true when the result carries any of the given roles
func HasAnyRole(result auth.AuthResult, roles ...auth.UserRole) bool {
	if !result.Authenticated {
		return false
	}
	for _, role := range roles {
		if result.Role == role {
			return true
		}
	}
	return false
}

// IsSameUserOrAdmin gates own-resource access: the subject either is the
// target user or holds the admin role
func IsSameUserOrAdmin(result auth.AuthResult, targetUserID int64) bool {
	if !result.Authenticated {
		return false
	}
	return result.UserID == targetUserID || result.Role.IsAdmin()
}

// ExtractUserIDFromPath parses the numeric path segment following the given
// keyword, e.g. keyword "users" in "/api/users/42/profile" yields 42. It
// never panics; missing or non-numeric segments return false.
func ExtractUserIDFromPath(path, keyword string) (int64, bool) {
	if keyword == "" {
		return 0, false
	}

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment != keyword || i+1 >= len(segments) {
			continue
		}
		id, err := strconv.ParseInt(segments[i+1], 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	}
	return 0, false
}
