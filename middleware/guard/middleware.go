package guard

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	auth "github.com/bazarhub/go-auth"
)

// Config tunes the router middleware. Guard is the only required field.
type Config struct {
	Guard *Guard
	// Filter skips the middleware entirely when it returns true
	Filter func(router.Context) bool
	// SuccessHandler runs after authentication and role checks pass
	SuccessHandler router.HandlerFunc
	// ErrorHandler maps denials to responses. The error is one of the auth
	// sentinels or ErrInsufficientRole.
	ErrorHandler router.ErrorHandler
	// ContextKey is where the AuthResult is stored in router locals
	ContextKey string
	// ContextEnricher propagates the result into the standard Go context
	// when provided
	ContextEnricher func(c context.Context, result auth.AuthResult) context.Context
}

// Middleware enforces bearer authentication and route policy on every
// request whose path the policy does not list as public.
func Middleware(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := getDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			path := ctx.Path()
			if !cfg.Guard.RequiresAuthentication(path) {
				return ctx.Next()
			}

			header := ctx.GetString(router.HeaderAuthorization, "")
			result := cfg.Guard.Authenticate(header)
			if !result.Authenticated {
				return cfg.ErrorHandler(ctx, denialError(result))
			}

			if role, ok := cfg.Guard.RequiredRole(path, ctx.Method()); ok && !HasRole(result, role) {
				return cfg.ErrorHandler(ctx, ErrInsufficientRole)
			}

			ctx.Locals(cfg.ContextKey, result)

			if cfg.ContextEnricher != nil {
				ctx.SetContext(cfg.ContextEnricher(ctx.Context(), result))
			}

			return cfg.SuccessHandler(ctx)
		}
	}
}

func getDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Guard == nil {
		panic("AUTH: guard middleware configuration: Guard is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	return cfg
}

func defaultErrorHandler(ctx router.Context, err error) error {
	if goerrors.Is(err, ErrInsufficientRole) {
		return ctx.Status(router.StatusForbidden).SendString(msgInsufficientRole)
	}
	return ctx.Status(router.StatusUnauthorized).SendString("Invalid or expired token")
}

// denialError maps a failed AuthResult to the matching sentinel so error
// handlers can branch without string matching
func denialError(result auth.AuthResult) error {
	switch result.ErrorMessage {
	case msgMissingAuthorizationHeader:
		return auth.ErrMissingAuthorizationHeader
	case msgInvalidAuthorizationHeader:
		return auth.ErrInvalidAuthorizationHeader
	default:
		return auth.ErrTokenInvalid
	}
}

// ResultFromContext reads the AuthResult the middleware stored in router
// locals
func ResultFromContext(ctx router.Context, key string) (auth.AuthResult, bool) {
	if key == "" {
		key = "user"
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return auth.AuthResult{}, false
	}
	result, ok := raw.(auth.AuthResult)
	return result, ok
}
