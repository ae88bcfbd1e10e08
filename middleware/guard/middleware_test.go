package guard_test

import (
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	auth "github.com/bazarhub/go-auth"
	"github.com/bazarhub/go-auth/middleware/guard"
)

// routeMock overrides Path() and Method() from the base mock context
type routeMock struct {
	*router.MockContext
	path   string
	method string
}

func (m *routeMock) Path() string   { return m.path }
func (m *routeMock) Method() string { return m.method }

func newRouteMock(path, method string) *routeMock {
	return &routeMock{
		MockContext: router.NewMockContext(),
		path:        path,
		method:      method,
	}
}

func passthroughErrorHandler(_ router.Context, err error) error {
	return err
}

func nextHandler(ctx router.Context) error {
	return ctx.Next()
}

func TestMiddlewareRequiresGuard(t *testing.T) {
	assert.Panics(t, func() {
		_ = guard.Middleware()(nextHandler)(newRouteMock("/", "GET"))
	})
}

func TestMiddlewarePublicPathSkipsAuthentication(t *testing.T) {
	service := &mockService{}
	g := guard.New(service, guard.DefaultRoutePolicy())

	ctx := newRouteMock("/auth/login", "POST")

	err := guard.Middleware(guard.Config{Guard: g})(nextHandler)(ctx)

	assert.NoError(t, err)
	assert.True(t, ctx.NextCalled)
	service.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestMiddlewareFilterSkips(t *testing.T) {
	service := &mockService{}
	g := guard.New(service, guard.DefaultRoutePolicy())

	ctx := newRouteMock("/api/orders", "GET")

	err := guard.Middleware(guard.Config{
		Guard: g,
		Filter: func(c router.Context) bool {
			return c.Path() == "/api/orders"
		},
	})(nextHandler)(ctx)

	assert.NoError(t, err)
	assert.True(t, ctx.NextCalled)
	service.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestMiddlewareMissingHeader(t *testing.T) {
	service := &mockService{}
	g := guard.New(service, guard.DefaultRoutePolicy())

	ctx := newRouteMock("/api/orders", "GET")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("")

	err := guard.Middleware(guard.Config{
		Guard:        g,
		ErrorHandler: passthroughErrorHandler,
	})(nextHandler)(ctx)

	assert.ErrorIs(t, err, auth.ErrMissingAuthorizationHeader)
	assert.False(t, ctx.NextCalled)
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	service := &mockService{}
	g := guard.New(service, guard.DefaultRoutePolicy())

	ctx := newRouteMock("/api/orders", "GET")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("Basic abc")

	err := guard.Middleware(guard.Config{
		Guard:        g,
		ErrorHandler: passthroughErrorHandler,
	})(nextHandler)(ctx)

	assert.ErrorIs(t, err, auth.ErrInvalidAuthorizationHeader)
	assert.False(t, ctx.NextCalled)
}

func TestMiddlewareRejectedToken(t *testing.T) {
	service := &mockService{}
	service.On("ValidateToken", "bad.jwt.token").Return(auth.Denied("invalid or expired token"))
	g := guard.New(service, guard.DefaultRoutePolicy())

	ctx := newRouteMock("/api/orders", "GET")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer bad.jwt.token")

	err := guard.Middleware(guard.Config{
		Guard:        g,
		ErrorHandler: passthroughErrorHandler,
	})(nextHandler)(ctx)

	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	assert.False(t, ctx.NextCalled)
	service.AssertExpectations(t)
}

func TestMiddlewareValidToken(t *testing.T) {
	service := &mockService{}
	result := auth.Authorized(42, "+989120000001", auth.RoleBuyer)
	service.On("ValidateToken", "good.jwt.token").Return(result)
	g := guard.New(service, guard.DefaultRoutePolicy())

	ctx := newRouteMock("/api/orders", "GET")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer good.jwt.token")
	ctx.On("Locals", "user", result).Return(nil)

	err := guard.Middleware(guard.Config{Guard: g})(nextHandler)(ctx)

	assert.NoError(t, err)
	assert.True(t, ctx.NextCalled)
	service.AssertExpectations(t)
	ctx.AssertExpectations(t)
}

func TestMiddlewareRoleEnforcement(t *testing.T) {
	policy := guard.NewRoutePolicy(nil, []guard.PolicyEntry{
		{PathPrefix: "/api/admin", Role: auth.RoleAdmin},
	})

	t.Run("wrong role is rejected", func(t *testing.T) {
		service := &mockService{}
		service.On("ValidateToken", "buyer.jwt.token").
			Return(auth.Authorized(42, "+989120000001", auth.RoleBuyer))
		g := guard.New(service, policy)

		ctx := newRouteMock("/api/admin/users", "GET")
		ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer buyer.jwt.token")

		err := guard.Middleware(guard.Config{
			Guard:        g,
			ErrorHandler: passthroughErrorHandler,
		})(nextHandler)(ctx)

		assert.ErrorIs(t, err, guard.ErrInsufficientRole)
		assert.False(t, ctx.NextCalled)
	})

	t.Run("required role passes", func(t *testing.T) {
		service := &mockService{}
		result := auth.Authorized(1, "+989120000002", auth.RoleAdmin)
		service.On("ValidateToken", "admin.jwt.token").Return(result)
		g := guard.New(service, policy)

		ctx := newRouteMock("/api/admin/users", "GET")
		ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer admin.jwt.token")
		ctx.On("Locals", "user", result).Return(nil)

		err := guard.Middleware(guard.Config{Guard: g})(nextHandler)(ctx)

		assert.NoError(t, err)
		assert.True(t, ctx.NextCalled)
	})
}

func TestMiddlewareCustomContextKey(t *testing.T) {
	service := &mockService{}
	result := auth.Authorized(42, "+989120000001", auth.RoleBuyer)
	service.On("ValidateToken", "good.jwt.token").Return(result)
	g := guard.New(service, guard.DefaultRoutePolicy())

	ctx := newRouteMock("/api/orders", "GET")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer good.jwt.token")
	ctx.On("Locals", "identity", result).Return(nil)

	err := guard.Middleware(guard.Config{
		Guard:      g,
		ContextKey: "identity",
	})(nextHandler)(ctx)

	assert.NoError(t, err)
	ctx.AssertExpectations(t)
}

func TestMiddlewareCustomSuccessHandler(t *testing.T) {
	service := &mockService{}
	result := auth.Authorized(42, "+989120000001", auth.RoleBuyer)
	service.On("ValidateToken", "good.jwt.token").Return(result)
	g := guard.New(service, guard.DefaultRoutePolicy())

	ctx := newRouteMock("/api/orders", "GET")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer good.jwt.token")
	ctx.On("Locals", "user", result).Return(nil)

	called := false
	err := guard.Middleware(guard.Config{
		Guard: g,
		SuccessHandler: func(c router.Context) error {
			called = true
			return nil
		},
	})(nextHandler)(ctx)

	assert.NoError(t, err)
	assert.True(t, called)
	assert.False(t, ctx.NextCalled)
}

func TestResultFromContext(t *testing.T) {
	result := auth.Authorized(42, "+989120000001", auth.RoleBuyer)

	t.Run("returns the stored result", func(t *testing.T) {
		ctx := newRouteMock("/api/orders", "GET")
		ctx.On("Locals", "user").Return(result)

		got, ok := guard.ResultFromContext(ctx, "")
		assert.True(t, ok)
		assert.Equal(t, result, got)
	})

	t.Run("missing result", func(t *testing.T) {
		ctx := newRouteMock("/api/orders", "GET")
		ctx.On("Locals", "user").Return(nil)

		_, ok := guard.ResultFromContext(ctx, "user")
		assert.False(t, ok)
	})
}
