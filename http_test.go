package auth_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/bazarhub/go-auth"
)

// ctrlContext stubs just the router.Context surface the controller touches.
// Unstubbed methods panic through the embedded nil interface.
type ctrlContext struct {
	router.Context

	body   []byte
	locals map[string]any

	status   int
	jsonCode int
	jsonBody any
	sent     string
}

func newCtrlContext() *ctrlContext {
	return &ctrlContext{locals: map[string]any{}}
}

func (c *ctrlContext) withBody(t *testing.T, v any) *ctrlContext {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	c.body = raw
	return c
}

func (c *ctrlContext) Context() context.Context { return context.Background() }

func (c *ctrlContext) Bind(i any) error {
	return json.Unmarshal(c.body, i)
}

func (c *ctrlContext) Locals(key any, value ...any) any {
	name, _ := key.(string)
	if len(value) > 0 {
		c.locals[name] = value[0]
		return nil
	}
	return c.locals[name]
}

func (c *ctrlContext) Status(code int) router.Context {
	c.status = code
	return c
}

func (c *ctrlContext) SendString(s string) error {
	c.sent = s
	return nil
}

func (c *ctrlContext) JSON(code int, val any) error {
	c.jsonCode = code
	c.jsonBody = val
	return nil
}

func newTestController(t *testing.T) (*auth.AuthController, *auth.AuthServiceImpl) {
	t.Helper()
	service, _ := newTestService(t)
	controller := auth.NewAuthController(auth.WithControllerService(service))
	return controller, service
}

func TestControllerRequiresService(t *testing.T) {
	assert.Panics(t, func() {
		auth.NewAuthController()
	})
}

func TestRegistrationCreate(t *testing.T) {
	t.Run("creates a user", func(t *testing.T) {
		controller, _ := newTestController(t)

		ctx := newCtrlContext().withBody(t, auth.RegisterUserMessage{
			Phone:    "09120002001",
			Password: "secret-password",
		})

		require.NoError(t, controller.RegistrationCreate(ctx))
		assert.Equal(t, 201, ctx.jsonCode)

		user, ok := ctx.jsonBody.(*auth.User)
		require.True(t, ok)
		assert.Equal(t, "+989120002001", user.Phone)
	})

	t.Run("maps duplicate phone to conflict", func(t *testing.T) {
		controller, service := newTestController(t)
		registerTestUser(t, service, "09120002002")

		ctx := newCtrlContext().withBody(t, auth.RegisterUserMessage{
			Phone:    "09120002002",
			Password: "secret-password",
		})

		require.NoError(t, controller.RegistrationCreate(ctx))
		assert.Equal(t, 409, ctx.jsonCode)
	})

	t.Run("maps validation failure to bad request", func(t *testing.T) {
		controller, _ := newTestController(t)

		ctx := newCtrlContext().withBody(t, auth.RegisterUserMessage{
			Phone:    "09120002003",
			Password: "short",
		})

		require.NoError(t, controller.RegistrationCreate(ctx))
		assert.Equal(t, 400, ctx.jsonCode)
	})
}

func TestLoginPost(t *testing.T) {
	t.Run("returns the token pair", func(t *testing.T) {
		controller, service := newTestController(t)
		registerTestUser(t, service, "09120002010")

		ctx := newCtrlContext().withBody(t, auth.LoginRequest{
			Phone:    "09120002010",
			Password: "secret-password",
		})

		require.NoError(t, controller.LoginPost(ctx))
		assert.Equal(t, 200, ctx.jsonCode)

		result, ok := ctx.jsonBody.(auth.AuthResult)
		require.True(t, ok)
		assert.True(t, result.Authenticated)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("wrong credentials respond unauthorized", func(t *testing.T) {
		controller, service := newTestController(t)
		registerTestUser(t, service, "09120002011")

		ctx := newCtrlContext().withBody(t, auth.LoginRequest{
			Phone:    "09120002011",
			Password: "wrong-password",
		})

		require.NoError(t, controller.LoginPost(ctx))
		assert.Equal(t, 401, ctx.jsonCode)
	})

	t.Run("missing fields respond bad request", func(t *testing.T) {
		controller, _ := newTestController(t)

		ctx := newCtrlContext().withBody(t, auth.LoginRequest{})

		require.NoError(t, controller.LoginPost(ctx))
		assert.Equal(t, 400, ctx.jsonCode)
	})
}

func TestRefreshPost(t *testing.T) {
	controller, service := newTestController(t)
	registerTestUser(t, service, "09120002020")
	login := service.Login(context.Background(), "09120002020", "secret-password")
	require.True(t, login.Authenticated)

	t.Run("exchanges the refresh token", func(t *testing.T) {
		ctx := newCtrlContext().withBody(t, auth.RefreshRequest{
			RefreshToken: login.RefreshToken,
		})

		require.NoError(t, controller.RefreshPost(ctx))
		assert.Equal(t, 200, ctx.jsonCode)

		result, ok := ctx.jsonBody.(auth.AuthResult)
		require.True(t, ok)
		assert.True(t, result.IsRefresh)
	})

	t.Run("access token responds unauthorized", func(t *testing.T) {
		ctx := newCtrlContext().withBody(t, auth.RefreshRequest{
			RefreshToken: login.AccessToken,
		})

		require.NoError(t, controller.RefreshPost(ctx))
		assert.Equal(t, 401, ctx.jsonCode)
	})
}

func TestLogoutPost(t *testing.T) {
	t.Run("acknowledges an authenticated caller", func(t *testing.T) {
		controller, _ := newTestController(t)

		ctx := newCtrlContext()
		ctx.locals["user"] = auth.Authorized(42, "+989120000001", auth.RoleBuyer)

		require.NoError(t, controller.LogoutPost(ctx))
		assert.Equal(t, 200, ctx.jsonCode)
	})

	t.Run("rejects an anonymous caller", func(t *testing.T) {
		controller, _ := newTestController(t)

		ctx := newCtrlContext()
		require.NoError(t, controller.LogoutPost(ctx))
		assert.Equal(t, 401, ctx.status)
	})
}

func TestProfileHandlers(t *testing.T) {
	controller, service := newTestController(t)
	user := registerTestUser(t, service, "09120002030")
	result := auth.Authorized(user.ID, user.Phone, user.Role)

	t.Run("show", func(t *testing.T) {
		ctx := newCtrlContext()
		ctx.locals["user"] = result

		require.NoError(t, controller.ProfileShow(ctx))
		assert.Equal(t, 200, ctx.jsonCode)

		got, ok := ctx.jsonBody.(*auth.User)
		require.True(t, ok)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("update", func(t *testing.T) {
		ctx := newCtrlContext().withBody(t, auth.UpdateProfileMessage{FirstName: "Sara"})
		ctx.locals["user"] = result

		require.NoError(t, controller.ProfileUpdate(ctx))
		assert.Equal(t, 200, ctx.jsonCode)

		got, ok := ctx.jsonBody.(*auth.User)
		require.True(t, ok)
		assert.Equal(t, "Sara", got.FirstName)
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		ctx := newCtrlContext()
		require.NoError(t, controller.ProfileShow(ctx))
		assert.Equal(t, 401, ctx.status)
	})
}
