package auth

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// AuthControllerRoutes holds the paths the controller mounts its handlers on
type AuthControllerRoutes struct {
	Register string
	Login    string
	Refresh  string
	Logout   string
	Profile  string
}

// AuthController exposes the Service as a JSON API. Protected routes expect
// the guard middleware to have stored an AuthResult under ContextKey.
type AuthController struct {
	Debug        bool
	Logger       Logger
	Service      Service
	Routes       *AuthControllerRoutes
	ContextKey   string
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerService(service Service) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Service = service
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithControllerRoutes(routes *AuthControllerRoutes) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if routes != nil {
			c.Routes = routes
		}
		return c
	}
}

func WithControllerContextKey(key string) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if key != "" {
			c.ContextKey = key
		}
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     defLogger{},
		ContextKey: "user",
		Routes: &AuthControllerRoutes{
			Register: "/auth/register",
			Login:    "/auth/login",
			Refresh:  "/auth/refresh",
			Logout:   "/auth/logout",
			Profile:  "/profile",
		},
	}
	c.ErrorHandler = c.defaultErrHandler

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing Service in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the controller on a router group. The guard
// middleware is expected to wrap the group; the public auth paths must be in
// its policy's public list.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("auth.register")
	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login")
	app.Post(controller.Routes.Refresh, controller.RefreshPost).
		SetName("auth.refresh")
	app.Post(controller.Routes.Logout, controller.LogoutPost).
		SetName("auth.logout")

	app.Get(controller.Routes.Profile, controller.ProfileShow).
		SetName("profile.get")
	app.Post(controller.Routes.Profile, controller.ProfileUpdate).
		SetName("profile.post")
}

// LoginRequest is the login payload
type LoginRequest struct {
	Phone    string `json:"phone" form:"phone"`
	Password string `json:"password" form:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phone, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// RefreshRequest is the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// RegistrationCreate handles POST Routes.Register
func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	msg := &RegisterUserMessage{}
	if err := ctx.Bind(msg); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid registration payload").
			WithCode(goerrors.CodeBadRequest))
	}

	user, err := a.Service.Register(ctx.Context(), *msg)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, user)
}

// LoginPost handles POST Routes.Login
func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := &LoginRequest{}
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid login payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload").
			WithCode(goerrors.CodeBadRequest))
	}

	result := a.Service.Login(ctx.Context(), payload.Phone, payload.Password)
	if !result.Authenticated {
		return ctx.JSON(router.StatusUnauthorized, result)
	}

	if a.Debug {
		a.Logger.Debug("login ok", "result", print.MaybePrettyJSON(result))
	}

	return ctx.JSON(router.StatusOK, result)
}

// RefreshPost handles POST Routes.Refresh
func (a *AuthController) RefreshPost(ctx router.Context) error {
	payload := &RefreshRequest{}
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid refresh payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid refresh payload").
			WithCode(goerrors.CodeBadRequest))
	}

	result := a.Service.RefreshToken(ctx.Context(), payload.RefreshToken)
	if !result.Authenticated {
		return ctx.JSON(router.StatusUnauthorized, result)
	}

	return ctx.JSON(router.StatusOK, result)
}

// LogoutPost handles POST Routes.Logout. The route must sit behind the guard
// middleware so the result is present.
func (a *AuthController) LogoutPost(ctx router.Context) error {
	result, ok := a.resultFromLocals(ctx)
	if !ok {
		return ctx.Status(router.StatusUnauthorized).SendString("Invalid or expired token")
	}

	message := a.Service.Logout(result.UserID)
	return ctx.JSON(router.StatusOK, map[string]string{"message": message})
}

// ProfileShow handles GET Routes.Profile
func (a *AuthController) ProfileShow(ctx router.Context) error {
	result, ok := a.resultFromLocals(ctx)
	if !ok {
		return ctx.Status(router.StatusUnauthorized).SendString("Invalid or expired token")
	}

	user, err := a.Service.GetProfile(ctx.Context(), result.UserID)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

// ProfileUpdate handles POST Routes.Profile
func (a *AuthController) ProfileUpdate(ctx router.Context) error {
	result, ok := a.resultFromLocals(ctx)
	if !ok {
		return ctx.Status(router.StatusUnauthorized).SendString("Invalid or expired token")
	}

	msg := &UpdateProfileMessage{}
	if err := ctx.Bind(msg); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid profile payload").
			WithCode(goerrors.CodeBadRequest))
	}

	user, err := a.Service.UpdateProfile(ctx.Context(), result.UserID, *msg)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

func (a *AuthController) resultFromLocals(ctx router.Context) (AuthResult, bool) {
	raw := ctx.Locals(a.ContextKey)
	if raw == nil {
		return AuthResult{}, false
	}
	result, ok := raw.(AuthResult)
	return result, ok && result.Authenticated
}

func (a *AuthController) defaultErrHandler(ctx router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	a.Logger.Info(
		"Controller error handler",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	code := richErr.Code
	if code == 0 {
		switch richErr.Category {
		case goerrors.CategoryValidation, goerrors.CategoryBadInput:
			code = router.StatusBadRequest
		case goerrors.CategoryAuth:
			code = router.StatusUnauthorized
		case goerrors.CategoryConflict:
			code = http.StatusConflict
		case goerrors.CategoryNotFound:
			code = http.StatusNotFound
		default:
			code = router.StatusInternalServerError
		}
	}

	return ctx.JSON(code, map[string]string{
		"error":     richErr.Message,
		"text_code": richErr.TextCode,
	})
}
