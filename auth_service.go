package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Fixed denial messages. AuthResult error messages never echo
// attacker-supplied token or header content.
const (
	msgInvalidCredentials   = "invalid credentials"
	msgTokenInvalid         = "invalid or expired token"
	msgAccessTokenRequired  = "access token required"
	msgRefreshTokenRequired = "refresh token required"
	msgUserNotFound         = "user not found"
	msgLogoutAccepted       = "logout accepted; issued tokens remain valid until they expire"
)

// AuthServiceImpl implements the Service interface, binding the credential
// store and the token codec into the register/login/validate/refresh flow.
type AuthServiceImpl struct {
	store  CredentialStore
	codec  TokenCodec
	logger Logger
}

// Verify interface compliance
var _ Service = (*AuthServiceImpl)(nil)

// NewAuthService creates a new Service instance
func NewAuthService(store CredentialStore, codec TokenCodec) *AuthServiceImpl {
	return &AuthServiceImpl{
		store:  store,
		codec:  codec,
		logger: defLogger{},
	}
}

func (s *AuthServiceImpl) WithLogger(logger Logger) *AuthServiceImpl {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Register validates the payload, checks phone uniqueness, hashes the
// password, and persists a new user. The default role is buyer unless the
// payload names another valid role.
func (s *AuthServiceImpl) Register(ctx context.Context, msg RegisterUserMessage) (*User, error) {
	if err := msg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	role := RoleBuyer
	if msg.Role != "" {
		parsed, ok := ParseRole(msg.Role)
		if !ok {
			return nil, goerrors.Wrap(ErrInvalidInput, goerrors.CategoryValidation, "unknown role")
		}
		role = parsed
	}

	phone, err := NormalizePhone(msg.Phone)
	if err != nil {
		return nil, err
	}

	if existing, err := s.store.FindByPhone(ctx, phone); err == nil && existing != nil {
		return nil, ErrDuplicatePhone
	} else if err != nil && !IsNotFoundError(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check phone uniqueness")
	}

	hash, err := HashPassword(msg.Password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		FirstName:    msg.FirstName,
		LastName:     msg.LastName,
		Email:        msg.Email,
		Address:      msg.Address,
	}

	created, err := s.store.Save(ctx, user)
	if err != nil {
		// Two concurrent registrations can race past the lookup above; the
		// store's unique constraint is the authoritative check.
		if IsDuplicatePhoneError(err) {
			return nil, ErrDuplicatePhone
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
	}

	s.logger.Info("registered user", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// Login verifies the phone/password pair and issues a token pair. Unknown
// phone, inactive user, and password mismatch all collapse into the same
// invalid-credentials result.
func (s *AuthServiceImpl) Login(ctx context.Context, phone, password string) AuthResult {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return Denied(msgInvalidCredentials)
	}

	user, err := s.store.FindByPhone(ctx, normalized)
	if err != nil || !user.CanAuthenticate() {
		s.logger.Debug("login rejected", "reason", "unknown or inactive user")
		return Denied(msgInvalidCredentials)
	}

	if err := s.store.VerifyPassword(password, user.PasswordHash); err != nil {
		s.logger.Debug("login rejected", "reason", "password mismatch", "user_id", user.ID)
		return Denied(msgInvalidCredentials)
	}

	access, refresh, err := s.codec.GenerateTokenPair(user.ID, user.Phone, user.Role)
	if err != nil {
		s.logger.Error("login token issuance failed", "error", err)
		return Denied(msgTokenInvalid)
	}

	return Authorized(user.ID, user.Phone, user.Role).WithTokens(access, refresh)
}

// ValidateToken authenticates an access token and echoes its claims.
// Refresh tokens are rejected here; they carry no role and must never
// authorize a request.
func (s *AuthServiceImpl) ValidateToken(tokenString string) AuthResult {
	claims, err := s.codec.Claims(tokenString)
	if err != nil {
		return Denied(msgTokenInvalid)
	}

	if claims.TokenType() != TokenTypeAccess {
		return Denied(msgAccessTokenRequired)
	}

	phone, err := claims.Phone()
	if err != nil {
		return Denied(msgTokenInvalid)
	}

	role, err := claims.Role()
	if err != nil {
		return Denied(msgTokenInvalid)
	}

	return Authorized(claims.UserID(), phone, role)
}

// RefreshToken exchanges a valid refresh token for a fresh token pair. The
// new access token carries the user's current phone and role, not the
// claims from the original login, so role changes take effect on refresh.
// Subject lookup is the only enforcement point for users deleted after a
// refresh token was issued.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, tokenString string) AuthResult {
	claims, err := s.codec.Claims(tokenString)
	if err != nil {
		return Denied(msgTokenInvalid)
	}

	if claims.TokenType() != TokenTypeRefresh {
		return Denied(msgRefreshTokenRequired)
	}

	user, err := s.store.FindByID(ctx, claims.UserID())
	if err != nil || !user.CanAuthenticate() {
		s.logger.Debug("refresh rejected", "reason", "subject no longer resolves", "user_id", claims.UserID())
		return Denied(msgUserNotFound)
	}

	access, refresh, err := s.codec.GenerateTokenPair(user.ID, user.Phone, user.Role)
	if err != nil {
		s.logger.Error("refresh token issuance failed", "error", err)
		return Denied(msgTokenInvalid)
	}

	return Authorized(user.ID, user.Phone, user.Role).WithTokens(access, refresh).AsRefresh()
}

// Logout is informational in a stateless-token design: no server-side state
// is invalidated and issued tokens stay valid until natural expiry. Real
// revocation needs a denylist keyed by token id + expiry, consulted during
// validation.
func (s *AuthServiceImpl) Logout(userID int64) string {
	s.logger.Info("logout", "user_id", userID)
	return msgLogoutAccepted
}

// GetProfile returns the user record for the given id
func (s *AuthServiceImpl) GetProfile(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}

	user, err := s.store.FindByID(ctx, id)
	if err != nil || user == nil || !user.IsActive {
		return nil, ErrNotFound
	}

	return user, nil
}

// UpdateProfile mutates name/email/address on an existing record. Id,
// phone, role, and password hash never change through this path; the
// persisted record is rebuilt from the stored copy so no other field can
// leak through.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, id int64, msg UpdateProfileMessage) (*User, error) {
	if err := msg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid profile payload")
	}

	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if msg.FirstName != "" {
		user.FirstName = msg.FirstName
	}
	if msg.LastName != "" {
		user.LastName = msg.LastName
	}
	if msg.Email != "" {
		user.Email = msg.Email
	}
	if msg.Address != "" {
		user.Address = msg.Address
	}

	updated, err := s.store.Save(ctx, user)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not update profile")
	}

	return updated, nil
}
