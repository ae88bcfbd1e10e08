package auth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenCodec produces and verifies self-contained signed tokens. Every
// method except Claims is total: malformed or attacker-controlled input
// degrades to a boolean or zero value, never a panic.
type TokenCodec interface {
	GenerateAccessToken(userID int64, phone string, role UserRole) (string, error)
	GenerateRefreshToken(userID int64) (string, error)
	GenerateTokenPair(userID int64, phone string, role UserRole) (string, string, error)
	ValidateToken(tokenString string) bool
	Claims(tokenString string) (AuthClaims, error)
	IsTokenExpired(tokenString string) bool
	RemainingValidity(tokenString string) time.Duration
	IsAccessToken(tokenString string) bool
	IsRefreshToken(tokenString string) bool
}

// CredentialStore is the persistence collaborator. Phone uniqueness is the
// store's invariant; this package only surfaces conflicts as
// ErrDuplicatePhone. A bun-backed reference implementation lives in
// repo_users.go.
type CredentialStore interface {
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Save(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id int64) error
	VerifyPassword(password, hash string) error
}

// Service binds credential verification and token issuance. Login, token
// validation, and refresh fail through AuthResult because failure there is
// routine; register and profile operations raise errors because failure is
// exceptional.
type Service interface {
	Register(ctx context.Context, msg RegisterUserMessage) (*User, error)
	Login(ctx context.Context, phone, password string) AuthResult
	ValidateToken(tokenString string) AuthResult
	RefreshToken(ctx context.Context, tokenString string) AuthResult
	Logout(userID int64) string
	GetProfile(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, id int64, msg UpdateProfileMessage) (*User, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetIssuer() string
	GetAuthScheme() string
	GetContextKey() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
