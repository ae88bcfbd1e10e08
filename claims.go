package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the structured data recoverable from a validated token.
// Phone and Role legitimately exist on access tokens only; querying them on
// a refresh token fails with ErrTokenInvalid rather than returning zero
// values, preserving the contract that refresh tokens carry no authorization
// information beyond identity.
type AuthClaims interface {
	Subject() string
	UserID() int64
	TokenType() TokenType
	Phone() (string, error)
	Role() (UserRole, error)
	Expires() time.Time
	IssuedAt() time.Time
}

// TokenClaims is the concrete claims payload signed into every token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserPhone string    `json:"phone,omitempty"`
	UserRole  UserRole  `json:"role,omitempty"`
	Type      TokenType `json:"typ"`
}

// Verify interface compliance
var _ AuthClaims = (*TokenClaims)(nil)

// Subject returns the subject claim
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID parses the subject claim into the stable integer identity. Zero is
// returned for non-numeric subjects; those never pass issuance in the first
// place.
func (c *TokenClaims) UserID() int64 {
	id, err := strconv.ParseInt(c.RegisteredClaims.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// TokenType returns the token kind baked into the claims
func (c *TokenClaims) TokenType() TokenType {
	return c.Type
}

// IsAccess reports whether the claims belong to an access token
func (c *TokenClaims) IsAccess() bool {
	return c.Type == TokenTypeAccess
}

// IsRefresh reports whether the claims belong to a refresh token
func (c *TokenClaims) IsRefresh() bool {
	return c.Type == TokenTypeRefresh
}

// Phone returns the phone claim. Refresh tokens do not carry it.
func (c *TokenClaims) Phone() (string, error) {
	if c.Type != TokenTypeAccess {
		return "", ErrTokenInvalid
	}
	return c.UserPhone, nil
}

// Role returns the role claim. Refresh tokens do not carry it.
func (c *TokenClaims) Role() (UserRole, error) {
	if c.Type != TokenTypeAccess {
		return "", ErrTokenInvalid
	}
	return c.UserRole, nil
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
