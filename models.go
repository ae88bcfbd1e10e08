package auth

import (
	"time"

	"github.com/uptrace/bun"
)

// TokenType separates access tokens from refresh tokens. The type is baked
// into the signed claims so a token can never be replayed as the other kind.
type TokenType string

const (
	// TokenTypeAccess is the short-lived token carrying phone and role
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is the long-lived token carrying only the subject
	TokenTypeRefresh TokenType = "refresh"
)

// User is the credential store record. The store owns it; this package only
// reads it during login/refresh and writes it during registration and
// profile updates.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Phone         string     `bun:"phone,notnull,unique" json:"phone,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	IsActive      bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	FirstName     string     `bun:"first_name" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name" json:"last_name,omitempty"`
	Email         string     `bun:"email" json:"email,omitempty"`
	Address       string     `bun:"address" json:"address,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// CanAuthenticate reports whether the record may be used for login or refresh
func (u *User) CanAuthenticate() bool {
	return u != nil && u.ID > 0 && u.IsActive
}

// AuthResult is the outcome every service and middleware operation returns.
// Exactly one of the two shapes holds: Authenticated=true with
// UserID/Phone/Role set, or Authenticated=false with ErrorMessage set.
type AuthResult struct {
	Authenticated bool     `json:"authenticated"`
	UserID        int64    `json:"user_id,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Role          UserRole `json:"role,omitempty"`
	AccessToken   string   `json:"access_token,omitempty"`
	RefreshToken  string   `json:"refresh_token,omitempty"`
	ErrorMessage  string   `json:"error_message,omitempty"`
	IsRefresh     bool     `json:"is_refresh,omitempty"`
}

// Authorized builds a successful AuthResult for the given subject
func Authorized(userID int64, phone string, role UserRole) AuthResult {
	return AuthResult{
		Authenticated: true,
		UserID:        userID,
		Phone:         phone,
		Role:          role,
	}
}

// Denied builds a failed AuthResult. Messages are fixed strings; callers
// must never feed attacker-controlled token bytes through here.
func Denied(message string) AuthResult {
	return AuthResult{
		Authenticated: false,
		ErrorMessage:  message,
	}
}

// WithTokens attaches a freshly issued token pair to a successful result
func (r AuthResult) WithTokens(access, refresh string) AuthResult {
	r.AccessToken = access
	r.RefreshToken = refresh
	return r
}

// AsRefresh marks the result as produced by a refresh operation
func (r AuthResult) AsRefresh() AuthResult {
	r.IsRefresh = true
	return r
}
