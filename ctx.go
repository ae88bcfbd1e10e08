package auth

import (
	"context"
)

var userCtxKey = &contextKey{"user"}
var claimsCtxKey = &contextKey{"claims"}
var resultCtxKey = &contextKey{"auth_result"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// WithResultContext sets the AuthResult in the given context
func WithResultContext(r context.Context, result AuthResult) context.Context {
	return context.WithValue(r, resultCtxKey, result)
}

// GetResult extracts the AuthResult from the standard context
func GetResult(ctx context.Context) (AuthResult, bool) {
	raw, ok := ctx.Value(resultCtxKey).(AuthResult)
	return raw, ok
}
