package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Sentinel errors for the business-rule tier. They carry go-errors categories
// and text codes so HTTP layers can map them without string matching.
var (
	// ErrInvalidInput is returned for nil/empty arguments to issuance calls
	ErrInvalidInput = goerrors.New("invalid input", goerrors.CategoryBadInput).
			WithTextCode("INVALID_INPUT")

	// ErrTokenExpired is returned when a token validated but is past expiry
	ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
			WithTextCode("TOKEN_EXPIRED")

	// ErrTokenMalformed is returned for structurally broken tokens
	ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
				WithTextCode("TOKEN_MALFORMED")

	// ErrTokenInvalid is returned when claims are requested from a token
	// that does not validate, or when refresh-token claims are queried for
	// authorization data they do not carry
	ErrTokenInvalid = goerrors.New("token is invalid", goerrors.CategoryAuth).
			WithTextCode("TOKEN_INVALID")

	// ErrAccessTokenRequired rejects refresh tokens used to authorize requests
	ErrAccessTokenRequired = goerrors.New("access token required", goerrors.CategoryAuth).
				WithTextCode("ACCESS_TOKEN_REQUIRED")

	// ErrRefreshTokenRequired rejects access tokens used to refresh a session
	ErrRefreshTokenRequired = goerrors.New("refresh token required", goerrors.CategoryAuth).
				WithTextCode("REFRESH_TOKEN_REQUIRED")

	// ErrInvalidCredentials covers both unknown phone and password mismatch
	// so callers cannot probe which of the two failed
	ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
				WithTextCode("INVALID_CREDENTIALS")

	// ErrDuplicatePhone signals a registration against an existing phone
	ErrDuplicatePhone = goerrors.New("phone number already registered", goerrors.CategoryConflict).
				WithTextCode("DUPLICATE_PHONE")

	// ErrUserNotFound signals that a token subject no longer resolves to an
	// active user record
	ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound).
			WithTextCode("USER_NOT_FOUND")

	// ErrNotFound is the profile lookup failure
	ErrNotFound = goerrors.New("record not found", goerrors.CategoryNotFound).
			WithTextCode("NOT_FOUND")

	// ErrMissingAuthorizationHeader is returned when the request carries no
	// Authorization header at all
	ErrMissingAuthorizationHeader = goerrors.New("missing authorization header", goerrors.CategoryAuth).
					WithTextCode("MISSING_AUTH_HEADER")

	// ErrInvalidAuthorizationHeader is returned when the header does not
	// match the exact "Bearer <token>" shape
	ErrInvalidAuthorizationHeader = goerrors.New("invalid authorization header format", goerrors.CategoryAuth).
					WithTextCode("INVALID_AUTH_HEADER")

	// ErrNoEmptyString rejects empty passwords before hashing
	ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryBadInput).
				WithTextCode("EMPTY_VALUE")

	// ErrMismatchedHashAndPassword is the bcrypt comparison failure
	ErrMismatchedHashAndPassword = goerrors.New("mismatched hash and password", goerrors.CategoryAuth).
					WithTextCode("PASSWORD_MISMATCH")
)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return goerrors.Is(err, ErrTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for structurally broken tokens
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return goerrors.Is(err, ErrTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed")
}

// IsDuplicatePhoneError reports whether a store write hit the unique phone
// constraint
func IsDuplicatePhoneError(err error) bool {
	if err == nil {
		return false
	}
	return goerrors.Is(err, ErrDuplicatePhone)
}

// IsNotFoundError matches both profile and token-subject lookups
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return goerrors.Is(err, ErrNotFound) ||
		goerrors.Is(err, ErrUserNotFound) ||
		goerrors.IsNotFound(err)
}
