package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenCodecImpl implements the TokenCodec interface. It is the only
// component touching signing material. All methods are pure functions over
// the immutable codec state, safe for unbounded concurrent use.
type TokenCodecImpl struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	logger     Logger
}

// Verify interface compliance
var _ TokenCodec = (*TokenCodecImpl)(nil)

// NewTokenCodec creates a new TokenCodec instance. Refresh validity must be
// strictly greater than access validity; that ordering is enforced here once
// instead of on every issuance.
func NewTokenCodec(signingKey []byte, accessTTL, refreshTTL time.Duration, issuer string, logger Logger) (*TokenCodecImpl, error) {
	if logger == nil {
		logger = defLogger{}
	}

	if len(signingKey) == 0 {
		return nil, goerrors.New("signing key is required", goerrors.CategoryBadInput)
	}

	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, goerrors.New("token TTLs must be positive", goerrors.CategoryBadInput)
	}

	if refreshTTL <= accessTTL {
		return nil, goerrors.New("refresh TTL must be greater than access TTL", goerrors.CategoryBadInput)
	}

	return &TokenCodecImpl{
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		logger:     logger,
	}, nil
}

// AccessTokenTTL returns the configured access token validity
func (tc *TokenCodecImpl) AccessTokenTTL() time.Duration {
	return tc.accessTTL
}

// RefreshTokenTTL returns the configured refresh token validity
func (tc *TokenCodecImpl) RefreshTokenTTL() time.Duration {
	return tc.refreshTTL
}

// GenerateAccessToken issues a short-lived token carrying subject, phone,
// and role
func (tc *TokenCodecImpl) GenerateAccessToken(userID int64, phone string, role UserRole) (string, error) {
	if userID <= 0 {
		return "", goerrors.Wrap(ErrInvalidInput, goerrors.CategoryBadInput, "user id is required")
	}
	if phone == "" {
		return "", goerrors.Wrap(ErrInvalidInput, goerrors.CategoryBadInput, "phone is required")
	}
	if !role.IsValid() {
		return "", goerrors.Wrap(ErrInvalidInput, goerrors.CategoryBadInput, "unknown role")
	}

	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tc.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.accessTTL)),
			ID:        uuid.NewString(),
		},
		UserPhone: phone,
		UserRole:  role,
		Type:      TokenTypeAccess,
	}

	return tc.signClaims(claims)
}

// GenerateRefreshToken issues a long-lived token carrying only the subject
func (tc *TokenCodecImpl) GenerateRefreshToken(userID int64) (string, error) {
	if userID <= 0 {
		return "", goerrors.Wrap(ErrInvalidInput, goerrors.CategoryBadInput, "user id is required")
	}

	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tc.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.refreshTTL)),
			ID:        uuid.NewString(),
		},
		Type: TokenTypeRefresh,
	}

	return tc.signClaims(claims)
}

// GenerateTokenPair issues an access and a refresh token sharing a subject.
// The two tokens are otherwise independent; they are not cryptographically
// linked.
func (tc *TokenCodecImpl) GenerateTokenPair(userID int64, phone string, role UserRole) (string, string, error) {
	access, err := tc.GenerateAccessToken(userID, phone, role)
	if err != nil {
		return "", "", err
	}

	refresh, err := tc.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// signClaims signs the claims using the configured signing key
func (tc *TokenCodecImpl) signClaims(claims *TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(tc.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// parse runs full validation and returns structured claims. Errors never
// carry the raw token bytes; attacker-controlled input degrades to one of
// the fixed sentinels.
func (tc *TokenCodecImpl) parse(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrTokenMalformed
	}

	parserOptions := make([]jwt.ParserOption, 0, 1)
	if tc.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(tc.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tc.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Type != TokenTypeAccess && claims.Type != TokenTypeRefresh {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ValidateToken reports whether the token has an intact signature, a known
// type, and is not expired. It is total: any byte string yields a boolean.
func (tc *TokenCodecImpl) ValidateToken(tokenString string) bool {
	_, err := tc.parse(tokenString)
	return err == nil
}

// Claims parses and validates a token string, returning structured claims.
// It is the one codec operation that requires a valid token as precondition.
func (tc *TokenCodecImpl) Claims(tokenString string) (AuthClaims, error) {
	claims, err := tc.parse(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// IsTokenExpired reports whether the token is past expiry. Tokens that fail
// validation for any other reason also report true; an unusable token is
// never treated as live.
func (tc *TokenCodecImpl) IsTokenExpired(tokenString string) bool {
	_, err := tc.parse(tokenString)
	return err != nil
}

// RemainingValidity returns how long the token stays valid, zero for
// invalid or expired input
func (tc *TokenCodecImpl) RemainingValidity(tokenString string) time.Duration {
	claims, err := tc.parse(tokenString)
	if err != nil {
		return 0
	}

	remaining := time.Until(claims.Expires())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsAccessToken reports whether the token validates as an access token
func (tc *TokenCodecImpl) IsAccessToken(tokenString string) bool {
	claims, err := tc.parse(tokenString)
	return err == nil && claims.Type == TokenTypeAccess
}

// IsRefreshToken reports whether the token validates as a refresh token
func (tc *TokenCodecImpl) IsRefreshToken(tokenString string) bool {
	claims, err := tc.parse(tokenString)
	return err == nil && claims.Type == TokenTypeRefresh
}

// bearerScheme is matched case-sensitively, single separating space
const bearerScheme = "Bearer "

// ExtractBearerToken parses an Authorization header value. The token
// substring is returned only when the header is exactly the "Bearer" scheme
// followed by one space and a non-empty token; any other shape yields "".
func ExtractBearerToken(header string) string {
	if !strings.HasPrefix(header, bearerScheme) {
		return ""
	}

	token := header[len(bearerScheme):]
	if token == "" || strings.ContainsAny(token, " \t\r\n") {
		return ""
	}

	return token
}
