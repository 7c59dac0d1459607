package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

// Typed validation failures. Handlers collapse all of these into a generic
// 401; the distinction exists for internal logging and tests.
var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenMalformed        = errors.New("token malformed")
)

var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Claims describes the JWT payload: subject username plus the role copied
// at issuance time.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates signed, time-limited tokens.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenManager builds a manager for the configured algorithm. Only HMAC
// variants are supported; anything else is a configuration error.
func NewTokenManager(secret, algorithm string, ttlMinutes int) (*TokenManager, error) {
	method, ok := signingMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if ttlMinutes <= 0 {
		ttlMinutes = 30
	}
	return &TokenManager{
		secret: []byte(secret),
		method: method,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue builds and signs a token for the account. Timestamps are UTC so
// issuance and validation agree across machines.
func (tm *TokenManager) Issue(username string, role domain.Role) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(tm.method, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Validate checks signature integrity before trusting any claim, then
// expiry, and returns the embedded identity and role.
func (tm *TokenManager) Validate(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{tm.method.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
