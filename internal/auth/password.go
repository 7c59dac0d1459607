package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password schemes. Plaintext exists so test fixtures stay deterministic;
// it must never be enabled in production.
const (
	SchemeBcrypt    = "bcrypt"
	SchemePlaintext = "plaintext"
)

// PasswordHasher verifies a claimed secret against a stored credential
// using the configured scheme.
type PasswordHasher struct {
	scheme string
	cost   int
}

// NewPasswordHasher validates the scheme and returns a hasher.
func NewPasswordHasher(scheme string, cost int) (*PasswordHasher, error) {
	switch scheme {
	case SchemeBcrypt, SchemePlaintext:
	default:
		return nil, fmt.Errorf("unsupported password scheme %q", scheme)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{scheme: scheme, cost: cost}, nil
}

// Hash produces the stored form of a plaintext password.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	if h.scheme == SchemePlaintext {
		return plain, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compares a supplied password against the stored credential.
// The plaintext path compares in constant time.
func (h *PasswordHasher) Verify(stored, plain string) error {
	if h.scheme == SchemePlaintext {
		if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) != 1 {
			return bcrypt.ErrMismatchedHashAndPassword
		}
		return nil
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
}
