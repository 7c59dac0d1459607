package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_BcryptRoundTrip(t *testing.T) {
	h, err := NewPasswordHasher(SchemeBcrypt, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewPasswordHasher() error = %v", err)
	}

	stored, err := h.Hash("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(stored, "$2") {
		t.Errorf("stored credential should be a bcrypt hash, got %q", stored)
	}

	if err := h.Verify(stored, "correct-horse-battery-staple"); err != nil {
		t.Errorf("Verify() with correct password error = %v", err)
	}
	if err := h.Verify(stored, "wrong-password"); err == nil {
		t.Error("Verify() should fail for wrong password")
	}
}

func TestPasswordHasher_BcryptUniqueSalts(t *testing.T) {
	h, _ := NewPasswordHasher(SchemeBcrypt, bcrypt.MinCost)

	first, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should have different salts")
	}
}

func TestPasswordHasher_Plaintext(t *testing.T) {
	h, err := NewPasswordHasher(SchemePlaintext, 0)
	if err != nil {
		t.Fatalf("NewPasswordHasher() error = %v", err)
	}

	stored, err := h.Hash("fixture-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if stored != "fixture-password" {
		t.Errorf("plaintext scheme should store the password verbatim, got %q", stored)
	}

	if err := h.Verify(stored, "fixture-password"); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
	if err := h.Verify(stored, "other"); err == nil {
		t.Error("Verify() should fail for mismatched plaintext")
	}
}

func TestNewPasswordHasher_UnknownScheme(t *testing.T) {
	if _, err := NewPasswordHasher("argon2", 10); err == nil {
		t.Error("NewPasswordHasher() should reject unknown schemes")
	}
}
