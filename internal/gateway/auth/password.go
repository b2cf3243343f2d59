// Package auth implements the credential and session-token primitives of the
// access-control gateway: password hashing, signed session claims, and the
// role check used by protected operations.
package auth

import (
	"errors"
	"fmt"

	"github.com/goodabcdef/blog-term/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt credential from a plaintext password.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored credential.
//
// It returns nil on match, common.ErrInvalidCredential on mismatch, and
// common.ErrMalformedCredential when the stored value is not a bcrypt hash.
// The last case means verification never ran; callers must not treat it as
// an ordinary mismatch.
func VerifyPassword(plaintext, credential string) error {
	err := bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return common.ErrInvalidCredential
	default:
		return fmt.Errorf("%w: %v", common.ErrMalformedCredential, err)
	}
}
