package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/goodabcdef/blog-term/internal/common"
)

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"), time.Hour)

	tok, err := svc.Issue("a@x.com", RoleStandard)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := svc.Validate(tok)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if claims.Subject != "a@x.com" {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, "a@x.com")
	}
	if claims.Role != RoleStandard {
		t.Fatalf("role mismatch: got %q want %q", claims.Role, RoleStandard)
	}
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("secret"), 30*time.Minute)

	tok, err := svc.Issue("a@x.com", RoleStandard)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Move the clock past the configured validity.
	svc.now = func() time.Time { return time.Now().Add(31 * time.Minute) }

	_, err = svc.Validate(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService([]byte("right-secret"), time.Hour)
	tok, err := issuer.Issue("a@x.com", RoleStandard)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	validator := NewTokenService([]byte("wrong-secret"), time.Hour)
	_, err = validator.Validate(tok)
	if !errors.Is(err, common.ErrInvalidSignature) {
		t.Fatalf("expected common.ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_TamperedSignature(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("secret"), time.Hour)
	tok, err := svc.Issue("a@x.com", RoleAdministrator)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip one character of the signature segment.
	b := []byte(tok)
	last := len(b) - 1
	if b[last] == 'A' {
		b[last] = 'B'
	} else {
		b[last] = 'A'
	}

	_, err = svc.Validate(string(b))
	if !errors.Is(err, common.ErrInvalidSignature) {
		t.Fatalf("expected common.ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), time.Hour)

	_, err := svc.Validate("not.a.jwt")
	if !errors.Is(err, common.ErrMalformedToken) {
		t.Fatalf("expected common.ErrMalformedToken, got %v", err)
	}
}

func TestRole_Satisfies(t *testing.T) {
	t.Parallel()

	if !RoleAdministrator.Satisfies(RoleStandard) {
		t.Fatalf("administrator must satisfy the standard requirement")
	}
	if !RoleAdministrator.Satisfies(RoleAdministrator) {
		t.Fatalf("administrator must satisfy the administrator requirement")
	}
	if RoleStandard.Satisfies(RoleAdministrator) {
		t.Fatalf("standard must not satisfy the administrator requirement")
	}
	if !RoleStandard.Satisfies(RoleStandard) {
		t.Fatalf("standard must satisfy the standard requirement")
	}
}
