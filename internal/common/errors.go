// Package common defines shared constants and sentinel errors used across
// gateway components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Credential verification. ErrMalformedCredential means verification
	// could not run at all; it is never folded into a plain mismatch.
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrMalformedCredential = errors.New("malformed stored credential")

	// Token lifecycle and integrity.
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMalformedToken   = errors.New("malformed token")

	// Authorization outcomes.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Rate limiting.
	ErrRateExceeded = errors.New("rate limit exceeded")

	// Federated identity.
	ErrAssertionVerification = errors.New("assertion verification failed")
	ErrInvalidAssertion      = errors.New("invalid assertion")

	// External collaborators.
	ErrDownstreamUnavailable = errors.New("downstream unavailable")
)
