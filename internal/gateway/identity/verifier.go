// Package identity bridges an external federated-identity assertion into a
// local account and session token.
package identity

import "context"

// Assertion is the verified claim set returned by the identity provider.
// Trust in these fields is rooted entirely in the Verifier; the bridge never
// re-derives it from the raw assertion.
type Assertion struct {
	Subject string
	Email   string
}

// Verifier is the external identity-provider collaborator: it checks the
// signature and claims of an opaque assertion string.
type Verifier interface {
	Verify(ctx context.Context, assertion string) (*Assertion, error)
}
