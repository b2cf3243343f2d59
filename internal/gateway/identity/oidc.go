package identity

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/goodabcdef/blog-term/internal/common"
)

// OIDCVerifier verifies ID-token assertions against an OIDC issuer, e.g.
// Firebase/Google sign-in tokens issued by
// https://securetoken.google.com/<project> for audience <project>.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers the issuer's signing keys and returns a verifier
// bound to the expected audience.
func NewOIDCVerifier(ctx context.Context, issuer, audience string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	return &OIDCVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: audience})}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, assertion string) (*Assertion, error) {
	idToken, err := v.verifier.Verify(ctx, assertion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAssertionVerification, err)
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAssertionVerification, err)
	}

	return &Assertion{Subject: idToken.Subject, Email: claims.Email}, nil
}
