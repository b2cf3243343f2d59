package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodabcdef/blog-term/internal/common"
	"github.com/goodabcdef/blog-term/internal/gateway/accounts"
	"github.com/goodabcdef/blog-term/internal/gateway/auth"
	"github.com/goodabcdef/blog-term/internal/logging"
	"github.com/google/uuid"
)

// Bridge turns a verified federated assertion into a local session token,
// auto-provisioning an account on first login.
type Bridge struct {
	verifier Verifier
	repo     accounts.Repository
	tokens   *auth.TokenService
	logger   logging.Logger
}

func NewBridge(verifier Verifier, repo accounts.Repository, tokens *auth.TokenService, logger logging.Logger) *Bridge {
	return &Bridge{
		verifier: verifier,
		repo:     repo,
		tokens:   tokens,
		logger:   logger.With("module", "identity"),
	}
}

// LoginWithAssertion verifies the assertion with the identity provider,
// resolves or provisions the local account for its email claim, and issues
// a session token.
//
// Failure kinds stay distinct for the caller's diagnostics
// (ErrAssertionVerification, ErrInvalidAssertion, ErrDownstreamUnavailable);
// the HTTP boundary collapses all of them into a generic unauthorized
// response so the failing stage is not leaked.
func (b *Bridge) LoginWithAssertion(ctx context.Context, assertion string) (string, error) {
	verified, err := b.verifier.Verify(ctx, assertion)
	if err != nil {
		if errors.Is(err, common.ErrAssertionVerification) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", common.ErrAssertionVerification, err)
	}

	// An assertion without an email claim cannot be mapped to an account.
	if verified.Email == "" {
		return "", common.ErrInvalidAssertion
	}

	account, err := b.repo.GetByEmail(ctx, verified.Email)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorNotFound):
		account, err = b.provision(ctx, verified.Email)
		if err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: %v", common.ErrDownstreamUnavailable, err)
	}

	if !account.Active {
		return "", common.ErrUnauthenticated
	}

	token, err := b.tokens.Issue(account.Email, account.Role)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// provision creates a standard account anchored to the email. The stored
// credential is a bcrypt hash of a random secret that is discarded
// immediately, so the account can never authenticate with a password.
// A concurrent provision for the same email is resolved by the repository's
// uniqueness constraint: the loser re-fetches the existing account.
func (b *Bridge) provision(ctx context.Context, email string) (*accounts.Account, error) {
	secret, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	hash, err := auth.HashPassword(secret)
	if err != nil {
		return nil, common.ErrorInternal
	}

	account := &accounts.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleStandard,
		Active:       true,
	}

	created, err := b.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			b.logger.Debug(ctx, "lost provisioning race, reusing existing account", "email", email)
			existing, err := b.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", common.ErrDownstreamUnavailable, err)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("%w: %v", common.ErrDownstreamUnavailable, err)
	}

	b.logger.Info(ctx, "provisioned federated account", "email", email)
	return created, nil
}
