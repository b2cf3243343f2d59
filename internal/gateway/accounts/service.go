package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goodabcdef/blog-term/internal/common"
	"github.com/goodabcdef/blog-term/internal/dbx"
	"github.com/goodabcdef/blog-term/internal/gateway/auth"
	"github.com/goodabcdef/blog-term/internal/logging"
	"github.com/google/uuid"
)

// dummyCredential keeps Login's timing comparable when the email is unknown,
// so callers cannot probe which addresses have accounts.
var dummyCredential = func() string {
	h, err := auth.HashPassword("placeholder-timing-credential")
	if err != nil {
		panic(err)
	}
	return h
}()

// Service provides password-based account operations:
// - Signup: create accounts
// - Login: verify credentials and mint a session token
// - ChangePassword / Deactivate: mutate an authenticated caller's account
type Service struct {
	db      *sql.DB
	newRepo RepositoryFactory
	tokens  *auth.TokenService
	logger  logging.Logger
}

// NewService constructs a Service from a database handle, a repository
// factory, and the token service used to mint session credentials.
func NewService(db *sql.DB, newRepo RepositoryFactory, tokens *auth.TokenService, logger logging.Logger) *Service {
	return &Service{
		db:      db,
		newRepo: newRepo,
		tokens:  tokens,
		logger:  logger.With("module", "accounts"),
	}
}

// Signup creates a new active account with role standard. A duplicate email
// yields common.ErrorAlreadyExists.
func (s *Service) Signup(ctx context.Context, email, password string) (*Account, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	account := &Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleStandard,
		Active:       true,
	}

	created, err := s.newRepo(s.db).Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return created, nil
}

// Login verifies the password against the stored credential and, on success,
// returns a session token. Unknown email, inactive account, and wrong
// password are all reported as common.ErrInvalidCredential.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.newRepo(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn the same hashing work as the found path.
			_ = auth.VerifyPassword(password, dummyCredential)
			return "", common.ErrInvalidCredential
		}
		return "", common.ErrorInternal
	}

	if err := auth.VerifyPassword(password, account.PasswordHash); err != nil {
		if errors.Is(err, common.ErrMalformedCredential) {
			s.logger.Error(ctx, "stored credential unreadable", "account_id", account.ID)
			return "", err
		}
		return "", common.ErrInvalidCredential
	}

	if !account.Active {
		return "", common.ErrInvalidCredential
	}

	token, err := s.tokens.Issue(account.Email, account.Role)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// ChangePassword verifies the caller's current password and replaces the
// stored credential, inside a single transaction.
func (s *Service) ChangePassword(ctx context.Context, identity *auth.Identity, oldPassword, newPassword string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)

		account, err := repo.GetByEmail(ctx, identity.Email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUnauthenticated
			}
			return common.ErrorInternal
		}

		if err := auth.VerifyPassword(oldPassword, account.PasswordHash); err != nil {
			if errors.Is(err, common.ErrMalformedCredential) {
				return err
			}
			return common.ErrInvalidCredential
		}

		hash, err := auth.HashPassword(newPassword)
		if err != nil {
			return common.ErrorInternal
		}

		return repo.UpdatePassword(ctx, account.ID, hash)
	})
}

// Deactivate clears the active flag for the caller's account. Subsequent
// logins fail with common.ErrInvalidCredential.
func (s *Service) Deactivate(ctx context.Context, identity *auth.Identity) error {
	repo := s.newRepo(s.db)

	account, err := repo.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUnauthenticated
		}
		return common.ErrorInternal
	}

	return repo.SetActive(ctx, account.ID, false)
}
