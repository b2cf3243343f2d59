package accounts

import (
	"context"

	"github.com/goodabcdef/blog-term/internal/dbx"
)

// Repository is the persistence collaborator for accounts. Create must
// surface a duplicate email as common.ErrorAlreadyExists so concurrent
// provisioning resolves deterministically.
type Repository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	SetActive(ctx context.Context, id string, active bool) error
}

// RepositoryFactory binds a Repository to a database handle, which may be
// a *sql.DB or an open transaction.
type RepositoryFactory func(db dbx.DBTX) Repository
