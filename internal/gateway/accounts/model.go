// Package accounts owns the local account record anchored to an email
// identity, its Postgres repository, and the signup/login service built on
// top of the credential and token primitives.
package accounts

import (
	"time"

	"github.com/goodabcdef/blog-term/internal/gateway/auth"
)

// Account is the persisted identity record. Email is unique (enforced by
// the database), PasswordHash is a bcrypt credential, and inactive accounts
// cannot log in.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         auth.Role
	Active       bool
	CreatedAt    time.Time
}
