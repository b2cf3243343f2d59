package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goodabcdef/blog-term/internal/common"
	"github.com/goodabcdef/blog-term/internal/gateway/accounts"
	"github.com/goodabcdef/blog-term/internal/gateway/auth"
	"github.com/goodabcdef/blog-term/internal/logging"
)

type fakeVerifier struct {
	assertion *Assertion
	err       error
}

func (f *fakeVerifier) Verify(context.Context, string) (*Assertion, error) {
	return f.assertion, f.err
}

// fakeRepo enforces email uniqueness the way the Postgres schema does.
type fakeRepo struct {
	mu      sync.Mutex
	byEmail map[string]*accounts.Account
	getErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*accounts.Account)}
}

func (f *fakeRepo) Create(_ context.Context, account *accounts.Account) (*accounts.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[account.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	cp := *account
	f.byEmail[account.Email] = &cp
	out := cp
	return &out, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*accounts.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	acc, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *acc
	return &out, nil
}

func (f *fakeRepo) UpdatePassword(context.Context, string, string) error { return nil }

func (f *fakeRepo) SetActive(context.Context, string, bool) error { return nil }

func newTestBridge(verifier Verifier, repo accounts.Repository) (*Bridge, *auth.TokenService) {
	tokens := auth.NewTokenService([]byte("test-secret"), 30*time.Minute)
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewBridge(verifier, repo, tokens, logger), tokens
}

func TestLoginWithAssertion_ProvisionsNewAccount(t *testing.T) {
	repo := newFakeRepo()
	bridge, tokens := newTestBridge(&fakeVerifier{assertion: &Assertion{Subject: "sub-1", Email: "new@x.com"}}, repo)

	token, err := bridge.LoginWithAssertion(context.Background(), "opaque-assertion")
	require.NoError(t, err)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "new@x.com", claims.Subject)
	require.Equal(t, auth.RoleStandard, claims.Role)

	acc := repo.byEmail["new@x.com"]
	require.NotNil(t, acc)
	require.True(t, acc.Active)
	require.NotEmpty(t, acc.PasswordHash)
	// The placeholder credential anchors the account but must never verify
	// against any password a caller could present.
	require.ErrorIs(t, auth.VerifyPassword("", acc.PasswordHash), common.ErrInvalidCredential)
}

func TestLoginWithAssertion_ReusesExistingAccount(t *testing.T) {
	repo := newFakeRepo()
	hash, err := auth.HashPassword("pw1")
	require.NoError(t, err)
	repo.byEmail["known@x.com"] = &accounts.Account{
		ID: "id-1", Email: "known@x.com", PasswordHash: hash,
		Role: auth.RoleAdministrator, Active: true,
	}

	bridge, tokens := newTestBridge(&fakeVerifier{assertion: &Assertion{Subject: "sub-1", Email: "known@x.com"}}, repo)

	token, err := bridge.LoginWithAssertion(context.Background(), "opaque-assertion")
	require.NoError(t, err)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "known@x.com", claims.Subject)
	require.Equal(t, auth.RoleAdministrator, claims.Role, "existing role must be preserved")
	require.Len(t, repo.byEmail, 1)
}

func TestLoginWithAssertion_MissingEmail(t *testing.T) {
	bridge, _ := newTestBridge(&fakeVerifier{assertion: &Assertion{Subject: "sub-1"}}, newFakeRepo())

	_, err := bridge.LoginWithAssertion(context.Background(), "opaque-assertion")
	require.ErrorIs(t, err, common.ErrInvalidAssertion)
}

func TestLoginWithAssertion_VerificationFailure(t *testing.T) {
	bridge, _ := newTestBridge(&fakeVerifier{err: errors.New("bad signature")}, newFakeRepo())

	_, err := bridge.LoginWithAssertion(context.Background(), "opaque-assertion")
	require.ErrorIs(t, err, common.ErrAssertionVerification)
}

func TestLoginWithAssertion_PersistenceFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.getErr = errors.New("connection refused")

	bridge, _ := newTestBridge(&fakeVerifier{assertion: &Assertion{Subject: "sub-1", Email: "a@x.com"}}, repo)

	_, err := bridge.LoginWithAssertion(context.Background(), "opaque-assertion")
	require.ErrorIs(t, err, common.ErrDownstreamUnavailable)
}

func TestLoginWithAssertion_DeactivatedAccount(t *testing.T) {
	repo := newFakeRepo()
	repo.byEmail["gone@x.com"] = &accounts.Account{
		ID: "id-1", Email: "gone@x.com", PasswordHash: "x",
		Role: auth.RoleStandard, Active: false,
	}

	bridge, _ := newTestBridge(&fakeVerifier{assertion: &Assertion{Subject: "s", Email: "gone@x.com"}}, repo)

	_, err := bridge.LoginWithAssertion(context.Background(), "opaque-assertion")
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestLoginWithAssertion_ConcurrentProvisionCreatesOneAccount(t *testing.T) {
	repo := newFakeRepo()
	bridge, _ := newTestBridge(&fakeVerifier{assertion: &Assertion{Subject: "sub-1", Email: "race@x.com"}}, repo)

	const callers = 8
	tokensOut := make([]string, callers)
	errsOut := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokensOut[i], errsOut[i] = bridge.LoginWithAssertion(context.Background(), "opaque-assertion")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errsOut[i], "caller %d must not see the duplicate-create race", i)
		require.NotEmpty(t, tokensOut[i])
	}
	require.Len(t, repo.byEmail, 1, "exactly one account must be provisioned")
}
