package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goodabcdef/blog-term/internal/common"
)

// Role is the access level carried in session claims.
type Role string

const (
	RoleStandard      Role = "standard"
	RoleAdministrator Role = "administrator"
)

// Satisfies reports whether the role meets the given requirement.
// Administrators satisfy every requirement.
func (r Role) Satisfies(required Role) bool {
	if r == RoleAdministrator {
		return true
	}
	return r == required
}

// Claims — session claims embedding the standard registered claims
// (sub, iat, exp) plus the caller's role.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// TokenService issues and validates signed session tokens. It is a pure
// function of its inputs, the shared secret, and the clock; it keeps no
// per-session state and is safe for concurrent use.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenService builds a TokenService with the given HMAC secret and
// token validity. The secret is injected configuration, never read from
// ambient globals.
func NewTokenService(secret []byte, validity time.Duration) *TokenService {
	return &TokenService{secret: secret, validity: validity, now: time.Now}
}

// Issue mints a compact HS256 token for the subject with the given role.
// Expiry is fixed at the configured validity from the current time.
func (s *TokenService) Issue(subject string, role Role) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		Role: role,
	})

	return token.SignedString(s.secret)
}

// Validate decodes the token, checks signature and expiry, and returns the
// embedded claims. Failures map to the sentinel taxonomy so callers can
// log the exact stage while still presenting a single unauthorized outcome:
//
//	expired   -> common.ErrTokenExpired
//	bad sig   -> common.ErrInvalidSignature
//	otherwise -> common.ErrMalformedToken
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrInvalidSignature
		default:
			return nil, common.ErrMalformedToken
		}
	}

	if !token.Valid {
		return nil, common.ErrMalformedToken
	}

	return claims, nil
}
