package auth

import (
	"fmt"

	"github.com/goodabcdef/blog-term/internal/common"
)

// Identity is the resolved caller of a request. Operations that need the
// caller take an Identity value explicitly; nothing resolves it from
// ambient context.
type Identity struct {
	Email string
	Role  Role
}

// Authorize validates the presented token and, when required is non-empty,
// checks the role claim against it.
//
// An invalid or expired token yields common.ErrUnauthenticated (wrapping
// the validation kind for diagnostics); a valid token with an insufficient
// role yields common.ErrForbidden. The two are distinct outcomes.
func (s *TokenService) Authorize(token string, required Role) (*Identity, error) {
	claims, err := s.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}

	if required != "" && !claims.Role.Satisfies(required) {
		return nil, common.ErrForbidden
	}

	return &Identity{Email: claims.Subject, Role: claims.Role}, nil
}
