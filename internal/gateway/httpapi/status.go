package httpapi

import (
	"errors"
	"net/http"

	"github.com/goodabcdef/blog-term/internal/common"
)

// statusFromError maps the gateway error taxonomy to HTTP status codes.
// Every token-validation kind collapses to 401 here; the distinction stays
// in the logs.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidCredential),
		errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrInvalidSignature),
		errors.Is(err, common.ErrMalformedToken),
		errors.Is(err, common.ErrAssertionVerification),
		errors.Is(err, common.ErrInvalidAssertion):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrRateExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, common.ErrDownstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
