package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goodabcdef/blog-term/internal/gateway/auth"
)

// identityKey is the gin context key holding the resolved caller identity.
const identityKey = "identity"

// rateLimit admits every inbound request through the limiter before any
// other processing, keyed by client IP.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Admit(c.Request.Context(), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "too many requests",
			})
			return
		}
		c.Next()
	}
}

// requireRole resolves the caller from the bearer token and, when required
// is non-empty, enforces the role claim. 401 and 403 stay distinct.
func (s *Server) requireRole(required auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		id, err := s.tokens.Authorize(tokenString, required)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "authorization failed", "error", err.Error())
			status := statusFromError(err)
			msg := "unauthorized"
			if status == http.StatusForbidden {
				msg = "forbidden"
			}
			c.AbortWithStatusJSON(status, gin.H{"message": msg})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// callerIdentity returns the identity set by requireRole.
func callerIdentity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*auth.Identity)
	return id
}
