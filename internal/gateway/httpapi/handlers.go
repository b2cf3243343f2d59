package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type assertionRequest struct {
	Assertion string `json:"assertion" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *Server) handleSignup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid request body"})
		return
	}

	account, err := s.accounts.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Debug(c.Request.Context(), "signup failed", "error", err.Error())
		c.JSON(statusFromError(err), gin.H{"message": "signup failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         account.ID,
		"email":      account.Email,
		"role":       account.Role,
		"created_at": account.CreatedAt,
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid request body"})
		return
	}

	token, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Debug(c.Request.Context(), "login failed", "error", err.Error())
		c.JSON(statusFromError(err), gin.H{"message": "incorrect email or password"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// handleAssertionLogin exchanges a federated identity assertion for a local
// session token. Every failure kind is answered with the same generic 401
// so callers cannot tell which stage rejected them; the kind is logged.
func (s *Server) handleAssertionLogin(c *gin.Context) {
	var req assertionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid request body"})
		return
	}

	token, err := s.bridge.LoginWithAssertion(c.Request.Context(), req.Assertion)
	if err != nil {
		s.logger.Warn(c.Request.Context(), "federated login failed", "error", err.Error())
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication failed"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleMe(c *gin.Context) {
	id := callerIdentity(c)
	c.JSON(http.StatusOK, gin.H{"email": id.Email, "role": id.Role})
}

func (s *Server) handleChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid request body"})
		return
	}

	id := callerIdentity(c)
	if err := s.accounts.ChangePassword(c.Request.Context(), id, req.OldPassword, req.NewPassword); err != nil {
		s.logger.Debug(c.Request.Context(), "password change failed", "error", err.Error())
		c.JSON(statusFromError(err), gin.H{"message": "password change failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (s *Server) handleDeactivate(c *gin.Context) {
	id := callerIdentity(c)
	if err := s.accounts.Deactivate(c.Request.Context(), id); err != nil {
		s.logger.Debug(c.Request.Context(), "deactivation failed", "error", err.Error())
		c.JSON(statusFromError(err), gin.H{"message": "deactivation failed"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) handleAdminPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// handleHealth reports gateway liveness and counter-store reachability.
// The gateway itself stays up when the store is down (the limiter fails
// open), so the store state is informational.
func (s *Server) handleHealth(c *gin.Context) {
	counterStatus := "ok"
	if err := s.counter.Ping(c.Request.Context()); err != nil {
		counterStatus = "down"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"counter_store": counterStatus,
		"timestamp":     time.Now().Unix(),
	})
}
