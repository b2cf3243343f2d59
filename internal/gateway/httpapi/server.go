// Package httpapi exposes the access-control gateway over HTTP. It is a
// thin boundary: handlers bind input, delegate to the services, and map
// the error taxonomy to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goodabcdef/blog-term/internal/gateway/accounts"
	"github.com/goodabcdef/blog-term/internal/gateway/auth"
	"github.com/goodabcdef/blog-term/internal/gateway/identity"
	"github.com/goodabcdef/blog-term/internal/gateway/ratelimit"
	"github.com/goodabcdef/blog-term/internal/logging"
)

type Server struct {
	address  string
	engine   *gin.Engine
	accounts *accounts.Service
	bridge   *identity.Bridge
	limiter  *ratelimit.Limiter
	counter  ratelimit.Counter
	tokens   *auth.TokenService
	logger   logging.Logger
}

func NewServer(
	address string,
	logger logging.Logger,
	accountsSvc *accounts.Service,
	bridge *identity.Bridge,
	limiter *ratelimit.Limiter,
	counter ratelimit.Counter,
	tokens *auth.TokenService,
) *Server {
	s := &Server{
		address:  address,
		engine:   gin.New(),
		accounts: accountsSvc,
		bridge:   bridge,
		limiter:  limiter,
		counter:  counter,
		tokens:   tokens,
		logger:   logger.With("module", "httpapi"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.engine
	e.Use(gin.Recovery())

	// The limiter sees every request before anything else runs.
	e.Use(s.rateLimit())

	authGroup := e.Group("/auth")
	authGroup.POST("/signup", s.handleSignup)
	authGroup.POST("/login", s.handleLogin)
	authGroup.POST("/assertion", s.handleAssertionLogin)

	protected := authGroup.Group("")
	protected.Use(s.requireRole(""))
	protected.GET("/me", s.handleMe)
	protected.POST("/password", s.handleChangePassword)
	protected.DELETE("/me", s.handleDeactivate)

	admin := e.Group("/admin")
	admin.Use(s.requireRole(auth.RoleAdministrator))
	admin.GET("/ping", s.handleAdminPing)

	e.GET("/health", s.handleHealth)
}

// Handler returns the configured HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.engine}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
