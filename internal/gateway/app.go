// Package gateway initializes and runs the access-control gateway: it wires
// configuration, storage, the rate-limit counter, the identity verifier, and
// the HTTP server, and handles graceful shutdown.
package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/goodabcdef/blog-term/internal/gateway/accounts"
	"github.com/goodabcdef/blog-term/internal/gateway/auth"
	"github.com/goodabcdef/blog-term/internal/gateway/config"
	"github.com/goodabcdef/blog-term/internal/gateway/httpapi"
	"github.com/goodabcdef/blog-term/internal/gateway/identity"
	"github.com/goodabcdef/blog-term/internal/gateway/ratelimit"
	"github.com/goodabcdef/blog-term/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	server  *httpapi.Server
	db      *sql.DB
	counter *ratelimit.RedisCounter
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := accounts.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	accountsSvc := accounts.NewService(db, accounts.NewPostgresRepository, tokens, logger)

	verifier, err := identity.NewOIDCVerifier(ctx, cfg.OIDCIssuer, cfg.OIDCAudience)
	if err != nil {
		return nil, fmt.Errorf("identity verifier init error: %w", err)
	}
	bridge := identity.NewBridge(verifier, accounts.NewPostgresRepository(db), tokens, logger)

	counter := ratelimit.NewRedisCounter(cfg.RedisAddr)
	limiter := ratelimit.NewLimiter(counter, cfg.RateLimitThreshold, cfg.RateLimitWindow, logger)

	server := httpapi.NewServer(cfg.EndpointAddr, logger, accountsSvc, bridge, limiter, counter, tokens)

	return &App{config: cfg, logger: logger, server: server, db: db, counter: counter}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting gateway...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.counter.Close(); err != nil {
		app.logger.Error(ctx, "closing counter store", "error", err.Error())
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err.Error())
	}
}
