package ratelimit

import (
	"context"
	"time"

	"github.com/goodabcdef/blog-term/internal/logging"
)

// Limiter admits or rejects requests per client key under a fixed-window
// policy. Two invariants are deliberate and under test:
//
//   - The window TTL is set only when the counter is created, never
//     refreshed on later requests, so a continuously active client cannot
//     be starved past one window.
//   - Every request increments the counter, including rejected ones: within
//     one window calls 1..threshold are admitted and every later call is
//     rejected. Increment-first is the only single-round-trip shape without
//     a read/write race.
//
// When the counter store is unreachable the limiter fails open: the request
// is admitted and a warning is logged.
type Limiter struct {
	counter   Counter
	threshold int64
	window    time.Duration
	logger    logging.Logger
}

func NewLimiter(counter Counter, threshold int64, window time.Duration, logger logging.Logger) *Limiter {
	return &Limiter{
		counter:   counter,
		threshold: threshold,
		window:    window,
		logger:    logger.With("module", "ratelimit"),
	}
}

// Admit reports whether the request for clientKey is allowed to proceed.
func (l *Limiter) Admit(ctx context.Context, clientKey string) bool {
	count, err := l.counter.IncrWindow(ctx, clientKey, l.window)
	if err != nil {
		l.logger.Warn(ctx, "counter store unavailable, admitting request", "client_key", clientKey, "error", err.Error())
		return true
	}

	return count <= l.threshold
}
