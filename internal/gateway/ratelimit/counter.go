// Package ratelimit enforces a shared fixed-window request ceiling keyed by
// client identity, backed by an external atomic counter store.
package ratelimit

import (
	"context"
	"time"
)

// Counter is the external counter-store collaborator. Implementations must
// make IncrWindow a single atomic operation; separate read-then-write calls
// let concurrent bursts slip past the threshold.
type Counter interface {
	// IncrWindow increments the counter for key and returns the new count.
	// When the key is created by this call, the window TTL is started;
	// an existing key's TTL is left untouched (fixed window).
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)

	// Ping reports counter-store reachability.
	Ping(ctx context.Context) error
}
