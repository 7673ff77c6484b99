// Package db holds helpers shared by the Mongo and Postgres repositories.
package db

import (
	"context"
	"time"
)

// WithTimeout bounds ctx by timeout unless its existing deadline is sooner.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}
