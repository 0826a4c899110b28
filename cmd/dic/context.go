package main

import (
	"context"
	"time"
)

// deadlineContext bounds ctx with the configured operation timeout. A zero
// timeout means no deadline; the returned cancel is always safe to call.
func deadlineContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
