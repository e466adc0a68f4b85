package workers

import (
	"context"
	"log/slog"
	"time"

	"kinkeep/contexts/identity-access/auth-service/ports"
)

// PendingLoginSweeper drops expired pending external logins on a fixed
// interval. Consume already rejects expired entries; the sweeper only
// keeps the store from accumulating abandoned round trips.
type PendingLoginSweeper struct {
	Store    ports.PendingLoginStore
	Clock    ports.Clock
	Interval time.Duration
	Logger   *slog.Logger
}

func (w PendingLoginSweeper) RunOnce(ctx context.Context) error {
	now := time.Now().UTC()
	if w.Clock != nil {
		now = w.Clock.Now().UTC()
	}

	removed, err := w.Store.Sweep(ctx, now)
	if err != nil {
		w.logger().Error("pending login sweep failed",
			"event", "auth_pending_sweep_failed",
			"module", "identity-access/auth-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if removed > 0 {
		w.logger().Debug("pending logins swept",
			"event", "auth_pending_swept",
			"module", "identity-access/auth-service",
			"layer", "worker",
			"removed", removed,
		)
	}
	return nil
}

// Run loops RunOnce until the context is cancelled.
func (w PendingLoginSweeper) Run(ctx context.Context) error {
	interval := w.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Errors are logged inside RunOnce; the loop keeps going.
			_ = w.RunOnce(ctx)
		}
	}
}

func (w PendingLoginSweeper) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
