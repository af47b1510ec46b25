package commands

import (
	"context"
	"errors"
	"log/slog"

	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/ports"
	"orderlifecycle/internal/pkg/errs"
)

// conflictRetries is the number of extra read-check-write cycles after a conflict.
const conflictRetries = 1

type attemptFunc func(ctx context.Context) (*order.Order, error)

// withConflictRetry reruns attempt after an optimistic conflict. A second
// conflict is returned to the caller.
func withConflictRetry(ctx context.Context, logger *slog.Logger, attempt attemptFunc) (*order.Order, error) {
	var err error
	for try := 0; try <= conflictRetries; try++ {
		var o *order.Order
		o, err = attempt(ctx)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, err
		}
		logger.DebugContext(ctx, "optimistic conflict", "attempt", try+1, "error", err)
	}
	return nil, err
}

// publish hands committed events to the notifier. Failures are logged only.
func publish(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, o *order.Order) {
	events := o.PullEvents()
	if notifier == nil {
		return
	}
	for _, e := range events {
		if err := notifier.Notify(ctx, o, e); err != nil {
			logger.WarnContext(ctx, "lifecycle notification failed",
				"order_id", o.ID().String(),
				"event", string(e.Kind),
				"status", e.Current.String(),
				"error", err,
			)
		}
	}
}

func componentLogger(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", name)
}
