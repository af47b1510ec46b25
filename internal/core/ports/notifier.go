package ports

import (
	"context"

	"orderlifecycle/internal/core/domain/model/order"
)

// Notifier receives lifecycle events after they are committed.
// Callers log and discard the returned error.
type Notifier interface {
	Notify(ctx context.Context, o *order.Order, event order.Event) error
}
