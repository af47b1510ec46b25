package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/ports"
)

// Sink is a named notifier.
type Sink struct {
	Name     string
	Notifier ports.Notifier
}

// Multi fans one event out to every sink. A failing sink does not stop the others.
type Multi struct {
	sinks  []Sink
	logger *slog.Logger
}

func NewMulti(logger *slog.Logger, sinks ...Sink) *Multi {
	if logger == nil {
		logger = slog.Default()
	}
	return &Multi{sinks: sinks, logger: logger.With("component", "notifier")}
}

func (m *Multi) Notify(ctx context.Context, o *order.Order, e order.Event) error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Notifier.Notify(ctx, o, e); err != nil {
			m.logger.WarnContext(ctx, "notification sink failed",
				"sink", sink.Name,
				"order_id", e.OrderID.String(),
				"event", string(e.Kind),
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Sinks returns the configured sink names.
func (m *Multi) Sinks() []string {
	names := make([]string, 0, len(m.sinks))
	for _, s := range m.sinks {
		names = append(names, s.Name)
	}
	return names
}

// LogNotifier records events in the structured log. It is the sink of last
// resort when no broker or mail relay is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, o *order.Order, e order.Event) error {
	msg := NewOrderChanged(o, e)
	n.logger.InfoContext(ctx, "order lifecycle event",
		"event", msg.Kind,
		"order_id", msg.OrderID,
		"previous_status", msg.PreviousStatus,
		"status", msg.Status,
		"assigned_to", msg.AssignedTo,
	)
	return nil
}
