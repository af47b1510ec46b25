package commands

import (
	"context"
	"log/slog"
	"time"

	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/domain/services"
	"orderlifecycle/internal/core/ports"
)

// UnassignOrderCommandHandler is the administrative override that clears an assignee.
type UnassignOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	policy     services.LifecyclePolicy
	logger     *slog.Logger
}

// NewUnassignOrderCommandHandler creates the handler.
func NewUnassignOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier, logger *slog.Logger) UnassignOrderCommandHandler {
	return UnassignOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     services.NewLifecyclePolicy(),
		logger:     componentLogger(logger, "unassign_order"),
	}
}

// Handle clears the assignee so the order returns to the candidate set.
// Non-administrators get errs.ErrForbidden; in-transit, terminal and
// unassigned orders get errs.ErrValueIsInvalid.
func (h UnassignOrderCommandHandler) Handle(ctx context.Context, cmd UnassignOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := withConflictRetry(ctx, h.logger, func(ctx context.Context) (*order.Order, error) {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		repo := uow.OrderRepository()
		o, err := repo.Get(ctx, cmd.OrderID())
		if err != nil {
			return nil, err
		}

		expected := ports.ExpectState(o)
		if err = h.policy.Unassign(o, cmd.Actor(), time.Now()); err != nil {
			return nil, err
		}

		if err = repo.UpdateIf(ctx, o, expected); err != nil {
			return nil, err
		}

		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return o, nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order unassigned", "order_id", o.ID().String())
	publish(ctx, h.notifier, h.logger, o)
	return o, nil
}
