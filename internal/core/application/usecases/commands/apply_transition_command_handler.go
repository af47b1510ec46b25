package commands

import (
	"context"
	"log/slog"
	"time"

	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/domain/services"
	"orderlifecycle/internal/core/ports"
)

// ApplyTransitionCommandHandler is the lifecycle engine entry point. It loads
// the order, lets LifecyclePolicy authorise and apply the change, and writes
// it back with a precondition on the status and assignee it read. A lost race
// is retried once from a fresh read.
//
// Errors, in evaluation order: errs.ObjectNotFoundError, errs.InvalidTransitionError,
// errs.ForbiddenError, then errs.ConflictError once the retry is spent.
//
// Example:
//
//	handler := NewApplyTransitionCommandHandler(uowFactory, notifier, logger)
//	cmd, _ := NewApplyTransitionCommand(orderID, order.Ready, admin, "")
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // 409
//	case errors.Is(err, errs.ErrForbidden):
//	    // 403
//	}
type ApplyTransitionCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	policy     services.LifecyclePolicy
	logger     *slog.Logger
}

// NewApplyTransitionCommandHandler creates the handler. A nil notifier
// disables publication and a nil logger falls back to slog.Default.
func NewApplyTransitionCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier, logger *slog.Logger) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     services.NewLifecyclePolicy(),
		logger:     componentLogger(logger, "apply_transition"),
	}
}

// Handle applies the transition and returns the updated order. Events are
// published only after the commit; a failing notifier is logged and never
// turns a committed change into an error.
func (h ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := withConflictRetry(ctx, h.logger, func(ctx context.Context) (*order.Order, error) {
		return h.attempt(ctx, cmd)
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", o.ID().String(),
		"status", o.Status().String(),
		"actor_role", cmd.Actor().Role().String(),
	)
	publish(ctx, h.notifier, h.logger, o)
	return o, nil
}

func (h ApplyTransitionCommandHandler) attempt(ctx context.Context, cmd ApplyTransitionCommand) (*order.Order, error) {
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
	if err = h.policy.Transition(o, cmd.Target(), cmd.Actor(), cmd.Note(), time.Now()); err != nil {
		return nil, err
	}

	if err = repo.UpdateIf(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
