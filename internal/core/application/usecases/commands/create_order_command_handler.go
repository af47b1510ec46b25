package commands

import (
	"context"
	"log/slog"
	"time"

	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/domain/services"
	"orderlifecycle/internal/core/ports"
)

// CreateOrderCommandHandler persists new orders and announces them with an
// EventCreated once the insert is committed.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	policy     services.LifecyclePolicy
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates the handler.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier, logger *slog.Logger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     services.NewLifecyclePolicy(),
		logger:     componentLogger(logger, "create_order"),
	}
}

// Handle places the order. A pre-paid request starts the order CONFIRMED and
// is refused with errs.ErrForbidden unless the actor may confirm orders.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanPlace(cmd.Actor(), cmd.Prepaid()); err != nil {
		return nil, err
	}

	initial := order.Pending
	if cmd.Prepaid() {
		initial = order.Confirmed
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Contact(), cmd.Address(), cmd.Instructions(), initial, time.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order created", "order_id", o.ID().String(), "status", o.Status().String())
	publish(ctx, h.notifier, h.logger, o)
	return o, nil
}
