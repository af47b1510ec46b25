package commands

import (
	"context"
	"log/slog"
	"time"

	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/domain/services"
	"orderlifecycle/internal/core/ports"
)

// ClaimOrderCommandHandler is the assignment coordinator's claim operation.
//
// Orders outside the candidate set are reported as errs.ObjectNotFoundError
// whether they are missing, already claimed or in the wrong status.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	policy     services.LifecyclePolicy
	logger     *slog.Logger
}

// NewClaimOrderCommandHandler creates the handler for claim requests.
func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier, logger *slog.Logger) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     services.NewLifecyclePolicy(),
		logger:     componentLogger(logger, "claim_order"),
	}
}

// Handle attaches the worker and returns the claimed order. Of several
// concurrent claims on one order exactly one succeeds; the others see the
// order already taken and get errs.ErrObjectNotFound.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := withConflictRetry(ctx, h.logger, func(ctx context.Context) (*order.Order, error) {
		return h.attempt(ctx, cmd)
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order claimed",
		"order_id", o.ID().String(),
		"worker_id", cmd.Worker().ID().String(),
	)
	publish(ctx, h.notifier, h.logger, o)
	return o, nil
}

func (h ClaimOrderCommandHandler) attempt(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
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
	if err = h.policy.Claim(o, cmd.Worker(), time.Now()); err != nil {
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
