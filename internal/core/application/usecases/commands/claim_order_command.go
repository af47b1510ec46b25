package commands

import (
	"errors"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand attaches the acting delivery worker to an order.
type ClaimOrderCommand struct {
	orderID kernel.UUID
	worker  kernel.Actor

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a claim on behalf of worker. The worker's role
// is checked by the handler, so any actor is accepted here.
func NewClaimOrderCommand(orderID kernel.UUID, worker kernel.Actor) (ClaimOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ClaimOrderCommand{}, err
	}

	return ClaimOrderCommand{
		orderID: orderID,
		worker:  worker,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c ClaimOrderCommand) Worker() kernel.Actor { return c.worker }
