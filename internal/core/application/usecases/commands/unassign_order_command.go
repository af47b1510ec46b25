package commands

import (
	"errors"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/pkg/guard"
)

var ErrUnassignOrderCommandIsNotConstructed = errors.New(
	"UnassignOrderCommand must be created via NewUnassignOrderCommand constructor",
)

// UnassignOrderCommand releases an order from its delivery worker.
type UnassignOrderCommand struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewUnassignOrderCommand creates a validated command.
func NewUnassignOrderCommand(orderID kernel.UUID, actor kernel.Actor) (UnassignOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UnassignOrderCommand{}, err
	}

	return UnassignOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UnassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnassignOrderCommandIsNotConstructed)
}

func (c UnassignOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c UnassignOrderCommand) Actor() kernel.Actor { return c.actor }
