package commands

import (
	"errors"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/pkg/guard"
)

// ErrApplyTransitionCommandIsNotConstructed is returned by Validate for a zero-value command.
var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand moves an order to a target status on behalf of an actor.
// The actor may be anonymous; authorisation happens in the handler.
type ApplyTransitionCommand struct {
	orderID kernel.UUID
	target  order.Status
	actor   kernel.Actor
	note    string

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates a validated command.
//
// Parameters:
//   - orderID: The order to change (must be valid UUID)
//   - target: The requested status (must be a defined status)
//   - actor: The caller, possibly anonymous
//   - note: Optional history note; length is checked by the aggregate
//
// Returns joined validation errors for orderID and target. Whether the edge
// exists and whether actor may take it is decided by the handler.
func NewApplyTransitionCommand(orderID kernel.UUID, target order.Status, actor kernel.Actor, note string) (ApplyTransitionCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate()); err != nil {
		return ApplyTransitionCommand{}, err
	}

	return ApplyTransitionCommand{
		orderID: orderID,
		target:  target,
		actor:   actor,
		note:    note,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created via NewApplyTransitionCommand.
func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

func (c ApplyTransitionCommand) OrderID() kernel.UUID { return c.orderID }
func (c ApplyTransitionCommand) Target() order.Status { return c.target }
func (c ApplyTransitionCommand) Actor() kernel.Actor { return c.actor }
func (c ApplyTransitionCommand) Note() string { return c.note }
