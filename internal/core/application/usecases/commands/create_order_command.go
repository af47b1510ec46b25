package commands

import (
	"errors"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned by Validate for a zero-value command.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order on behalf of actor.
//
// Pre-paid orders start CONFIRMED and skip the confirmation step, so only
// administrators and the system may request them. The actor may be anonymous
// for ordinary orders.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	contact      kernel.ContactInfo
	address      string
	instructions string
	prepaid      bool
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated CreateOrderCommand.
//
// Returns an error if orderID or contact are not constructed. Whether actor
// may place a pre-paid order is decided by the handler.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	contact kernel.ContactInfo,
	address, instructions string,
	prepaid bool,
	actor kernel.Actor,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		address:      address,
		instructions: instructions,
		prepaid:      prepaid,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setContact(contact),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateOrderCommand) Contact() kernel.ContactInfo { return c.contact }
func (c CreateOrderCommand) Address() string { return c.address }
func (c CreateOrderCommand) Instructions() string { return c.instructions }
func (c CreateOrderCommand) Prepaid() bool { return c.prepaid }
func (c CreateOrderCommand) Actor() kernel.Actor { return c.actor }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setContact(contact kernel.ContactInfo) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	c.contact = contact
	return nil
}
