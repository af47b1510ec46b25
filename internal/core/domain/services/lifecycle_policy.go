package services

import (
	"fmt"
	"time"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/pkg/errs"
)

// LifecyclePolicy authorises actors against the transition table and applies
// the change to the aggregate. Checks run in a fixed order: the edge must exist,
// then the actor's role must be allowed, then assignee-bound edges require the
// actor to hold the order.
//
// LifecyclePolicy is stateless and safe for concurrent use.
type LifecyclePolicy struct{}

// NewLifecyclePolicy creates the policy.
func NewLifecyclePolicy() LifecyclePolicy {
	return LifecyclePolicy{}
}

// CanPlace decides whether actor may place an order. Anyone may place an
// ordinary order; a pre-paid order starts CONFIRMED and therefore needs the
// same roles as the PENDING -> CONFIRMED edge.
func (LifecyclePolicy) CanPlace(actor kernel.Actor, prepaid bool) error {
	if !prepaid {
		return nil
	}

	edge, err := order.Pending.EdgeTo(order.Confirmed)
	if err != nil {
		return err
	}
	if actor.IsAnonymous() || !edge.Allows(actor.Role()) {
		return errs.NewForbiddenError("place pre-paid order", "only administrators or the system may confirm orders")
	}
	return nil
}

// Transition moves o to target on behalf of actor.
//
// Parameters:
//   - o: The order to change (must be constructed)
//   - target: The requested status
//   - actor: The caller; anonymous callers are always refused
//   - note: Optional history note
//   - now: Time of the change
//
// Returns:
//   - nil when the order was changed
//   - *errs.InvalidTransitionError when the edge does not exist, checked before
//     any role so an impossible request never reports Forbidden
//   - *errs.ForbiddenError when the role or assignee check fails
//
// Example:
//
//	policy := services.NewLifecyclePolicy()
//	if err := policy.Transition(o, order.InTransit, worker, "", time.Now()); err != nil {
//	    // errors.Is(err, errs.ErrForbidden) or errs.ErrInvalidTransition
//	}
func (LifecyclePolicy) Transition(o *order.Order, target order.Status, actor kernel.Actor, note string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	edge, err := o.Status().EdgeTo(target)
	if err != nil {
		return err
	}

	action := fmt.Sprintf("transition %s -> %s", edge.From, edge.To)
	if actor.IsAnonymous() {
		return errs.NewForbiddenError(action, "anonymous caller")
	}
	if !edge.Allows(actor.Role()) {
		return errs.NewForbiddenError(action, "role "+actor.Role().String())
	}
	if edge.AssigneeOnly && !o.IsAssignedTo(actor.ID()) {
		return errs.NewForbiddenError(action, "order is not assigned to caller")
	}

	return o.ChangeStatus(target, note, now)
}

// Claim assigns o to the acting delivery worker. Only DELIVERY_MAN may claim;
// an order outside the candidate set reports errs.ErrObjectNotFound.
func (LifecyclePolicy) Claim(o *order.Order, actor kernel.Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleDeliveryMan) {
		return errs.NewForbiddenError("claim order", "only delivery workers may claim")
	}
	return o.Claim(actor.ID(), now)
}

// Unassign is an administrative override that returns a claimed order to the
// candidate set. Only ADMIN may call it.
func (LifecyclePolicy) Unassign(o *order.Order, actor kernel.Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleAdmin) {
		return errs.NewForbiddenError("unassign order", "only administrators may unassign")
	}
	return o.Unassign(now)
}

// CanView decides whether viewer may read o. Anonymous viewers are refused.
func (LifecyclePolicy) CanView(o *order.Order, viewer kernel.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}

	switch {
	case viewer.IsAnonymous():
		return errs.NewForbiddenError("view order", "anonymous caller")
	case viewer.Is(kernel.RoleAdmin), viewer.Is(kernel.RoleSystem):
		return nil
	case viewer.Is(kernel.RoleDeliveryMan):
		if o.IsAssignedTo(viewer.ID()) || o.IsClaimable() {
			return nil
		}
	case viewer.Is(kernel.RoleCustomer):
		if viewer.Email() != "" && viewer.Email() == o.Contact().Email() {
			return nil
		}
	}
	return errs.NewForbiddenError("view order", "not a participant")
}

// CanBrowseAvailable allows delivery workers and administrators to see the
// claim candidate set.
func (LifecyclePolicy) CanBrowseAvailable(viewer kernel.Actor) error {
	if viewer.Is(kernel.RoleDeliveryMan) || viewer.Is(kernel.RoleAdmin) {
		return nil
	}
	return errs.NewForbiddenError("list available orders", "only delivery workers and administrators")
}

// CanListDeliveries allows a worker to list their own orders and an
// administrator to list anyone's.
func (LifecyclePolicy) CanListDeliveries(viewer kernel.Actor, worker kernel.UUID) error {
	switch {
	case viewer.Is(kernel.RoleAdmin):
		return nil
	case viewer.Is(kernel.RoleDeliveryMan) && viewer.ID().IsEqual(worker):
		return nil
	}
	return errs.NewForbiddenError("list deliveries", "not the worker or an administrator")
}
