package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/pkg/errs"
	"orderlifecycle/internal/pkg/guard"
)

const (
	// PlacedNote is the note of the first history entry of every order.
	PlacedNote    = "Order placed"
	maxNoteLength = 500
	maxTextLength = 1000
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder. A zero Order carries no identity or history.
var ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the lifecycle. It owns the status, the
// append-only status history and the delivery assignment of one order.
//
// Order follows these invariants:
//   - Status only moves along an edge of the transition table
//   - Every status change appends exactly one history entry; the last entry
//     always matches the current status
//   - A worker can only be attached while the order is claimable
//   - IN_TRANSIT and terminal orders keep their assignee
//
// Authorisation is not checked here. services.LifecyclePolicy decides who may
// call ChangeStatus, Claim and Unassign. Every mutation records an Event that
// the application layer publishes after the change is committed.
type Order struct {
	id           kernel.UUID
	status       Status
	contact      kernel.ContactInfo
	assignedTo   *kernel.UUID
	address      string
	instructions string
	history      []HistoryEntry
	createdAt    time.Time
	updatedAt    time.Time

	events []Event
	guard  guard.ConstructorGuard
}

// NewOrder places a new order.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - contact: Validated customer contact details
//   - address: Delivery address (required, at most 1000 characters)
//   - instructions: Optional delivery instructions
//   - initial: PENDING, or CONFIRMED for pre-paid orders
//   - now: Placement time, stored in UTC
//
// Returns:
//   - *Order: The order with a single "Order placed" history entry and an
//     EventCreated pending publication
//   - error: Joined validation errors if any parameter is invalid
//
// Example:
//
//	contact, _ := kernel.NewContactInfo("Jane Doe", "jane@example.com", "")
//	o, err := order.NewOrder(kernel.NewUUID(), contact, "1 Main St", "", order.Pending, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	contact kernel.ContactInfo,
	address, instructions string,
	initial Status,
	now time.Time,
) (*Order, error) {
	if initial != Pending && initial != Confirmed {
		return nil, errs.NewValueIsInvalidErrorWithCause("initialStatus",
			fmt.Errorf("%s is not a valid initial status", initial))
	}

	o := &Order{
		status: initial,
		guard:  guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		o.setID(id),
		o.setContact(contact),
		o.setDeliveryDetails(address, instructions),
	); err != nil {
		return nil, err
	}

	now = now.UTC()
	o.createdAt = now
	o.updatedAt = now
	o.history = []HistoryEntry{NewHistoryEntry(initial, now, PlacedNote)}
	o.raise(Event{Kind: EventCreated, OrderID: id, Previous: Unknown, Current: initial, Note: PlacedNote, OccurredAt: now})

	return o, nil
}

// RestoreOrder rebuilds a persisted order without raising events. Any status
// is accepted, but the history must be non-empty and end with that status.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	contact kernel.ContactInfo,
	assignedTo *kernel.UUID,
	address, instructions string,
	history []HistoryEntry,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		o.setID(id),
		o.setContact(contact),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("statusHistory")
	}
	if last := history[len(history)-1].Status(); last != status {
		return nil, errs.NewValueIsInvalidErrorWithCause("statusHistory",
			fmt.Errorf("last entry is %s but order is %s", last, status))
	}
	if assignedTo != nil {
		if err := assignedTo.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("assignedTo", err)
		}
		worker := *assignedTo
		o.assignedTo = &worker
	}

	o.status = status
	o.address = address
	o.instructions = instructions
	o.history = append([]HistoryEntry(nil), history...)
	o.createdAt = createdAt.UTC()
	o.updatedAt = updatedAt.UTC()
	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed for nil or zero-value orders
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Status() Status { return o.status }
func (o *Order) Contact() kernel.ContactInfo { return o.contact }
func (o *Order) Address() string { return o.address }
func (o *Order) Instructions() string { return o.instructions }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// AssignedTo returns nil when no worker holds the order.
func (o *Order) AssignedTo() *kernel.UUID {
	if o.assignedTo == nil {
		return nil
	}
	id := *o.assignedTo
	return &id
}

// IsAssignedTo reports whether worker currently holds the order.
func (o *Order) IsAssignedTo(worker kernel.UUID) bool {
	return o.assignedTo != nil && o.assignedTo.IsEqual(worker)
}

// History returns a copy of the status history, oldest first.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// IsClaimable reports whether the order is in the claim candidate set:
// unassigned and in a claimable status (CONFIRMED, PROCESSING or READY).
func (o *Order) IsClaimable() bool {
	return o.assignedTo == nil && o.status.IsClaimable()
}

// ChangeStatus moves the order along a lifecycle edge and records the change.
// Authorisation is the caller's concern.
//
// Parameters:
//   - target: The status to move to
//   - note: Optional history note (at most 500 characters); an empty note
//     becomes DefaultTransitionNote
//   - now: Time of the change, stored in UTC
//
// Returns:
//   - nil after appending a history entry and raising EventStatusChanged
//   - *errs.InvalidTransitionError if there is no edge to target; the order
//     is left untouched
//   - errs.ErrValueIsOutOfRange if the note is too long
func (o *Order) ChangeStatus(target Status, note string, now time.Time) error {
	if _, err := o.status.EdgeTo(target); err != nil {
		return err
	}

	note = strings.TrimSpace(note)
	if note == "" {
		note = DefaultTransitionNote(o.status, target)
	}
	if len(note) > maxNoteLength {
		return errs.NewValueIsOutOfRangeError("note.length", len(note), 1, maxNoteLength)
	}

	now = now.UTC()
	previous := o.status
	o.status = target
	o.history = append(o.history, NewHistoryEntry(target, now, note))
	o.updatedAt = now
	o.raise(Event{Kind: EventStatusChanged, OrderID: o.id, Previous: previous, Current: target, WorkerID: o.AssignedTo(), Note: note, OccurredAt: now})
	return nil
}

// Claim attaches a delivery worker. Orders outside the candidate set report
// not found, whatever the reason, so a worker cannot tell "taken by someone
// else" from "never available". Claiming adds no history entry; it raises
// EventAssigned.
func (o *Order) Claim(worker kernel.UUID, now time.Time) error {
	if err := worker.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("workerId", err)
	}
	if !o.IsClaimable() {
		return errs.NewObjectNotFoundError("order", o.id.String())
	}

	now = now.UTC()
	o.assignedTo = &worker
	o.updatedAt = now
	o.raise(Event{Kind: EventAssigned, OrderID: o.id, Previous: o.status, Current: o.status, WorkerID: o.AssignedTo(), OccurredAt: now})
	return nil
}

// Unassign clears the worker and raises EventUnassigned. In-transit and
// terminal orders keep their assignee, and an unassigned order reports
// errs.ErrValueIsInvalid.
func (o *Order) Unassign(now time.Time) error {
	if o.assignedTo == nil {
		return errs.NewValueIsInvalidErrorWithCause("assignedTo", errors.New("order is not assigned"))
	}
	if o.status == InTransit || o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot unassign an order in %s", o.status))
	}

	now = now.UTC()
	previous := o.AssignedTo()
	o.assignedTo = nil
	o.updatedAt = now
	o.raise(Event{Kind: EventUnassigned, OrderID: o.id, Previous: o.status, Current: o.status, WorkerID: previous, OccurredAt: now})
	return nil
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// DefaultTransitionNote is the history note used when the caller gives none.
func DefaultTransitionNote(from, to Status) string {
	return fmt.Sprintf("Status changed from %s to %s", from, to)
}

func (o *Order) raise(e Event) {
	o.events = append(o.events, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setContact(contact kernel.ContactInfo) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	o.contact = contact
	return nil
}

func (o *Order) setDeliveryDetails(address, instructions string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryDetails.address")
	}
	if len(address) > maxTextLength {
		return errs.NewValueIsOutOfRangeError("deliveryDetails.address.length", len(address), 1, maxTextLength)
	}
	instructions = strings.TrimSpace(instructions)
	if len(instructions) > maxTextLength {
		return errs.NewValueIsOutOfRangeError("deliveryDetails.instructions.length", len(instructions), 0, maxTextLength)
	}
	o.address = address
	o.instructions = instructions
	return nil
}
