package ports

import (
	"context"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"
)

// SortOrder selects the ordering of FindMany results.
type SortOrder int

const (
	// NewestFirst sorts by creation time, descending.
	NewestFirst SortOrder = iota
	// RecentlyUpdatedFirst sorts by last update time, descending.
	RecentlyUpdatedFirst
)

// OrderFilter selects orders for FindMany. Zero fields do not constrain.
type OrderFilter struct {
	Statuses   []order.Status
	AssignedTo *kernel.UUID
	Unassigned bool
	Sort       SortOrder
	// Limit of 0 returns every match.
	Limit int
}

// Precondition guards a conditional update. The update applies only if the
// stored order still has Status and the expected assignee.
type Precondition struct {
	Status order.Status
	// Unassigned requires that no worker holds the order.
	Unassigned bool
	// AssignedTo requires that this worker holds the order.
	AssignedTo *kernel.UUID
}

// OrderReader is the read side of the order store.
type OrderReader interface {
	// Get returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	FindMany(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}

// OrderRepository is the persistence contract for order aggregates.
// Infrastructure failures are reported as errs.StoreUnavailableError.
type OrderRepository interface {
	OrderReader

	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateIf atomically writes aggregate when the stored row still matches
	// expected, and returns errs.ConflictError otherwise.
	UpdateIf(ctx context.Context, aggregate *order.Order, expected Precondition) error
}

// ExpectState captures the guard fields of o as currently loaded. Take it
// before mutating the aggregate.
func ExpectState(o *order.Order) Precondition {
	assignee := o.AssignedTo()
	return Precondition{
		Status:     o.Status(),
		Unassigned: assignee == nil,
		AssignedTo: assignee,
	}
}
