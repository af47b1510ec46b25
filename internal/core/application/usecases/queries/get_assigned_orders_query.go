package queries

import (
	"errors"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/pkg/guard"
)

var ErrGetAssignedOrdersQueryIsNotConstructed = errors.New(
	"GetAssignedOrdersQuery must be created via NewGetAssignedOrdersQuery constructor",
)

// GetAssignedOrdersQuery lists a worker's READY and IN_TRANSIT orders.
type GetAssignedOrdersQuery struct {
	workerID kernel.UUID
	viewer   kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetAssignedOrdersQuery requires a worker id; the viewer is checked by the handler.
func NewGetAssignedOrdersQuery(workerID kernel.UUID, viewer kernel.Actor) (GetAssignedOrdersQuery, error) {
	if err := workerID.Validate(); err != nil {
		return GetAssignedOrdersQuery{}, err
	}
	return GetAssignedOrdersQuery{workerID: workerID, viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAssignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignedOrdersQueryIsNotConstructed)
}
