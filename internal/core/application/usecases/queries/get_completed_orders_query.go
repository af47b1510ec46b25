package queries

import (
	"errors"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/pkg/guard"
)

var ErrGetCompletedOrdersQueryIsNotConstructed = errors.New(
	"GetCompletedOrdersQuery must be created via NewGetCompletedOrdersQuery constructor",
)

// GetCompletedOrdersQuery lists a worker's most recent deliveries.
type GetCompletedOrdersQuery struct {
	workerID kernel.UUID
	viewer   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetCompletedOrdersQuery(workerID kernel.UUID, viewer kernel.Actor) (GetCompletedOrdersQuery, error) {
	if err := workerID.Validate(); err != nil {
		return GetCompletedOrdersQuery{}, err
	}
	return GetCompletedOrdersQuery{workerID: workerID, viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCompletedOrdersQueryIsNotConstructed)
}
