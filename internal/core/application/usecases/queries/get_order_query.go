package queries

import (
	"errors"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads a single order on behalf of a viewer.
type GetOrderQuery struct {
	orderID kernel.UUID
	viewer  kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery rejects an invalid orderID. The viewer may be anonymous.
func NewGetOrderQuery(orderID kernel.UUID, viewer kernel.Actor) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}
