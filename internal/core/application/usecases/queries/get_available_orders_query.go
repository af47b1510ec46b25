package queries

import (
	"errors"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery lists the claim candidate set, newest first.
type GetAvailableOrdersQuery struct {
	viewer kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetAvailableOrdersQuery(viewer kernel.Actor) GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{viewer: viewer, guard: guard.NewConstructorGuard()}
}

func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}
