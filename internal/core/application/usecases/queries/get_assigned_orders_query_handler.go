package queries

import (
	"context"

	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/domain/services"
	"orderlifecycle/internal/core/ports"
)

// GetAssignedOrdersQueryHandler lists what a delivery worker currently holds.
// A worker may only list their own orders; administrators may list anyone's.
type GetAssignedOrdersQueryHandler struct {
	reader ports.OrderReader
	policy services.LifecyclePolicy
}

func NewGetAssignedOrdersQueryHandler(reader ports.OrderReader) GetAssignedOrdersQueryHandler {
	return GetAssignedOrdersQueryHandler{reader: reader, policy: services.NewLifecyclePolicy()}
}

// Handle is unbounded: a worker only ever holds a handful of active orders.
func (h GetAssignedOrdersQueryHandler) Handle(ctx context.Context, query GetAssignedOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanListDeliveries(query.viewer, query.workerID); err != nil {
		return nil, err
	}

	worker := query.workerID
	orders, err := h.reader.FindMany(ctx, ports.OrderFilter{
		Statuses:   order.ActiveDeliveryStatuses,
		AssignedTo: &worker,
		Sort:       ports.NewestFirst,
	})
	if err != nil {
		return nil, err
	}

	return newOrderResponses(orders), nil
}
