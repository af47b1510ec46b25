package queries

import (
	"context"

	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/domain/services"
	"orderlifecycle/internal/core/ports"
)

// GetCompletedOrdersQueryHandler lists a worker's delivered orders under the
// same access rule as GetAssignedOrdersQueryHandler.
type GetCompletedOrdersQueryHandler struct {
	reader ports.OrderReader
	policy services.LifecyclePolicy
}

func NewGetCompletedOrdersQueryHandler(reader ports.OrderReader) GetCompletedOrdersQueryHandler {
	return GetCompletedOrdersQueryHandler{reader: reader, policy: services.NewLifecyclePolicy()}
}

// Handle returns at most CompletedOrdersPageSize delivered orders, most recently updated first.
func (h GetCompletedOrdersQueryHandler) Handle(ctx context.Context, query GetCompletedOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanListDeliveries(query.viewer, query.workerID); err != nil {
		return nil, err
	}

	worker := query.workerID
	orders, err := h.reader.FindMany(ctx, ports.OrderFilter{
		Statuses:   []order.Status{order.Delivered},
		AssignedTo: &worker,
		Sort:       ports.RecentlyUpdatedFirst,
		Limit:      CompletedOrdersPageSize,
	})
	if err != nil {
		return nil, err
	}

	return newOrderResponses(orders), nil
}
