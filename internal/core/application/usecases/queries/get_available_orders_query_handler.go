package queries

import (
	"context"

	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/domain/services"
	"orderlifecycle/internal/core/ports"
)

// GetAvailableOrdersQueryHandler serves the claim candidate set to delivery
// workers and administrators.
type GetAvailableOrdersQueryHandler struct {
	reader ports.OrderReader
	policy services.LifecyclePolicy
}

// NewGetAvailableOrdersQueryHandler reads through reader without a transaction.
func NewGetAvailableOrdersQueryHandler(reader ports.OrderReader) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{reader: reader, policy: services.NewLifecyclePolicy()}
}

// Handle returns at most AvailableOrdersPageSize unassigned orders.
func (h GetAvailableOrdersQueryHandler) Handle(ctx context.Context, query GetAvailableOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanBrowseAvailable(query.viewer); err != nil {
		return nil, err
	}

	orders, err := h.reader.FindMany(ctx, ports.OrderFilter{
		Statuses:   order.ClaimableStatuses,
		Unassigned: true,
		Sort:       ports.NewestFirst,
		Limit:      AvailableOrdersPageSize,
	})
	if err != nil {
		return nil, err
	}

	return newOrderResponses(orders), nil
}
