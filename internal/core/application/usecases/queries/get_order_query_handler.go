package queries

import (
	"context"

	"orderlifecycle/internal/core/domain/services"
	"orderlifecycle/internal/core/ports"
)

// GetOrderQueryHandler returns an order the viewer is allowed to see.
type GetOrderQueryHandler struct {
	reader ports.OrderReader
	policy services.LifecyclePolicy
}

func NewGetOrderQueryHandler(reader ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader, policy: services.NewLifecyclePolicy()}
}

// Handle loads the order and applies LifecyclePolicy.CanView. A missing order
// is errs.ErrObjectNotFound; a hidden one is errs.ErrForbidden.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	o, err := h.reader.Get(ctx, query.orderID)
	if err != nil {
		return OrderResponse{}, err
	}

	if err = h.policy.CanView(o, query.viewer); err != nil {
		return OrderResponse{}, err
	}

	return NewOrderResponse(o), nil
}
