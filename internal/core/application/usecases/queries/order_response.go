// Package queries contains read-only use cases over the order store.
package queries

import (
	"time"

	"orderlifecycle/internal/core/domain/model/order"
)

const (
	AvailableOrdersPageSize = 20
	CompletedOrdersPageSize = 10
)

// OrderResponse is the read model returned to transports.
type OrderResponse struct {
	ID            string                 `json:"id"`
	Status        string                 `json:"status"`
	Contact       ContactResponse        `json:"contactInfo"`
	Delivery      DeliveryResponse       `json:"deliveryDetails"`
	StatusHistory []HistoryEntryResponse `json:"statusHistory"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

type ContactResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type DeliveryResponse struct {
	AssignedTo   *string `json:"assignedTo,omitempty"`
	Address      string  `json:"address"`
	Instructions string  `json:"instructions,omitempty"`
}

// HistoryEntryResponse is one status history entry.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

// NewOrderResponse maps the aggregate to its wire shape, shared by the HTTP
// and gRPC surfaces.
func NewOrderResponse(o *order.Order) OrderResponse {
	var assignedTo *string
	if id := o.AssignedTo(); id != nil {
		s := id.String()
		assignedTo = &s
	}

	history := o.History()
	entries := make([]HistoryEntryResponse, 0, len(history))
	for _, h := range history {
		entries = append(entries, HistoryEntryResponse{
			Status:    h.Status().String(),
			Timestamp: h.Timestamp(),
			Note:      h.Note(),
		})
	}

	return OrderResponse{
		ID:     o.ID().String(),
		Status: o.Status().String(),
		Contact: ContactResponse{
			Name:  o.Contact().Name(),
			Email: o.Contact().Email(),
			Phone: o.Contact().Phone(),
		},
		Delivery: DeliveryResponse{
			AssignedTo:   assignedTo,
			Address:      o.Address(),
			Instructions: o.Instructions(),
		},
		StatusHistory: entries,
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

func newOrderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
