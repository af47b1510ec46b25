// Package notify delivers committed order lifecycle events to customers and
// downstream systems: e-mail, Kafka and RabbitMQ. Every sink implements
// ports.Notifier and reports failures to the caller, which only logs them.
package notify

import (
	"encoding/json"
	"time"

	"orderlifecycle/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderChanged is the wire payload shared by the broker sinks.
type OrderChanged struct {
	EventID        string    `json:"eventId"`
	Kind           string    `json:"kind"`
	OrderID        string    `json:"orderId"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Status         string    `json:"status"`
	AssignedTo     string    `json:"assignedTo,omitempty"`
	Note           string    `json:"note,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func NewOrderChanged(o *order.Order, e order.Event) OrderChanged {
	msg := OrderChanged{
		EventID:    uuid.NewString(),
		Kind:       string(e.Kind),
		OrderID:    e.OrderID.String(),
		Status:     e.Current.String(),
		Note:       e.Note,
		OccurredAt: e.OccurredAt.UTC(),
	}
	if e.Previous != order.Unknown {
		msg.PreviousStatus = e.Previous.String()
	}
	switch {
	case e.WorkerID != nil:
		msg.AssignedTo = e.WorkerID.String()
	case o != nil && o.AssignedTo() != nil:
		msg.AssignedTo = o.AssignedTo().String()
	}
	return msg
}

func (m OrderChanged) Marshal() ([]byte, error) {
	return json.Marshal(m)
}
