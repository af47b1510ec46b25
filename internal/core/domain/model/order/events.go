package order

import (
	"time"

	"orderlifecycle/internal/core/domain/model/kernel"
)

// EventKind names what happened to an order. The values double as message
// types on the notification sinks.
type EventKind string

const (
	EventCreated       EventKind = "order.created"
	EventStatusChanged EventKind = "order.status_changed"
	EventAssigned      EventKind = "order.assigned"
	EventUnassigned    EventKind = "order.unassigned"
)

// Event is raised by the aggregate and published after the change is committed.
type Event struct {
	Kind       EventKind
	OrderID    kernel.UUID
	Previous   Status
	Current    Status
	WorkerID   *kernel.UUID
	Note       string
	OccurredAt time.Time
}
