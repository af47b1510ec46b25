// Package orderrepo maps the order aggregate to the "orders" table.
package orderrepo

import (
	"time"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row shape of an order. History is stored inline as JSON so a
// conditional update writes status and history in one statement.
type OrderDTO struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Status       string            `gorm:"type:varchar(16);not null;index"`
	ContactName  string            `gorm:"not null"`
	ContactEmail string            `gorm:"not null;index"`
	ContactPhone string            `gorm:"type:varchar(64)"`
	AssignedTo   *uuid.UUID        `gorm:"type:uuid;index"`
	Address      string            `gorm:"not null"`
	Instructions string            `gorm:"type:text"`
	History      []HistoryEntryDTO `gorm:"type:text;serializer:json;not null"`
	CreatedAt    time.Time         `gorm:"not null;index;index:idx_orders_unassigned_created,sort:desc,where:assigned_to IS NULL;autoCreateTime:false"`
	UpdatedAt    time.Time         `gorm:"not null;index;autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type HistoryEntryDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

func fromDomain(o *order.Order) OrderDTO {
	var assignedTo *uuid.UUID
	if id := o.AssignedTo(); id != nil {
		raw := id.Bytes()
		assignedTo = &raw
	}

	history := o.History()
	entries := make([]HistoryEntryDTO, 0, len(history))
	for _, h := range history {
		entries = append(entries, HistoryEntryDTO{
			Status:    h.Status().String(),
			Timestamp: h.Timestamp(),
			Note:      h.Note(),
		})
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		Status:       o.Status().String(),
		ContactName:  o.Contact().Name(),
		ContactEmail: o.Contact().Email(),
		ContactPhone: o.Contact().Phone(),
		AssignedTo:   assignedTo,
		Address:      o.Address(),
		Instructions: o.Instructions(),
		History:      entries,
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	contact, err := kernel.NewContactInfo(dto.ContactName, dto.ContactEmail, dto.ContactPhone)
	if err != nil {
		return nil, err
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		worker, workerErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if workerErr != nil {
			return nil, workerErr
		}
		assignedTo = &worker
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		s, statusErr := order.ParseStatus(h.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		history = append(history, order.NewHistoryEntry(s, h.Timestamp, h.Note))
	}

	return order.RestoreOrder(id, status, contact, assignedTo, dto.Address, dto.Instructions,
		history, dto.CreatedAt, dto.UpdatedAt)
}
