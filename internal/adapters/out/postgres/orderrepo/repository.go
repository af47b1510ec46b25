package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/ports"
	"orderlifecycle/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("order", aggregate.ID().String())
		}
		return errs.NewStoreUnavailableError("add order", err)
	}
	return nil
}

// UpdateIf writes the whole row in a single statement guarded by the expected
// status and assignee. Zero affected rows means another writer got there first.
func (r *GormOrderRepository) UpdateIf(ctx context.Context, aggregate *order.Order, expected ports.Precondition) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	tx := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.Status.String())
	switch {
	case expected.AssignedTo != nil:
		tx = tx.Where("assigned_to = ?", expected.AssignedTo.Bytes())
	case expected.Unassigned:
		tx = tx.Where("assigned_to IS NULL")
	}

	result := tx.Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		return errs.NewStoreUnavailableError("update order", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// Distinguish a vanished order from a lost race.
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return errs.NewStoreUnavailableError("update order", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewConflictError("order", aggregate.ID().String())
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewStoreUnavailableError("get order", err)
	}

	return toDomain(dto)
}

// FindMany returns the orders matching filter, sorted with the row id as a
// tie-breaker so pages are stable.
func (r *GormOrderRepository) FindMany(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	tx := r.db.WithContext(ctx).Model(&OrderDTO{})

	if len(filter.Statuses) > 0 {
		names := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			names = append(names, s.String())
		}
		tx = tx.Where("status IN ?", names)
	}
	if filter.AssignedTo != nil {
		tx = tx.Where("assigned_to = ?", filter.AssignedTo.Bytes())
	}
	if filter.Unassigned {
		tx = tx.Where("assigned_to IS NULL")
	}

	switch filter.Sort {
	case ports.NewestFirst:
		tx = tx.Order("created_at DESC").Order("id DESC")
	case ports.RecentlyUpdatedFirst:
		tx = tx.Order("updated_at DESC").Order("id DESC")
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("sort", fmt.Errorf("unknown sort order %d", filter.Sort))
	}

	if filter.Limit < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("limit", fmt.Errorf("%d is negative", filter.Limit))
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var dtos []OrderDTO
	if err := tx.Find(&dtos).Error; err != nil {
		return nil, errs.NewStoreUnavailableError("find orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
