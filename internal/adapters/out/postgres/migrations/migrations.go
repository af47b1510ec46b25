// Package migrations owns the order store schema. The gorm DTOs are the single
// source of truth for both PostgreSQL and SQLite.
package migrations

import (
	"errors"

	"orderlifecycle/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// AvailableIndex is the partial index declared on OrderDTO.CreatedAt. It
// serves the available-orders listing: unassigned orders, newest first.
const AvailableIndex = "idx_orders_unassigned_created"

// Run brings the schema up to date. It is safe to call on every start.
func Run(db *gorm.DB) error {
	if db == nil {
		return errors.New("migrations: nil database")
	}
	return db.AutoMigrate(&orderrepo.OrderDTO{})
}
