// Package commands contains the operations that change order state.
// Every command is validated, executed inside a unit of work and published
// to the notifier only after the transaction commits.
package commands

import (
	"context"

	"orderlifecycle/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to the transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//   // ... uow.OrderRepository()
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a unit of work per attempt.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
