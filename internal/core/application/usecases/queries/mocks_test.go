package queries_test

import (
	"context"
	"testing"
	"time"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) FindMany(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

var seededAt = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func storedOrder(t *testing.T, status order.Status, assignee *kernel.UUID) *order.Order {
	t.Helper()
	contact, err := kernel.NewContactInfo("Jane Doe", "jane@example.com", "+15550100")
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), status, contact, assignee, "1 Main St", "Ring twice",
		[]order.HistoryEntry{order.NewHistoryEntry(status, seededAt, "seed")}, seededAt, seededAt)
	require.NoError(t, err)
	return o
}

func actor(t *testing.T, role kernel.Role, email string) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role, email)
	require.NoError(t, err)
	return a
}
