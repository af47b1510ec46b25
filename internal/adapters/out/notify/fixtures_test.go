package notify_test

import (
	"context"
	"testing"
	"time"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

// confirmedOrder returns an order placed and confirmed, with both events.
func confirmedOrder(t *testing.T) (*order.Order, order.Event, order.Event) {
	t.Helper()
	contact, err := kernel.NewContactInfo("Jane Doe", "jane@example.com", "")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), contact, "1 Main St", "", order.Pending, placedAt)
	require.NoError(t, err)
	require.NoError(t, o.ChangeStatus(order.Confirmed, "payment received", placedAt.Add(time.Minute)))

	events := o.PullEvents()
	require.Len(t, events, 2)
	return o, events[0], events[1]
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, o *order.Order, e order.Event) error {
	args := m.Called(ctx, o, e)
	return args.Error(0)
}
