package commands_test

import (
	"testing"
	"time"

	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var seededAt = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func testContact(t *testing.T) kernel.ContactInfo {
	t.Helper()
	c, err := kernel.NewContactInfo("Jane Doe", "jane@example.com", "")
	require.NoError(t, err)
	return c
}

func testActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role, "")
	require.NoError(t, err)
	return a
}

// storedOrder returns a freshly restored aggregate, as the repository would.
func storedOrder(t *testing.T, id kernel.UUID, status order.Status, assignee *kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(id, status, testContact(t), assignee, "1 Main St", "",
		[]order.HistoryEntry{order.NewHistoryEntry(status, seededAt, "seed")}, seededAt, seededAt)
	require.NoError(t, err)
	return o
}
