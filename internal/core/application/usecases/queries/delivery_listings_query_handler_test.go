package queries_test

import (
	"errors"
	"testing"

	"orderlifecycle/internal/core/application/usecases/queries"
	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/ports"
	"orderlifecycle/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func workerActor(t *testing.T, id kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, kernel.RoleDeliveryMan, "")
	require.NoError(t, err)
	return a
}

func TestGetAvailableOrdersQueryHandler_Handle(t *testing.T) {
	courier := actor(t, kernel.RoleDeliveryMan, "")

	t.Run("asks_for_unassigned_claimable_orders", func(t *testing.T) {
		// Given
		reader := new(MockOrderReader)
		orders := []*order.Order{storedOrder(t, order.Ready, nil), storedOrder(t, order.Confirmed, nil)}
		reader.On("FindMany", mock.Anything, mock.MatchedBy(func(f ports.OrderFilter) bool {
			return f.Unassigned &&
				f.AssignedTo == nil &&
				f.Sort == ports.NewestFirst &&
				f.Limit == queries.AvailableOrdersPageSize &&
				len(f.Statuses) == len(order.ClaimableStatuses)
		})).Return(orders, nil)

		// When
		res, err := queries.NewGetAvailableOrdersQueryHandler(reader).Handle(t.Context(), queries.NewGetAvailableOrdersQuery(courier))

		// Then
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, orders[0].ID().String(), res[0].ID)
		assert.Equal(t, "READY", res[0].Status)
		reader.AssertExpectations(t)
	})

	t.Run("empty_store_returns_empty_slice", func(t *testing.T) {
		reader := new(MockOrderReader)
		reader.On("FindMany", mock.Anything, mock.AnythingOfType("ports.OrderFilter")).Return([]*order.Order{}, nil)

		res, err := queries.NewGetAvailableOrdersQueryHandler(reader).Handle(t.Context(), queries.NewGetAvailableOrdersQuery(courier))

		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("store_failure_is_propagated", func(t *testing.T) {
		reader := new(MockOrderReader)
		reader.On("FindMany", mock.Anything, mock.AnythingOfType("ports.OrderFilter")).
			Return(nil, errs.NewStoreUnavailableError("find orders", errors.New("connection refused")))

		_, err := queries.NewGetAvailableOrdersQueryHandler(reader).Handle(t.Context(), queries.NewGetAvailableOrdersQuery(courier))

		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	})

	t.Run("customers_are_forbidden", func(t *testing.T) {
		reader := new(MockOrderReader)

		_, err := queries.NewGetAvailableOrdersQueryHandler(reader).
			Handle(t.Context(), queries.NewGetAvailableOrdersQuery(actor(t, kernel.RoleCustomer, "jane@example.com")))

		require.ErrorIs(t, err, errs.ErrForbidden)
		reader.AssertNotCalled(t, "FindMany", mock.Anything, mock.Anything)
	})
}

func TestGetAssignedOrdersQueryHandler_Handle(t *testing.T) {
	worker := kernel.NewUUID()
	reader := new(MockOrderReader)
	orders := []*order.Order{storedOrder(t, order.InTransit, &worker), storedOrder(t, order.Ready, &worker)}
	reader.On("FindMany", mock.Anything, mock.MatchedBy(func(f ports.OrderFilter) bool {
		return f.AssignedTo != nil && f.AssignedTo.IsEqual(worker) &&
			!f.Unassigned &&
			f.Limit == 0 &&
			f.Sort == ports.NewestFirst &&
			len(f.Statuses) == 2 && f.Statuses[0] == order.Ready && f.Statuses[1] == order.InTransit
	})).Return(orders, nil)

	query, err := queries.NewGetAssignedOrdersQuery(worker, workerActor(t, worker))
	require.NoError(t, err)

	res, err := queries.NewGetAssignedOrdersQueryHandler(reader).Handle(t.Context(), query)

	require.NoError(t, err)
	require.Len(t, res, 2)
	for _, r := range res {
		require.NotNil(t, r.Delivery.AssignedTo)
		assert.Equal(t, worker.String(), *r.Delivery.AssignedTo)
	}
	reader.AssertExpectations(t)
}

func TestGetCompletedOrdersQueryHandler_Handle(t *testing.T) {
	worker := kernel.NewUUID()
	reader := new(MockOrderReader)
	reader.On("FindMany", mock.Anything, mock.MatchedBy(func(f ports.OrderFilter) bool {
		return f.AssignedTo != nil && f.AssignedTo.IsEqual(worker) &&
			f.Limit == queries.CompletedOrdersPageSize &&
			f.Sort == ports.RecentlyUpdatedFirst &&
			len(f.Statuses) == 1 && f.Statuses[0] == order.Delivered
	})).Return([]*order.Order{storedOrder(t, order.Delivered, &worker)}, nil)

	query, err := queries.NewGetCompletedOrdersQuery(worker, workerActor(t, worker))
	require.NoError(t, err)

	res, err := queries.NewGetCompletedOrdersQueryHandler(reader).Handle(t.Context(), query)

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "DELIVERED", res[0].Status)
	reader.AssertExpectations(t)
}

func TestListingQueries_RejectZeroWorker(t *testing.T) {
	admin := actor(t, kernel.RoleAdmin, "")

	_, err := queries.NewGetAssignedOrdersQuery(kernel.UUID{}, admin)
	require.Error(t, err)

	_, err = queries.NewGetCompletedOrdersQuery(kernel.UUID{}, admin)
	require.Error(t, err)
}

func TestListingQueries_OtherWorkerIsForbidden(t *testing.T) {
	reader := new(MockOrderReader)
	owner := kernel.NewUUID()
	intruder := actor(t, kernel.RoleDeliveryMan, "")

	assigned, err := queries.NewGetAssignedOrdersQuery(owner, intruder)
	require.NoError(t, err)
	_, err = queries.NewGetAssignedOrdersQueryHandler(reader).Handle(t.Context(), assigned)
	require.ErrorIs(t, err, errs.ErrForbidden)

	completed, err := queries.NewGetCompletedOrdersQuery(owner, intruder)
	require.NoError(t, err)
	_, err = queries.NewGetCompletedOrdersQueryHandler(reader).Handle(t.Context(), completed)
	require.ErrorIs(t, err, errs.ErrForbidden)

	reader.AssertNotCalled(t, "FindMany", mock.Anything, mock.Anything)
}

func TestListingQueries_AdminMayListAnyWorker(t *testing.T) {
	worker := kernel.NewUUID()
	reader := new(MockOrderReader)
	reader.On("FindMany", mock.Anything, mock.AnythingOfType("ports.OrderFilter")).Return([]*order.Order{}, nil)

	query, err := queries.NewGetAssignedOrdersQuery(worker, actor(t, kernel.RoleAdmin, ""))
	require.NoError(t, err)

	res, err := queries.NewGetAssignedOrdersQueryHandler(reader).Handle(t.Context(), query)

	require.NoError(t, err)
	assert.Empty(t, res)
}
