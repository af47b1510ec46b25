package queries_test

import (
	"testing"

	"orderlifecycle/internal/core/application/usecases/queries"
	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	t.Run("owner_sees_order", func(t *testing.T) {
		// Given
		ctx := t.Context()
		reader := new(MockOrderReader)
		o := storedOrder(t, order.Confirmed, nil)
		reader.On("Get", mock.Anything, o.ID()).Return(o, nil)

		query, err := queries.NewGetOrderQuery(o.ID(), actor(t, kernel.RoleCustomer, "Jane@Example.com"))
		require.NoError(t, err)

		// When
		res, err := queries.NewGetOrderQueryHandler(reader).Handle(ctx, query)

		// Then
		require.NoError(t, err)
		assert.Equal(t, o.ID().String(), res.ID)
		assert.Equal(t, "CONFIRMED", res.Status)
		assert.Equal(t, "jane@example.com", res.Contact.Email)
		assert.Equal(t, "1 Main St", res.Delivery.Address)
		assert.Nil(t, res.Delivery.AssignedTo)
		require.Len(t, res.StatusHistory, 1)
		assert.Equal(t, "seed", res.StatusHistory[0].Note)
		reader.AssertExpectations(t)
	})

	t.Run("other_customer_is_forbidden", func(t *testing.T) {
		reader := new(MockOrderReader)
		o := storedOrder(t, order.Pending, nil)
		reader.On("Get", mock.Anything, o.ID()).Return(o, nil)

		query, err := queries.NewGetOrderQuery(o.ID(), actor(t, kernel.RoleCustomer, "mallory@example.com"))
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(reader).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("anonymous_is_forbidden", func(t *testing.T) {
		reader := new(MockOrderReader)
		o := storedOrder(t, order.Pending, nil)
		reader.On("Get", mock.Anything, o.ID()).Return(o, nil)

		query, err := queries.NewGetOrderQuery(o.ID(), kernel.Anonymous())
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(reader).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("assigned_worker_sees_order", func(t *testing.T) {
		reader := new(MockOrderReader)
		worker := actor(t, kernel.RoleDeliveryMan, "")
		id := worker.ID()
		o := storedOrder(t, order.InTransit, &id)
		reader.On("Get", mock.Anything, o.ID()).Return(o, nil)

		query, err := queries.NewGetOrderQuery(o.ID(), worker)
		require.NoError(t, err)

		res, err := queries.NewGetOrderQueryHandler(reader).Handle(t.Context(), query)

		require.NoError(t, err)
		require.NotNil(t, res.Delivery.AssignedTo)
		assert.Equal(t, id.String(), *res.Delivery.AssignedTo)
	})

	t.Run("missing_order_is_not_found", func(t *testing.T) {
		reader := new(MockOrderReader)
		id := kernel.NewUUID()
		reader.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id.String()))

		query, err := queries.NewGetOrderQuery(id, actor(t, kernel.RoleAdmin, ""))
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(reader).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("literal_query_is_rejected", func(t *testing.T) {
		reader := new(MockOrderReader)

		_, err := queries.NewGetOrderQueryHandler(reader).Handle(t.Context(), queries.GetOrderQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
		reader.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
