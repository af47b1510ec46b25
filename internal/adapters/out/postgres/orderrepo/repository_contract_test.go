package orderrepo_test

import (
	"context"
	"time"

	"orderlifecycle/internal/adapters/out/postgres/orderrepo"
	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/ports"
	"orderlifecycle/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var seededAt = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

// repositoryContract holds the behaviour every order store must share.
// Concrete suites provide db and reset.
type repositoryContract struct {
	suite.Suite
	db         *gorm.DB
	reset      func() error
	repository *orderrepo.GormOrderRepository
}

func (s *repositoryContract) SetupTest() {
	s.Require().NoError(s.reset())
	s.repository = orderrepo.NewGormOrderRepository(s.db)
}

func (s *repositoryContract) TestAdd_ThenGet_RoundTripsEveryField() {
	ctx := context.Background()
	worker := kernel.NewUUID()
	stored := s.storeOrder(order.Ready, &worker, seededAt)

	got, err := s.repository.Get(ctx, stored.ID())
	s.Require().NoError(err)

	s.True(got.ID().IsEqual(stored.ID()))
	s.Equal(order.Ready, got.Status())
	s.Equal("Jane Doe", got.Contact().Name())
	s.Equal("jane@example.com", got.Contact().Email())
	s.Equal("+15550100", got.Contact().Phone())
	s.Require().NotNil(got.AssignedTo())
	s.True(got.AssignedTo().IsEqual(worker))
	s.Equal("1 Main St", got.Address())
	s.Equal("Leave at the door", got.Instructions())
	s.True(got.CreatedAt().Equal(seededAt))
	s.True(got.UpdatedAt().Equal(seededAt))

	history := got.History()
	s.Require().Len(history, 1)
	s.Equal(order.Ready, history[0].Status())
	s.Equal("seed", history[0].Note())
	s.True(history[0].Timestamp().Equal(seededAt))
}

func (s *repositoryContract) TestAdd_DuplicateID_ReturnsConflict() {
	o := s.storeOrder(order.Pending, nil, seededAt)

	err := s.repository.Add(context.Background(), o)

	s.Require().ErrorIs(err, errs.ErrConflict)
}

func (s *repositoryContract) TestAdd_LiteralOrder_IsRejected() {
	err := s.repository.Add(context.Background(), &order.Order{})

	s.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
}

func (s *repositoryContract) TestGet_MissingOrder_ReturnsNotFound() {
	_, err := s.repository.Get(context.Background(), kernel.NewUUID())

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *repositoryContract) TestUpdateIf_MatchingPrecondition_WritesTransition() {
	ctx := context.Background()
	stored := s.storeOrder(order.Pending, nil, seededAt)

	loaded, err := s.repository.Get(ctx, stored.ID())
	s.Require().NoError(err)
	expected := ports.ExpectState(loaded)
	later := seededAt.Add(time.Minute)
	s.Require().NoError(loaded.ChangeStatus(order.Confirmed, "", later))

	s.Require().NoError(s.repository.UpdateIf(ctx, loaded, expected))

	got, err := s.repository.Get(ctx, stored.ID())
	s.Require().NoError(err)
	s.Equal(order.Confirmed, got.Status())
	s.True(got.UpdatedAt().Equal(later))
	s.True(got.CreatedAt().Equal(seededAt))
	history := got.History()
	s.Require().Len(history, 2)
	s.Equal("Status changed from PENDING to CONFIRMED", history[1].Note())
}

func (s *repositoryContract) TestUpdateIf_StaleStatus_ReturnsConflictAndKeepsRow() {
	ctx := context.Background()
	stored := s.storeOrder(order.Pending, nil, seededAt)

	first, err := s.repository.Get(ctx, stored.ID())
	s.Require().NoError(err)
	second, err := s.repository.Get(ctx, stored.ID())
	s.Require().NoError(err)

	firstExpected := ports.ExpectState(first)
	s.Require().NoError(first.ChangeStatus(order.Confirmed, "", seededAt.Add(time.Minute)))
	s.Require().NoError(s.repository.UpdateIf(ctx, first, firstExpected))

	secondExpected := ports.ExpectState(second)
	s.Require().NoError(second.ChangeStatus(order.Cancelled, "", seededAt.Add(2*time.Minute)))
	err = s.repository.UpdateIf(ctx, second, secondExpected)

	s.Require().ErrorIs(err, errs.ErrConflict)
	got, err := s.repository.Get(ctx, stored.ID())
	s.Require().NoError(err)
	s.Equal(order.Confirmed, got.Status())
}

func (s *repositoryContract) TestUpdateIf_SecondClaim_ReturnsConflict() {
	ctx := context.Background()
	stored := s.storeOrder(order.Confirmed, nil, seededAt)
	alice, bob := kernel.NewUUID(), kernel.NewUUID()

	a, err := s.repository.Get(ctx, stored.ID())
	s.Require().NoError(err)
	b, err := s.repository.Get(ctx, stored.ID())
	s.Require().NoError(err)

	aExpected := ports.ExpectState(a)
	s.Require().NoError(a.Claim(alice, seededAt.Add(time.Second)))
	s.Require().NoError(s.repository.UpdateIf(ctx, a, aExpected))

	bExpected := ports.ExpectState(b)
	s.Require().NoError(b.Claim(bob, seededAt.Add(2*time.Second)))
	s.Require().ErrorIs(s.repository.UpdateIf(ctx, b, bExpected), errs.ErrConflict)

	got, err := s.repository.Get(ctx, stored.ID())
	s.Require().NoError(err)
	s.Require().NotNil(got.AssignedTo())
	s.True(got.AssignedTo().IsEqual(alice))
}

func (s *repositoryContract) TestUpdateIf_ExpectedAssignee_GuardsReassignment() {
	ctx := context.Background()
	alice := kernel.NewUUID()
	stored := s.storeOrder(order.Ready, &alice, seededAt)

	loaded, err := s.repository.Get(ctx, stored.ID())
	s.Require().NoError(err)
	expected := ports.ExpectState(loaded)
	s.Require().NoError(loaded.ChangeStatus(order.InTransit, "", seededAt.Add(time.Minute)))

	bob := kernel.NewUUID()
	wrong := expected
	wrong.AssignedTo = &bob
	s.Require().ErrorIs(s.repository.UpdateIf(ctx, loaded, wrong), errs.ErrConflict)

	s.Require().NoError(s.repository.UpdateIf(ctx, loaded, expected))
}

func (s *repositoryContract) TestUpdateIf_MissingOrder_ReturnsNotFound() {
	o := s.newOrder(order.Pending, nil, seededAt)
	expected := ports.ExpectState(o)

	err := s.repository.UpdateIf(context.Background(), o, expected)

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *repositoryContract) TestFindMany_AvailableOrders() {
	ctx := context.Background()
	worker := kernel.NewUUID()

	oldest := s.storeOrder(order.Confirmed, nil, seededAt)
	newest := s.storeOrder(order.Ready, nil, seededAt.Add(2*time.Hour))
	middle := s.storeOrder(order.Processing, nil, seededAt.Add(time.Hour))
	s.storeOrder(order.Pending, nil, seededAt.Add(3*time.Hour))
	s.storeOrder(order.Ready, &worker, seededAt.Add(4*time.Hour))
	s.storeOrder(order.Cancelled, nil, seededAt.Add(5*time.Hour))

	got, err := s.repository.FindMany(ctx, ports.OrderFilter{
		Statuses:   order.ClaimableStatuses,
		Unassigned: true,
		Sort:       ports.NewestFirst,
	})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.True(got[0].ID().IsEqual(newest.ID()))
	s.True(got[1].ID().IsEqual(middle.ID()))
	s.True(got[2].ID().IsEqual(oldest.ID()))

	limited, err := s.repository.FindMany(ctx, ports.OrderFilter{
		Statuses:   order.ClaimableStatuses,
		Unassigned: true,
		Sort:       ports.NewestFirst,
		Limit:      2,
	})
	s.Require().NoError(err)
	s.Require().Len(limited, 2)
	s.True(limited[0].ID().IsEqual(newest.ID()))
}

func (s *repositoryContract) TestFindMany_AssignedAndCompletedOrders() {
	ctx := context.Background()
	worker, other := kernel.NewUUID(), kernel.NewUUID()

	ready := s.storeOrder(order.Ready, &worker, seededAt)
	inTransit := s.storeOrder(order.InTransit, &worker, seededAt.Add(time.Hour))
	s.storeOrder(order.InTransit, &other, seededAt.Add(2*time.Hour))
	s.storeOrder(order.Processing, &worker, seededAt.Add(3*time.Hour))

	assigned, err := s.repository.FindMany(ctx, ports.OrderFilter{
		Statuses:   order.ActiveDeliveryStatuses,
		AssignedTo: &worker,
		Sort:       ports.NewestFirst,
	})
	s.Require().NoError(err)
	s.Require().Len(assigned, 2)
	s.True(assigned[0].ID().IsEqual(inTransit.ID()))
	s.True(assigned[1].ID().IsEqual(ready.ID()))

	// Created early but delivered last: sorts by update time, not creation.
	early := s.storeOrderAt(order.Delivered, &worker, seededAt, seededAt.Add(10*time.Hour))
	late := s.storeOrderAt(order.Delivered, &worker, seededAt.Add(5*time.Hour), seededAt.Add(6*time.Hour))
	s.storeOrderAt(order.Delivered, &other, seededAt, seededAt.Add(11*time.Hour))

	completed, err := s.repository.FindMany(ctx, ports.OrderFilter{
		Statuses:   []order.Status{order.Delivered},
		AssignedTo: &worker,
		Sort:       ports.RecentlyUpdatedFirst,
		Limit:      10,
	})
	s.Require().NoError(err)
	s.Require().Len(completed, 2)
	s.True(completed[0].ID().IsEqual(early.ID()))
	s.True(completed[1].ID().IsEqual(late.ID()))
}

func (s *repositoryContract) TestFindMany_NoMatches_ReturnsEmptySlice() {
	got, err := s.repository.FindMany(context.Background(), ports.OrderFilter{
		Statuses: []order.Status{order.Delivered},
	})

	s.Require().NoError(err)
	s.NotNil(got)
	s.Empty(got)
}

func (s *repositoryContract) TestFindMany_NegativeLimit_IsRejected() {
	_, err := s.repository.FindMany(context.Background(), ports.OrderFilter{Limit: -1})

	s.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (s *repositoryContract) newOrder(status order.Status, assignee *kernel.UUID, createdAt time.Time) *order.Order {
	return s.newOrderAt(status, assignee, createdAt, createdAt)
}

func (s *repositoryContract) newOrderAt(status order.Status, assignee *kernel.UUID, createdAt, updatedAt time.Time) *order.Order {
	contact, err := kernel.NewContactInfo("Jane Doe", "jane@example.com", "+15550100")
	s.Require().NoError(err)

	o, err := order.RestoreOrder(kernel.NewUUID(), status, contact, assignee, "1 Main St", "Leave at the door",
		[]order.HistoryEntry{order.NewHistoryEntry(status, updatedAt, "seed")}, createdAt, updatedAt)
	s.Require().NoError(err)
	return o
}

func (s *repositoryContract) storeOrder(status order.Status, assignee *kernel.UUID, createdAt time.Time) *order.Order {
	return s.storeOrderAt(status, assignee, createdAt, createdAt)
}

func (s *repositoryContract) storeOrderAt(status order.Status, assignee *kernel.UUID, createdAt, updatedAt time.Time) *order.Order {
	o := s.newOrderAt(status, assignee, createdAt, updatedAt)
	s.Require().NoError(s.repository.Add(context.Background(), o))
	return o
}
