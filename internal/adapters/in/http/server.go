package http

import (
	"net/http"

	"orderlifecycle/internal/adapters/in/auth"
	"orderlifecycle/internal/core/application/usecases/commands"
	"orderlifecycle/internal/core/application/usecases/queries"
	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var _ ServerInterface = (*Server)(nil)

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Contact struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"contactInfo"`
	Delivery struct {
		Address      string `json:"address"`
		Instructions string `json:"instructions"`
	} `json:"deliveryDetails"`
	Prepaid bool `json:"prepaid"`
}

// TransitionRequest is the body of POST /orders/{orderId}/transitions.
type TransitionRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	applyTransitionHandler commands.ApplyTransitionCommandHandler
	claimOrderHandler      commands.ClaimOrderCommandHandler
	unassignOrderHandler   commands.UnassignOrderCommandHandler

	getOrderHandler           queries.GetOrderQueryHandler
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler
	getAssignedOrdersHandler  queries.GetAssignedOrdersQueryHandler
	getCompletedOrdersHandler queries.GetCompletedOrdersQueryHandler
}

func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	unassignOrderHandler commands.UnassignOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	getAssignedOrdersHandler queries.GetAssignedOrdersQueryHandler,
	getCompletedOrdersHandler queries.GetCompletedOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		applyTransitionHandler:    applyTransitionHandler,
		claimOrderHandler:         claimOrderHandler,
		unassignOrderHandler:      unassignOrderHandler,
		getOrderHandler:           getOrderHandler,
		getAvailableOrdersHandler: getAvailableOrdersHandler,
		getAssignedOrdersHandler:  getAssignedOrdersHandler,
		getCompletedOrdersHandler: getCompletedOrdersHandler,
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return ProblemValidation.WithDetail("request body is not valid JSON")
	}

	contact, err := kernel.NewContactInfo(body.Contact.Name, body.Contact.Email, body.Contact.Phone)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), contact,
		body.Delivery.Address, body.Delivery.Instructions, body.Prepaid, actorOf(ctx))
	if err != nil {
		return err
	}

	o, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	ctx.Response().Header().Set(echo.HeaderLocation, "/api/v1/orders/"+o.ID().String())
	return ctx.JSON(http.StatusCreated, queries.NewOrderResponse(o))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID OrderID) error {
	id, err := kernelID(orderID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id, actorOf(ctx))
	if err != nil {
		return err
	}

	res, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

// ApplyTransition handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) ApplyTransition(ctx echo.Context, orderID OrderID) error {
	var body TransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return ProblemValidation.WithDetail("request body is not valid JSON")
	}

	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}
	id, err := kernelID(orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewApplyTransitionCommand(id, target, actorOf(ctx), body.Note)
	if err != nil {
		return err
	}

	o, err := s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderResponse(o))
}

// ClaimOrder handles POST /api/v1/orders/{orderId}/claim.
func (s *Server) ClaimOrder(ctx echo.Context, orderID OrderID) error {
	id, err := kernelID(orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewClaimOrderCommand(id, actorOf(ctx))
	if err != nil {
		return err
	}

	o, err := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderResponse(o))
}

// UnassignOrder handles DELETE /api/v1/orders/{orderId}/assignment.
func (s *Server) UnassignOrder(ctx echo.Context, orderID OrderID) error {
	id, err := kernelID(orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUnassignOrderCommand(id, actorOf(ctx))
	if err != nil {
		return err
	}

	o, err := s.unassignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderResponse(o))
}

// GetAvailableOrders handles GET /api/v1/delivery/available.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	res, err := s.getAvailableOrdersHandler.Handle(ctx.Request().Context(),
		queries.NewGetAvailableOrdersQuery(actorOf(ctx)))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

// GetAssignedOrders handles GET /api/v1/delivery/assigned.
func (s *Server) GetAssignedOrders(ctx echo.Context, params WorkerListParams) error {
	viewer := actorOf(ctx)
	worker, err := listedWorker(viewer, params)
	if err != nil {
		return err
	}
	query, err := queries.NewGetAssignedOrdersQuery(worker, viewer)
	if err != nil {
		return err
	}

	res, err := s.getAssignedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

// GetCompletedOrders handles GET /api/v1/delivery/completed.
func (s *Server) GetCompletedOrders(ctx echo.Context, params WorkerListParams) error {
	viewer := actorOf(ctx)
	worker, err := listedWorker(viewer, params)
	if err != nil {
		return err
	}
	query, err := queries.NewGetCompletedOrdersQuery(worker, viewer)
	if err != nil {
		return err
	}

	res, err := s.getCompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func actorOf(ctx echo.Context) kernel.Actor {
	return auth.ActorFromContext(ctx.Request().Context())
}

func kernelID(id OrderID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// listedWorker defaults to the caller.
func listedWorker(viewer kernel.Actor, params WorkerListParams) (kernel.UUID, error) {
	if params.WorkerID != nil {
		return kernelID(*params.WorkerID)
	}
	if viewer.IsAnonymous() {
		return kernel.UUID{}, errs.NewForbiddenError("list deliveries", "authentication required")
	}
	return viewer.ID(), nil
}
