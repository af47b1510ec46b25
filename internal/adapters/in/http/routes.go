package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// OrderID is the orderId path parameter.
type OrderID = uuid.UUID

// WorkerListParams are the query parameters of the worker listings.
type WorkerListParams struct {
	// WorkerID lets an administrator list another worker's orders.
	WorkerID *uuid.UUID `form:"workerId,omitempty" json:"workerId,omitempty"`
}

// ServerInterface is the set of operations described in api/openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderID OrderID) error
	// (POST /api/v1/orders/{orderId}/transitions)
	ApplyTransition(ctx echo.Context, orderID OrderID) error
	// (POST /api/v1/orders/{orderId}/claim)
	ClaimOrder(ctx echo.Context, orderID OrderID) error
	// (DELETE /api/v1/orders/{orderId}/assignment)
	UnassignOrder(ctx echo.Context, orderID OrderID) error
	// (GET /api/v1/delivery/available)
	GetAvailableOrders(ctx echo.Context) error
	// (GET /api/v1/delivery/assigned)
	GetAssignedOrders(ctx echo.Context, params WorkerListParams) error
	// (GET /api/v1/delivery/completed)
	GetCompletedOrders(ctx echo.Context, params WorkerListParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ApplyTransition(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ApplyTransition(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ClaimOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ClaimOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UnassignOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UnassignOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) GetAvailableOrders(ctx echo.Context) error {
	return w.Handler.GetAvailableOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetAssignedOrders(ctx echo.Context) error {
	params, err := bindWorkerListParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetAssignedOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetCompletedOrders(ctx echo.Context) error {
	params, err := bindWorkerListParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetCompletedOrders(ctx, params)
}

func bindOrderID(ctx echo.Context) (OrderID, error) {
	var orderID OrderID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return OrderID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderID, nil
}

func bindWorkerListParams(ctx echo.Context) (WorkerListParams, error) {
	var params WorkerListParams
	err := runtime.BindQueryParameter("form", true, false, "workerId", ctx.QueryParams(), &params.WorkerID)
	if err != nil {
		return WorkerListParams{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter workerId: %s", err))
	}
	return params, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation to router under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/orders", w.CreateOrder)
	router.GET(baseURL+"/orders/:orderId", w.GetOrder)
	router.POST(baseURL+"/orders/:orderId/transitions", w.ApplyTransition)
	router.POST(baseURL+"/orders/:orderId/claim", w.ClaimOrder)
	router.DELETE(baseURL+"/orders/:orderId/assignment", w.UnassignOrder)
	router.GET(baseURL+"/delivery/available", w.GetAvailableOrders)
	router.GET(baseURL+"/delivery/assigned", w.GetAssignedOrders)
	router.GET(baseURL+"/delivery/completed", w.GetCompletedOrders)
}
