package grpcserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"orderlifecycle/internal/adapters/in/auth"
	"orderlifecycle/internal/core/application/usecases/commands"
	"orderlifecycle/internal/core/application/usecases/queries"
	"orderlifecycle/internal/core/domain/model/kernel"
	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/pkg/errs"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var _ OrderLifecycleServer = (*Server)(nil)

// Server implements OrderLifecycleServer on top of the application use cases.
type Server struct {
	applyTransitionHandler    commands.ApplyTransitionCommandHandler
	claimOrderHandler         commands.ClaimOrderCommandHandler
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler
	getAssignedOrdersHandler  queries.GetAssignedOrdersQueryHandler
	getCompletedOrdersHandler queries.GetCompletedOrdersQueryHandler
}

func NewServer(
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	getAssignedOrdersHandler queries.GetAssignedOrdersQueryHandler,
	getCompletedOrdersHandler queries.GetCompletedOrdersQueryHandler,
) *Server {
	return &Server{
		applyTransitionHandler:    applyTransitionHandler,
		claimOrderHandler:         claimOrderHandler,
		getAvailableOrdersHandler: getAvailableOrdersHandler,
		getAssignedOrdersHandler:  getAssignedOrdersHandler,
		getCompletedOrdersHandler: getCompletedOrdersHandler,
	}
}

func (s *Server) ApplyTransition(ctx context.Context, req *ApplyTransitionRequest) (*queries.OrderResponse, error) {
	orderID, err := parseID("orderId", req.OrderID)
	if err != nil {
		return nil, err
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	cmd, err := commands.NewApplyTransitionCommand(orderID, target, auth.ActorFromContext(ctx), req.Note)
	if err != nil {
		return nil, err
	}

	o, err := s.applyTransitionHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	res := queries.NewOrderResponse(o)
	return &res, nil
}

func (s *Server) Claim(ctx context.Context, req *ClaimRequest) (*queries.OrderResponse, error) {
	orderID, err := parseID("orderId", req.OrderID)
	if err != nil {
		return nil, err
	}
	cmd, err := commands.NewClaimOrderCommand(orderID, auth.ActorFromContext(ctx))
	if err != nil {
		return nil, err
	}

	o, err := s.claimOrderHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	res := queries.NewOrderResponse(o)
	return &res, nil
}

func (s *Server) AvailableOrders(ctx context.Context, _ *ListRequest) (*OrderList, error) {
	res, err := s.getAvailableOrdersHandler.Handle(ctx, queries.NewGetAvailableOrdersQuery(auth.ActorFromContext(ctx)))
	if err != nil {
		return nil, err
	}
	return &OrderList{Orders: res}, nil
}

func (s *Server) AssignedOrders(ctx context.Context, req *ListRequest) (*OrderList, error) {
	viewer := auth.ActorFromContext(ctx)
	worker, err := listedWorker(viewer, req)
	if err != nil {
		return nil, err
	}
	query, err := queries.NewGetAssignedOrdersQuery(worker, viewer)
	if err != nil {
		return nil, err
	}

	res, err := s.getAssignedOrdersHandler.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	return &OrderList{Orders: res}, nil
}

func (s *Server) CompletedOrders(ctx context.Context, req *ListRequest) (*OrderList, error) {
	viewer := auth.ActorFromContext(ctx)
	worker, err := listedWorker(viewer, req)
	if err != nil {
		return nil, err
	}
	query, err := queries.NewGetCompletedOrdersQuery(worker, viewer)
	if err != nil {
		return nil, err
	}

	res, err := s.getCompletedOrdersHandler.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	return &OrderList{Orders: res}, nil
}

func parseID(param, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	if err = id.Validate(); err != nil {
		return kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return id, nil
}

func listedWorker(viewer kernel.Actor, req *ListRequest) (kernel.UUID, error) {
	if req.WorkerID != "" {
		return parseID("workerId", req.WorkerID)
	}
	if viewer.IsAnonymous() {
		return kernel.UUID{}, errs.NewForbiddenError("list deliveries", "authentication required")
	}
	return viewer.ID(), nil
}

// NewGRPCServer builds a server with the lifecycle service and the standard
// health service registered.
func NewGRPCServer(srv OrderLifecycleServer, verifier *auth.Verifier, logger *slog.Logger) (*grpc.Server, *health.Server) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "grpc")

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		UnaryAuthInterceptor(verifier, healthCheckMethod),
		UnaryErrorInterceptor(logger),
	))
	RegisterOrderLifecycleServer(s, srv)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return s, hs
}

// Start listens on addr and serves in the background. The returned function
// stops the server gracefully, falling back to a hard stop when ctx expires.
func Start(addr string, srv OrderLifecycleServer, verifier *auth.Verifier, logger *slog.Logger) (func(context.Context) error, error) {
	if addr == "" {
		addr = ":50051"
	}
	if logger == nil {
		logger = slog.Default()
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("grpc listen %s: %w", addr, err)
	}

	s, hs := NewGRPCServer(srv, verifier, logger)
	go func() {
		if serveErr := s.Serve(lis); serveErr != nil {
			logger.Error("grpc server stopped", "error", serveErr)
		}
	}()

	return func(ctx context.Context) error {
		hs.Shutdown()
		done := make(chan struct{})
		go func() { s.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()
		}
	}, nil
}
