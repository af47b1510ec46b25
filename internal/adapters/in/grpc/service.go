package grpcserver

import (
	"context"

	"orderlifecycle/internal/core/application/usecases/queries"

	"google.golang.org/grpc"
)

const ServiceName = "orderlifecycle.v1.OrderLifecycle"

const (
	ApplyTransitionFullMethod = "/" + ServiceName + "/ApplyTransition"
	ClaimFullMethod           = "/" + ServiceName + "/Claim"
	AvailableOrdersFullMethod = "/" + ServiceName + "/AvailableOrders"
	AssignedOrdersFullMethod  = "/" + ServiceName + "/AssignedOrders"
	CompletedOrdersFullMethod = "/" + ServiceName + "/CompletedOrders"
)

type ApplyTransitionRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Note    string `json:"note,omitempty"`
}

type ClaimRequest struct {
	OrderID string `json:"orderId"`
}

// ListRequest selects whose orders to list. An empty WorkerID means the caller.
type ListRequest struct {
	WorkerID string `json:"workerId,omitempty"`
}

type OrderList struct {
	Orders []queries.OrderResponse `json:"orders"`
}

// OrderLifecycleServer is the server API for the OrderLifecycle service.
type OrderLifecycleServer interface {
	ApplyTransition(context.Context, *ApplyTransitionRequest) (*queries.OrderResponse, error)
	Claim(context.Context, *ClaimRequest) (*queries.OrderResponse, error)
	AvailableOrders(context.Context, *ListRequest) (*OrderList, error)
	AssignedOrders(context.Context, *ListRequest) (*OrderList, error)
	CompletedOrders(context.Context, *ListRequest) (*OrderList, error)
}

func RegisterOrderLifecycleServer(s grpc.ServiceRegistrar, srv OrderLifecycleServer) {
	s.RegisterService(&OrderLifecycleServiceDesc, srv)
}

// OrderLifecycleServiceDesc describes the service for grpc.Server.
var OrderLifecycleServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderLifecycleServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ApplyTransition", Handler: applyTransitionHandler},
		{MethodName: "Claim", Handler: claimHandler},
		{MethodName: "AvailableOrders", Handler: availableOrdersHandler},
		{MethodName: "AssignedOrders", Handler: assignedOrdersHandler},
		{MethodName: "CompletedOrders", Handler: completedOrdersHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "orderlifecycle/v1/order_lifecycle",
}

func applyTransitionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ApplyTransitionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderLifecycleServer).ApplyTransition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ApplyTransitionFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderLifecycleServer).ApplyTransition(ctx, req.(*ApplyTransitionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func claimHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ClaimRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderLifecycleServer).Claim(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ClaimFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderLifecycleServer).Claim(ctx, req.(*ClaimRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func availableOrdersHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return listHandler(srv, ctx, dec, interceptor, AvailableOrdersFullMethod, OrderLifecycleServer.AvailableOrders)
}

func assignedOrdersHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return listHandler(srv, ctx, dec, interceptor, AssignedOrdersFullMethod, OrderLifecycleServer.AssignedOrders)
}

func completedOrdersHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return listHandler(srv, ctx, dec, interceptor, CompletedOrdersFullMethod, OrderLifecycleServer.CompletedOrders)
}

func listHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
	fullMethod string,
	call func(OrderLifecycleServer, context.Context, *ListRequest) (*OrderList, error),
) (any, error) {
	in := new(ListRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return call(srv.(OrderLifecycleServer), ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return call(srv.(OrderLifecycleServer), ctx, req.(*ListRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// OrderLifecycleClient calls the service with the JSON codec.
type OrderLifecycleClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderLifecycleClient(cc grpc.ClientConnInterface) *OrderLifecycleClient {
	return &OrderLifecycleClient{cc: cc}
}

func (c *OrderLifecycleClient) ApplyTransition(ctx context.Context, in *ApplyTransitionRequest, opts ...grpc.CallOption) (*queries.OrderResponse, error) {
	out := new(queries.OrderResponse)
	if err := c.invoke(ctx, ApplyTransitionFullMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderLifecycleClient) Claim(ctx context.Context, in *ClaimRequest, opts ...grpc.CallOption) (*queries.OrderResponse, error) {
	out := new(queries.OrderResponse)
	if err := c.invoke(ctx, ClaimFullMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderLifecycleClient) AvailableOrders(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*OrderList, error) {
	return c.list(ctx, AvailableOrdersFullMethod, in, opts)
}

func (c *OrderLifecycleClient) AssignedOrders(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*OrderList, error) {
	return c.list(ctx, AssignedOrdersFullMethod, in, opts)
}

func (c *OrderLifecycleClient) CompletedOrders(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*OrderList, error) {
	return c.list(ctx, CompletedOrdersFullMethod, in, opts)
}

func (c *OrderLifecycleClient) list(ctx context.Context, method string, in *ListRequest, opts []grpc.CallOption) (*OrderList, error) {
	out := new(OrderList)
	if err := c.invoke(ctx, method, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderLifecycleClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
