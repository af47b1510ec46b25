package grpcserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"orderlifecycle/internal/adapters/in/auth"
	"orderlifecycle/internal/pkg/errs"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// UnaryAuthInterceptor resolves the "authorization" metadata to an actor.
// Calls without the header run as the anonymous actor; methods listed in
// allowUnauthenticated skip the check entirely.
func UnaryAuthInterceptor(verifier *auth.Verifier, allowUnauthenticated ...string) grpc.UnaryServerInterceptor {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, m := range allowUnauthenticated {
		allow[strings.TrimSpace(m)] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := allow[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("authorization"); len(values) > 0 {
				header = values[0]
			}
		}
		actor, err := verifier.ParseAuthorization(header)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid bearer token")
		}
		return handler(auth.WithActor(ctx, actor), req)
	}
}

// UnaryErrorInterceptor converts application errors into gRPC statuses and
// logs failures that are not the caller's fault.
func UnaryErrorInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		st := StatusFor(err)
		if st.Code() == codes.Internal || st.Code() == codes.Unavailable {
			logger.ErrorContext(ctx, "rpc failed", "method", info.FullMethod, "error", err)
		}
		return nil, st.Err()
	}
}

// StatusFor maps err onto a gRPC status.
func StatusFor(err error) *status.Status {
	if st, ok := status.FromError(err); ok {
		return st
	}
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return status.New(codes.NotFound, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return status.New(codes.PermissionDenied, err.Error())
	case errors.Is(err, errs.ErrInvalidTransition):
		return status.New(codes.FailedPrecondition, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return status.New(codes.Aborted, err.Error())
	case errors.Is(err, errs.ErrStoreUnavailable):
		return status.New(codes.Unavailable, "order store unavailable")
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return status.New(codes.InvalidArgument, err.Error())
	}
	return status.New(codes.Internal, "internal error")
}
