package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps domain errors to gRPC statuses. Anything unrecognised is
// logged and reported as a bare Internal.
func toStatus(ctx context.Context, l logging.Logger, err error) error {
	var verr *common.ValidationError

	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Reason)
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, common.ErrorDuplicateUsername):
		return status.Error(codes.AlreadyExists, common.ErrorDuplicateUsername.Error())
	case errors.Is(err, common.ErrorStorage):
		l.Error(ctx, "object storage failure", "error", err)
		return status.Error(codes.Unavailable, "avatar upload failed")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "user not found")
	default:
		l.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
