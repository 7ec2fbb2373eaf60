package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
		msg  string
	}{
		{common.NewValidationError("email must be a valid address"), codes.InvalidArgument, "email must be a valid address"},
		{common.ErrorInvalidCredentials, codes.Unauthenticated, "invalid credentials"},
		{common.ErrorUnauthorized, codes.Unauthenticated, "unauthorized"},
		{fmt.Errorf("%w: resolve token subject: db down", common.ErrorInternal), codes.Internal, "internal error"},
		{common.ErrorForbidden, codes.PermissionDenied, "forbidden"},
		{common.ErrorDuplicateUsername, codes.AlreadyExists, "username already exists"},
		{fmt.Errorf("%w: put: timeout", common.ErrorStorage), codes.Unavailable, "avatar upload failed"},
		{common.ErrorNotFound, codes.NotFound, "user not found"},
		{fmt.Errorf("%w: pq: password authentication failed", common.ErrorInternal), codes.Internal, "internal error"},
		{errors.New("boom"), codes.Internal, "internal error"},
	}

	for _, tt := range tests {
		st := status.Convert(toStatus(context.Background(), nopLogger{}, tt.err))
		assert.Equal(t, tt.code, st.Code(), tt.err.Error())
		assert.Equal(t, tt.msg, st.Message(), tt.err.Error())
	}
}

func TestRateLimiter_OnlyListedMethods(t *testing.T) {
	rl := newRateLimiter(0.001, 1, "/svc/Login")

	assert.True(t, rl.allow("/svc/Login", "10.0.0.1"))
	assert.False(t, rl.allow("/svc/Login", "10.0.0.1"))
	assert.True(t, rl.allow("/svc/Login", "10.0.0.2"), "buckets are per peer")
	assert.True(t, rl.allow("/svc/Me", "10.0.0.1"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := newRateLimiter(0, 0, "/svc/Login")
	for i := 0; i < 100; i++ {
		assert.True(t, rl.allow("/svc/Login", "k"))
	}
}
