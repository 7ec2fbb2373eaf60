package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophaccounts/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// fakeServer records the authorization header of each call.
type fakeServer struct {
	mu          sync.Mutex
	lastAuth    string
	lastUpdate  *api.UpdateUserRequest
	lastAvatar  string
	lastDeleted string

	err error
}

func (f *fakeServer) record(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAuth = ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get("authorization"); len(v) > 0 {
			f.lastAuth = v[0]
		}
	}
}

func (f *fakeServer) Login(ctx context.Context, in *api.LoginRequest) (*api.LoginResponse, error) {
	f.record(ctx)
	if in.Password != "secret1" {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}
	return &api.LoginResponse{AccessToken: "tok-" + in.Username, User: &api.User{ID: "u1", Username: in.Username}}, nil
}

func (f *fakeServer) Signup(ctx context.Context, in *api.SignupRequest) (*api.User, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &api.User{ID: "u1", Username: in.Username, Email: in.Email, FullName: in.FullName, Role: "USER"}, nil
}

func (f *fakeServer) Me(ctx context.Context, in *api.MeRequest) (*api.User, error) {
	f.record(ctx)
	if f.lastAuth == "" {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	return &api.User{ID: "u1", Username: "alice"}, nil
}

func (f *fakeServer) UpdateUser(ctx context.Context, in *api.UpdateUserRequest) (*api.User, error) {
	f.record(ctx)
	f.lastUpdate = in
	u := &api.User{ID: "u1", Username: "alice"}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	return u, nil
}

func (f *fakeServer) UpdateAvatar(ctx context.Context, in *api.UpdateAvatarRequest) (*api.User, error) {
	f.record(ctx)
	f.lastAvatar = in.Base64Image
	return &api.User{ID: "u1", Avatar: "https://example/a.jpg"}, nil
}

func (f *fakeServer) ListUsers(ctx context.Context, in *api.ListUsersRequest) (*api.ListUsersResponse, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &api.ListUsersResponse{Users: []*api.User{{ID: "u1"}, {ID: "u2"}}}, nil
}

func (f *fakeServer) DeleteUser(ctx context.Context, in *api.DeleteUserRequest) (*api.DeleteUserResponse, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	f.lastDeleted = in.UserID
	return &api.DeleteUserResponse{Deleted: true}, nil
}

func startServer(t *testing.T, srv *fakeServer, token string) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer()
	api.RegisterAccountServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet", token,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestLogin_StoresTokenForLaterCalls(t *testing.T) {
	srv := &fakeServer{}
	c := startServer(t, srv, "")
	ctx := context.Background()

	_, err := c.Me(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "unauthorized")

	resp, err := c.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok-alice", resp.AccessToken)
	assert.Equal(t, "tok-alice", c.AccessToken())
	assert.Empty(t, srv.lastAuth)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "Bearer tok-alice", srv.lastAuth)
}

func TestLogin_WrongPassword(t *testing.T) {
	c := startServer(t, &fakeServer{}, "")

	_, err := c.Login(context.Background(), "alice", "nope")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.AccessToken())
}

func TestPresetTokenIsSent(t *testing.T) {
	srv := &fakeServer{}
	c := startServer(t, srv, "preset")

	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "Bearer preset", srv.lastAuth)
}

func TestUpdateCalls(t *testing.T) {
	srv := &fakeServer{}
	c := startServer(t, srv, "t")
	ctx := context.Background()

	name := "Alice A."
	u, err := c.UpdateUser(ctx, &api.UpdateUserRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, u.FullName)
	assert.Nil(t, srv.lastUpdate.Email)

	u, err = c.UpdateAvatar(ctx, "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "https://example/a.jpg", u.Avatar)
	assert.Equal(t, "data:image/png;base64,AAAA", srv.lastAvatar)

	require.NoError(t, c.DeleteUser(ctx, "u2"))
	assert.Equal(t, "u2", srv.lastDeleted)
}

func TestServerErrorsAreMapped(t *testing.T) {
	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.PermissionDenied, ErrForbidden},
		{codes.NotFound, ErrNotFound},
		{codes.AlreadyExists, ErrConflict},
		{codes.InvalidArgument, ErrInvalidInput},
		{codes.ResourceExhausted, ErrRateLimited},
		{codes.Unavailable, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			srv := &fakeServer{err: status.Error(tt.code, "server says no")}
			c := startServer(t, srv, "t")

			err := c.DeleteUser(context.Background(), "u2")
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "server says no")
		})
	}
}

func TestMapError_UnknownCodeKeepsStatus(t *testing.T) {
	err := mapError(status.Error(codes.Internal, "internal error"))
	assert.Equal(t, codes.Internal, status.Code(errors.Unwrap(err)))

	plain := errors.New("boom")
	assert.ErrorIs(t, mapError(plain), plain)
}
