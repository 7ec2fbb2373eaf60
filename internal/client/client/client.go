// Package client is the gRPC client of the accounts service used by the CLI.
package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophaccounts/internal/api"
	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	conn        *grpc.ClientConn
	api         *api.AccountServiceClient
	accessToken string
}

// NewGRPCClient dials endpointURL lazily; the first call establishes the
// connection. Extra options are appended after the defaults.
func NewGRPCClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{accessToken: accessToken}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.api = api.NewAccountServiceClient(conn)
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// AccessToken returns the token sent with calls; Login replaces it.
func (c *GRPCClient) AccessToken() string {
	return c.accessToken
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if c.accessToken != "" {
		ctx = withAccessToken(ctx, c.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) Signup(ctx context.Context, req *api.SignupRequest) (*api.User, error) {
	u, err := c.api.Signup(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (c *GRPCClient) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	resp, err := c.api.Login(ctx, &api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	c.accessToken = resp.AccessToken
	return resp, nil
}

func (c *GRPCClient) Me(ctx context.Context) (*api.User, error) {
	u, err := c.api.Me(ctx, &api.MeRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (c *GRPCClient) UpdateUser(ctx context.Context, req *api.UpdateUserRequest) (*api.User, error) {
	u, err := c.api.UpdateUser(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (c *GRPCClient) UpdateAvatar(ctx context.Context, dataURI string) (*api.User, error) {
	u, err := c.api.UpdateAvatar(ctx, &api.UpdateAvatarRequest{Base64Image: dataURI})
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (c *GRPCClient) ListUsers(ctx context.Context) ([]*api.User, error) {
	resp, err := c.api.ListUsers(ctx, &api.ListUsersRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Users, nil
}

func (c *GRPCClient) DeleteUser(ctx context.Context, userID string) error {
	if _, err := c.api.DeleteUser(ctx, &api.DeleteUserRequest{UserID: userID}); err != nil {
		return mapError(err)
	}
	return nil
}

// mapError turns a status into one of the package errors, keeping the
// server's message for display.
func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	var kind error
	switch st.Code() {
	case codes.Unauthenticated:
		kind = ErrUnauthorized
	case codes.PermissionDenied:
		kind = ErrForbidden
	case codes.NotFound:
		kind = ErrNotFound
	case codes.AlreadyExists:
		kind = ErrConflict
	case codes.InvalidArgument:
		kind = ErrInvalidInput
	case codes.ResourceExhausted:
		kind = ErrRateLimited
	case codes.Unavailable, codes.DeadlineExceeded:
		kind = ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
	return fmt.Errorf("%w: %s", kind, st.Message())
}
