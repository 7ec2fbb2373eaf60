// Package grpc serves AccountService: request handlers, the auth, logging and
// rate limiting interceptors and the mapping of domain errors to statuses.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophaccounts/internal/api"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/auth"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/services"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Accounts is the business API behind the handlers.
type Accounts interface {
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
	Signup(ctx context.Context, in services.SignupInput) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID, base64Image string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// Policy declares who may call each protected method; unlisted methods,
// Login and Signup among them, are public.
func Policy() auth.Policy {
	staff := auth.RequireRoles(models.RoleAdmin, models.RoleManager)
	return auth.Policy{
		api.MeMethod:           auth.Authenticated(),
		api.UpdateUserMethod:   auth.Authenticated(),
		api.UpdateAvatarMethod: auth.Authenticated(),
		api.ListUsersMethod:    staff,
		api.DeleteUserMethod:   staff,
	}
}

type GRPCServer struct {
	address  string
	accounts Accounts
	guard    *auth.Guard
	limiter  *rateLimiter
	logger   logging.Logger
}

// NewGRPCServer wires the handlers. ratePerSecond <= 0 disables the
// Login/Signup rate limit.
func NewGRPCServer(address string, l logging.Logger, accounts Accounts, guard *auth.Guard, ratePerSecond float64, burst int) *GRPCServer {
	return &GRPCServer{
		address:  address,
		accounts: accounts,
		guard:    guard,
		limiter:  newRateLimiter(ratePerSecond, burst, api.LoginMethod, api.SignupMethod),
		logger:   l.With("module", "grpc_server"),
	}
}

// Server builds the grpc.Server with AccountService and the health service registered.
func (s *GRPCServer) Server() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			s.loggingInterceptor,
			s.rateLimitInterceptor,
			s.authInterceptor,
		),
	)

	api.RegisterAccountServiceServer(srv, &handler{accounts: s.accounts, logger: s.logger})

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

// Run serves until ctx is cancelled and then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.Server()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
