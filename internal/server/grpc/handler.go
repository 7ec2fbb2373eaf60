package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/api"
	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/auth"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/services"
)

type handler struct {
	accounts Accounts
	logger   logging.Logger
}

func (h *handler) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	res, err := h.accounts.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(ctx, h.logger, err)
	}

	h.logger.Info(ctx, "Logged in", "user_id", res.User.ID)
	return &api.LoginResponse{AccessToken: res.Token, User: toAPIUser(res.User)}, nil
}

func (h *handler) Signup(ctx context.Context, req *api.SignupRequest) (*api.User, error) {
	u, err := h.accounts.Signup(ctx, services.SignupInput{
		UserName: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return nil, toStatus(ctx, h.logger, err)
	}

	h.logger.Info(ctx, "Registered", "user_id", u.ID, "username", u.UserName)
	return toAPIUser(u), nil
}

func (h *handler) Me(ctx context.Context, _ *api.MeRequest) (*api.User, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, toStatus(ctx, h.logger, err)
	}
	return toAPIUser(u), nil
}

func (h *handler) UpdateUser(ctx context.Context, req *api.UpdateUserRequest) (*api.User, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, toStatus(ctx, h.logger, err)
	}

	u, err := h.accounts.UpdateProfile(ctx, me.ID, models.ProfilePatch{Email: req.Email, FullName: req.FullName})
	if err != nil {
		return nil, toStatus(ctx, h.logger, err)
	}
	return toAPIUser(u), nil
}

func (h *handler) UpdateAvatar(ctx context.Context, req *api.UpdateAvatarRequest) (*api.User, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, toStatus(ctx, h.logger, err)
	}

	u, err := h.accounts.UpdateAvatar(ctx, me.ID, req.Base64Image)
	if err != nil {
		return nil, toStatus(ctx, h.logger, err)
	}
	return toAPIUser(u), nil
}

func (h *handler) ListUsers(ctx context.Context, _ *api.ListUsersRequest) (*api.ListUsersResponse, error) {
	users, err := h.accounts.ListUsers(ctx)
	if err != nil {
		return nil, toStatus(ctx, h.logger, err)
	}

	resp := &api.ListUsersResponse{Users: make([]*api.User, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, toAPIUser(u))
	}
	return resp, nil
}

func (h *handler) DeleteUser(ctx context.Context, req *api.DeleteUserRequest) (*api.DeleteUserResponse, error) {
	if req.UserID == "" {
		return nil, toStatus(ctx, h.logger, common.NewValidationError("user id is required"))
	}
	if err := h.accounts.DeleteUser(ctx, req.UserID); err != nil {
		return nil, toStatus(ctx, h.logger, err)
	}

	h.logger.Info(ctx, "Deleted user", "user_id", req.UserID)
	return &api.DeleteUserResponse{Deleted: true}, nil
}

func currentUser(ctx context.Context) (*models.User, error) {
	u, ok := auth.CurrentUser(ctx)
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return u, nil
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Username:  u.UserName,
		Email:     u.Email,
		FullName:  u.FullName,
		Avatar:    u.Avatar,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
