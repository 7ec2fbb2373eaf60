package auth

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// WithUser attaches a copy of the authenticated user to ctx.
func WithUser(ctx context.Context, user *models.User) context.Context {
	u := *user
	return context.WithValue(ctx, userKey, &u)
}

// CurrentUser returns a copy of the user attached by WithUser.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	if !ok || u == nil {
		return nil, false
	}
	c := *u
	return &c, true
}
