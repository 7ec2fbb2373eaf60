package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

// Requirement is the access rule of one operation. An empty role set means
// any authenticated user.
type Requirement struct {
	Roles []models.Role
}

func Authenticated() Requirement {
	return Requirement{}
}

func RequireRoles(roles ...models.Role) Requirement {
	return Requirement{Roles: roles}
}

// Policy maps an operation id to its requirement. Operations not listed are public.
type Policy map[string]Requirement

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, *models.User, error)
}

type Guard struct {
	tokens TokenVerifier
	policy Policy
}

func NewGuard(tokens TokenVerifier, policy Policy) *Guard {
	return &Guard{tokens: tokens, policy: policy}
}

// Admit authorizes op for the caller presenting the authorization header value.
// On success the returned context carries the resolved user.
func (g *Guard) Admit(ctx context.Context, op, authorization string) (context.Context, error) {
	req, protected := g.policy[op]
	if !protected {
		return ctx, nil
	}

	token, ok := ParseBearer(authorization)
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	claims, user, err := g.tokens.Verify(ctx, token)
	if err != nil {
		// a directory outage says nothing about the token
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrorInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	// the claim role is authoritative until the token expires
	if len(req.Roles) > 0 && !slices.Contains(req.Roles, claims.Role) {
		return nil, common.ErrorForbidden
	}

	return WithUser(ctx, user), nil
}

// ParseBearer extracts the token from "Bearer <token>"; the scheme is case-insensitive.
func ParseBearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
