// Package auth issues and verifies access tokens and decides whether a caller
// may invoke an operation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: a snapshot of the user at issuance.
// The subject carries the user id.
type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserLookup resolves a token subject to the current account.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	users  UserLookup
	now    func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration, users UserLookup) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, users: users, now: time.Now}
}

// Issue signs an HS256 token for user.
func (s *TokenService) Issue(user *models.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", fmt.Errorf("%w: token subject is empty", common.ErrorInternal)
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: user.UserName,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse checks signature and expiry. Every failure is common.ErrInvalidToken
// so callers cannot tell a forged token from an expired one.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// Verify parses the token and re-resolves its subject. A deleted account
// invalidates every token issued for it.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*Claims, *models.User, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, fmt.Errorf("%w: resolve token subject: %w", common.ErrorInternal, err)
	}
	return claims, user, nil
}
