package services

import (
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/cryptox"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

const MinPasswordLength = 6

// SignupInput is the payload of Signup. Avatar is an optional data URI.
type SignupInput struct {
	UserName string
	Password string
	Email    string
	FullName string
	Avatar   string
}

func (in SignupInput) normalized() SignupInput {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Avatar = strings.TrimSpace(in.Avatar)
	return in
}

// Validate reports the first malformed field as a *common.ValidationError.
func (in SignupInput) Validate() error {
	switch {
	case strings.TrimSpace(in.UserName) == "":
		return common.NewValidationError("username is required")
	case !validEmail(in.Email):
		return common.NewValidationError("email must be a valid address")
	case strings.TrimSpace(in.FullName) == "":
		return common.NewValidationError("full name is required")
	case len(in.Password) < MinPasswordLength:
		return common.NewValidationError("password must be at least 6 characters")
	case len(in.Password) > cryptox.MaxPasswordLength:
		return common.NewValidationError("password must be at most 72 bytes")
	}
	return nil
}

func validatePatch(p models.ProfilePatch) error {
	if p.Email != nil && !validEmail(*p.Email) {
		return common.NewValidationError("email must be a valid address")
	}
	if p.FullName != nil && strings.TrimSpace(*p.FullName) == "" {
		return common.NewValidationError("full name must not be empty")
	}
	return nil
}

// validEmail accepts a bare addr-spec; display names and angle brackets are rejected.
func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}
