package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := NewValidationError("image too large")

	assert.True(t, errors.Is(err, ErrorValidation))
	assert.False(t, errors.Is(err, ErrorStorage))
	assert.Equal(t, "validation error: image too large", err.Error())
}

func TestValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("signup: %w", NewValidationError("email is invalid"))

	assert.True(t, errors.Is(err, ErrorValidation))

	var ve *ValidationError
	if assert.True(t, errors.As(err, &ve)) {
		assert.Equal(t, "email is invalid", ve.Reason)
	}
}
