package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationInput struct {
	Email string `validate:"required,email"`
	Role  string `validate:"required,oneof=patient doctor admin"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(registrationInput{Email: "p@example.com", Role: "patient"}))

	err := Validate(registrationInput{Email: "not-an-email", Role: "chef"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Email")
	assert.Contains(t, msg, "'email' rule")
	assert.Contains(t, msg, "Role")
	assert.Contains(t, msg, "'oneof' rule")
}

func TestFormatValidationError_PlainError(t *testing.T) {
	assert.Equal(t, "boom", FormatValidationError(errors.New("boom")))
}
