package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("s3cret-pass"))

	assert.NotEqual(t, "s3cret-pass", user.Password)
	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestDisplayName(t *testing.T) {
	doctor := &User{FirstName: "Asha", LastName: "Rao", Role: RoleDoctor}
	assert.Equal(t, "Dr. Asha Rao", doctor.DisplayName())

	patient := &User{FirstName: "Ravi", LastName: "Kumar", Role: RolePatient}
	assert.Equal(t, "Ravi Kumar", patient.DisplayName())

	nameless := &User{Email: "someone@example.com", Role: RolePatient}
	assert.Equal(t, "someone@example.com", nameless.DisplayName())
}

func TestSanitizeOmitsPassword(t *testing.T) {
	user := &User{Email: "p@example.com", FirstName: "Priya", Role: RolePatient}
	require.NoError(t, user.SetPassword("hunter2"))

	sanitized := user.Sanitize()
	assert.Equal(t, user.Email, sanitized.Email)
	assert.Equal(t, user.FirstName, sanitized.FirstName)
	assert.Equal(t, user.Role, sanitized.Role)
}
