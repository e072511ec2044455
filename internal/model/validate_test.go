package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name       string
		user       User
		wantFields []string
	}{
		{
			name: "valid user",
			user: User{Name: "Jane Doe", Email: "jane@example.com", Role: "Engineer"},
		},
		{
			name: "valid user without role",
			user: User{Name: "Jane Doe", Email: "jane@example.com"},
		},
		{
			name:       "missing name",
			user:       User{Email: "jane@example.com"},
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			user:       User{Name: strings.Repeat("a", 51), Email: "jane@example.com"},
			wantFields: []string{"name"},
		},
		{
			name:       "missing email",
			user:       User{Name: "Jane Doe"},
			wantFields: []string{"email"},
		},
		{
			name:       "malformed email",
			user:       User{Name: "Jane Doe", Email: "not-an-email"},
			wantFields: []string{"email"},
		},
		{
			name:       "email too long",
			user:       User{Name: "Jane Doe", Email: strings.Repeat("a", 115) + "@example.com"},
			wantFields: []string{"email"},
		},
		{
			name:       "role too long",
			user:       User{Name: "Jane Doe", Email: "jane@example.com", Role: strings.Repeat("r", 31)},
			wantFields: []string{"role"},
		},
		{
			name:       "multiple violations",
			user:       User{Role: strings.Repeat("r", 31)},
			wantFields: []string{"name", "email", "role"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUser(tt.user)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Len(t, validationErr.Violations, len(tt.wantFields))
			for i, field := range tt.wantFields {
				assert.Equal(t, field, validationErr.Violations[i].Field)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Violations: []FieldViolation{
		{Field: "name", Message: "is required"},
		{Field: "email", Message: "is required"},
	}}

	assert.Equal(t, "validation failed: name: is required; email: is required", err.Error())
}
