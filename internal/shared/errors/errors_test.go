package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Run("without details", func(t *testing.T) {
		err := NewValidationError("email is required")
		assert.Equal(t, "validation_error: email is required", err.Error())
	})

	t.Run("with details", func(t *testing.T) {
		err := NewTicketClosedError("chamado encerrado", "ticket t1")
		assert.Equal(t, "ticket_closed: chamado encerrado (ticket t1)", err.Error())
	})
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", NewValidationError("m"), IsValidationError},
		{"authentication", NewAuthenticationError("m"), IsAuthenticationError},
		{"unregistered user", NewUnregisteredUserError("m"), IsUnregisteredUserError},
		{"invalid role", NewInvalidRoleError("m"), IsInvalidRoleError},
		{"ticket closed", NewTicketClosedError("m"), IsTicketClosedError},
		{"unauthenticated", NewUnauthenticatedError("m"), IsUnauthenticatedError},
		{"delivery", NewDeliveryError("m"), IsDeliveryError},
		{"not found", NewNotFoundError("m"), IsNotFoundError},
		{"conflict", NewConflictError("m"), IsConflictError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(fmt.Errorf("plain error")))
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("unwraps wrapped errors", func(t *testing.T) {
		inner := NewNotFoundError("user not found")
		wrapped := fmt.Errorf("loading profile: %w", inner)

		got := GetAppError(wrapped)
		assert.Equal(t, inner, got)
		assert.True(t, IsNotFoundError(wrapped))
	})

	t.Run("nil for plain errors", func(t *testing.T) {
		assert.Nil(t, GetAppError(fmt.Errorf("plain")))
		assert.False(t, IsAppError(fmt.Errorf("plain")))
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, GetAppError(nil))
	})
}
