package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chamado/internal/domain/user"
	"chamado/internal/infrastructure/gateway"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/session"
)

func TestSignUpUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates identity and roleless record", func(t *testing.T) {
		var saved *user.User
		auth := &mockAuthenticator{
			SignUpFunc: func(ctx context.Context, name, email, password string) (*gateway.AuthResult, error) {
				return &gateway.AuthResult{
					Identity: session.Identity{UID: "u1", Email: email, DisplayName: name},
				}, nil
			},
		}
		users := &mockUserRepository{
			SaveFunc: func(ctx context.Context, u *user.User) error {
				saved = u
				return nil
			},
		}
		uc := NewSignUpUseCase(auth, users, testLogger())

		result, err := uc.Execute(ctx, SignUpCommand{
			Name:     "Alice",
			Email:    "Alice@Example.com",
			Password: "secret",
		})

		require.NoError(t, err)
		assert.Equal(t, "u1", result.Identity.UID)
		require.NotNil(t, saved)
		assert.Equal(t, "Alice", saved.Name())
		assert.Equal(t, "alice@example.com", saved.Email().String())
		assert.False(t, saved.Role().IsValid())
	})

	t.Run("rejects incomplete input", func(t *testing.T) {
		uc := NewSignUpUseCase(&mockAuthenticator{}, &mockUserRepository{}, testLogger())

		_, err := uc.Execute(ctx, SignUpCommand{Name: "Alice", Email: "alice@example.com"})

		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("duplicate email surfaces as conflict", func(t *testing.T) {
		auth := &mockAuthenticator{
			SignUpFunc: func(ctx context.Context, name, email, password string) (*gateway.AuthResult, error) {
				return nil, apperrors.NewConflictError("email already registered")
			},
		}
		uc := NewSignUpUseCase(auth, &mockUserRepository{}, testLogger())

		_, err := uc.Execute(ctx, SignUpCommand{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "secret",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
	})
}
