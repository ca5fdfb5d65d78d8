package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"chamado/internal/infrastructure/gateway/memory"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type capturingSender struct {
	to    string
	token string
	err   error
}

func (s *capturingSender) SendPasswordResetEmail(to, token string) error {
	s.to = to
	s.token = token
	return s.err
}

func newAuthenticator(t *testing.T, store *memory.Store, sender *capturingSender) *LocalAuthenticator {
	t.Helper()
	return NewLocalAuthenticator(
		store,
		NewBcryptPasswordHasher(bcrypt.MinCost),
		NewTokenService("test-secret", 1),
		sender,
		time.Minute,
		testLogger(),
	)
}

func TestLocalAuthenticator_SignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	a := newAuthenticator(t, store, &capturingSender{})

	result, err := a.SignUp(ctx, "Alice", "Alice@Example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Identity.UID)
	assert.Equal(t, "alice@example.com", result.Identity.Email)
	assert.Equal(t, "Alice", result.Identity.DisplayName)
	assert.NotEmpty(t, result.Token)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := a.SignUp(ctx, "Other", "alice@example.com", "another")
		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("sign in with the right password", func(t *testing.T) {
		signedIn, err := a.SignIn(ctx, "ALICE@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, result.Identity.UID, signedIn.Identity.UID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.SignIn(ctx, "alice@example.com", "wrong")
		require.Error(t, err)
		assert.True(t, apperrors.IsAuthenticationError(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := a.SignIn(ctx, "nobody@example.com", "secret")
		require.Error(t, err)
		assert.True(t, apperrors.IsAuthenticationError(err))
	})
}

func TestLocalAuthenticator_Resume(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	a := newAuthenticator(t, store, &capturingSender{})

	result, err := a.SignUp(ctx, "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		identity, err := a.Resume(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.Identity.UID, identity.UID)
		assert.Equal(t, "alice@example.com", identity.Email)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := a.Resume(ctx, "not-a-token")
		require.Error(t, err)
		assert.True(t, apperrors.IsAuthenticationError(err))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		foreign := NewTokenService("other-secret", 1)
		token, err := foreign.Generate(session.Identity{UID: "u1"})
		require.NoError(t, err)

		_, err = a.Resume(ctx, token)
		require.Error(t, err)
	})
}

func TestLocalAuthenticator_PasswordReset(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	sender := &capturingSender{}
	a := newAuthenticator(t, store, sender)

	_, err := a.SignUp(ctx, "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	t.Run("unknown email does not error and sends nothing", func(t *testing.T) {
		require.NoError(t, a.SendReset(ctx, "nobody@example.com"))
		assert.Empty(t, sender.token)
	})

	t.Run("reset flow replaces the password", func(t *testing.T) {
		require.NoError(t, a.SendReset(ctx, "alice@example.com"))
		require.NotEmpty(t, sender.token)
		assert.Equal(t, "alice@example.com", sender.to)

		require.NoError(t, a.ConfirmReset(ctx, sender.token, "newsecret"))

		_, err := a.SignIn(ctx, "alice@example.com", "secret")
		require.Error(t, err)
		signedIn, err := a.SignIn(ctx, "alice@example.com", "newsecret")
		require.NoError(t, err)
		assert.Equal(t, "Alice", signedIn.Identity.DisplayName)
	})

	t.Run("reset token is one-time", func(t *testing.T) {
		err := a.ConfirmReset(ctx, sender.token, "again")
		require.Error(t, err)
		assert.True(t, apperrors.IsAuthenticationError(err))
	})

	t.Run("blank new password rejected", func(t *testing.T) {
		err := a.ConfirmReset(ctx, "whatever", "   ")
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("delivery failure surfaces", func(t *testing.T) {
		sender.err = assert.AnError
		err := a.SendReset(ctx, "alice@example.com")
		require.Error(t, err)
		assert.True(t, apperrors.IsDeliveryError(err))
		sender.err = nil
	})
}

func TestTokenService(t *testing.T) {
	identity := session.Identity{UID: "u1", Email: "alice@example.com", DisplayName: "Alice"}

	t.Run("round trip", func(t *testing.T) {
		svc := NewTokenService("secret", 1)
		token, err := svc.Generate(identity)
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "Alice", claims.DisplayName)
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		svc := NewTokenService("secret", 1)
		token, err := svc.Generate(identity)
		require.NoError(t, err)

		_, err = svc.Verify(token + "x")
		require.Error(t, err)
	})
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	require.NoError(t, h.Verify("secret", hash))
	require.Error(t, h.Verify("wrong", hash))
}
