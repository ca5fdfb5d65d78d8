package usecases

import (
	"context"

	"chamado/internal/infrastructure/gateway"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

type SignOutUseCase struct {
	auth    gateway.Authenticator
	session *session.Session
	logger  logger.Interface
}

func NewSignOutUseCase(auth gateway.Authenticator, sess *session.Session, log logger.Interface) *SignOutUseCase {
	return &SignOutUseCase{
		auth:    auth,
		session: sess,
		logger:  log,
	}
}

// Execute terminates the session. Best effort: the local session is cleared
// even when the provider call fails, and running it with no active session
// is a no-op.
func (uc *SignOutUseCase) Execute(ctx context.Context) error {
	if err := uc.auth.SignOut(ctx); err != nil {
		uc.logger.Warnw("provider sign out failed, clearing local session anyway", "error", err)
	}
	uc.session.Clear()
	return nil
}
