package usecases

import (
	"context"

	"chamado/internal/domain/user"
	userv "chamado/internal/domain/user/valueobjects"
	"chamado/internal/infrastructure/gateway"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

type ResumeSessionCommand struct {
	Token string
}

type ResumeSessionResult struct {
	Identity session.Identity
	Role     userv.Role
}

// ResumeSessionUseCase reinstates a session from a previously issued token,
// re-running the same registered-user and role gates as a fresh sign-in.
type ResumeSessionUseCase struct {
	auth    gateway.Authenticator
	users   user.Repository
	session *session.Session
	logger  logger.Interface
}

func NewResumeSessionUseCase(
	auth gateway.Authenticator,
	users user.Repository,
	sess *session.Session,
	log logger.Interface,
) *ResumeSessionUseCase {
	return &ResumeSessionUseCase{
		auth:    auth,
		users:   users,
		session: sess,
		logger:  log,
	}
}

func (uc *ResumeSessionUseCase) Execute(ctx context.Context, cmd ResumeSessionCommand) (*ResumeSessionResult, error) {
	if cmd.Token == "" {
		return nil, apperrors.NewUnauthenticatedError("no session token")
	}

	identity, err := uc.auth.Resume(ctx, cmd.Token)
	if err != nil {
		uc.session.Clear()
		return nil, err
	}

	u, err := uc.users.Get(ctx, identity.UID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			uc.session.Clear()
			return nil, apperrors.NewUnregisteredUserError("user is not registered in the system", identity.UID)
		}
		return nil, err
	}

	if !u.Role().IsValid() {
		uc.session.Clear()
		return nil, apperrors.NewInvalidRoleError("user role is not allowed", u.Role().String())
	}

	uc.session.Set(*identity)
	uc.logger.Debugw("session resumed", "uid", identity.UID)

	return &ResumeSessionResult{
		Identity: *identity,
		Role:     u.Role(),
	}, nil
}
