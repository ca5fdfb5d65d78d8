// Package usecases implements the session operations: sign-in, sign-up,
// password reset, sign-out and session resume. These are the only writers
// of the process-wide session.
package usecases

import (
	"context"

	"github.com/go-playground/validator/v10"

	"chamado/internal/domain/user"
	userv "chamado/internal/domain/user/valueobjects"
	"chamado/internal/infrastructure/gateway"
	"chamado/internal/shared/biztime"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

type SignInCommand struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type SignInResult struct {
	Identity session.Identity
	Role     userv.Role
	Token    string
}

type SignInUseCase struct {
	auth     gateway.Authenticator
	users    user.Repository
	session  *session.Session
	validate *validator.Validate
	logger   logger.Interface
}

func NewSignInUseCase(
	auth gateway.Authenticator,
	users user.Repository,
	sess *session.Session,
	log logger.Interface,
) *SignInUseCase {
	return &SignInUseCase{
		auth:     auth,
		users:    users,
		session:  sess,
		validate: validator.New(),
		logger:   log,
	}
}

func (uc *SignInUseCase) Execute(ctx context.Context, cmd SignInCommand) (*SignInResult, error) {
	if err := uc.validate.Struct(cmd); err != nil {
		return nil, apperrors.NewValidationError("invalid credentials input", err.Error())
	}

	result, err := uc.auth.SignIn(ctx, cmd.Email, cmd.Password)
	if err != nil {
		uc.logger.Warnw("sign in rejected", "email", cmd.Email, "error", err)
		return nil, err
	}

	identity := result.Identity

	u, err := uc.users.Get(ctx, identity.UID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			uc.forceSignOut(ctx)
			return nil, apperrors.NewUnregisteredUserError("user is not registered in the system", identity.UID)
		}
		return nil, err
	}

	// The last-access refresh happens before the role gate, matching the
	// backend record lifecycle: every authenticated login is recorded.
	if err := uc.users.UpdateLastAccess(ctx, identity.UID, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("failed to update last access", "uid", identity.UID, "error", err)
	}

	if !u.Role().IsValid() {
		uc.forceSignOut(ctx)
		uc.logger.Warnw("login rejected for invalid role", "uid", identity.UID, "role", u.Role().String())
		return nil, apperrors.NewInvalidRoleError("user role is not allowed", u.Role().String())
	}

	uc.session.Set(identity)
	uc.logger.Infow("user signed in", "uid", identity.UID, "role", u.Role().String())

	return &SignInResult{
		Identity: identity,
		Role:     u.Role(),
		Token:    result.Token,
	}, nil
}

// forceSignOut ensures no orphaned session survives a rejected login.
func (uc *SignInUseCase) forceSignOut(ctx context.Context) {
	if err := uc.auth.SignOut(ctx); err != nil {
		uc.logger.Warnw("provider sign out failed during rejection", "error", err)
	}
	uc.session.Clear()
}
