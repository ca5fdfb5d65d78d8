package usecases

import (
	"context"

	"github.com/go-playground/validator/v10"

	"chamado/internal/domain/user"
	userv "chamado/internal/domain/user/valueobjects"
	"chamado/internal/infrastructure/gateway"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

type SignUpCommand struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type SignUpResult struct {
	Identity session.Identity
}

type SignUpUseCase struct {
	auth     gateway.Authenticator
	users    user.Repository
	validate *validator.Validate
	logger   logger.Interface
}

func NewSignUpUseCase(
	auth gateway.Authenticator,
	users user.Repository,
	log logger.Interface,
) *SignUpUseCase {
	return &SignUpUseCase{
		auth:     auth,
		users:    users,
		validate: validator.New(),
		logger:   log,
	}
}

// Execute creates the backend identity and the corresponding user record.
// The record carries no role; roles are assigned out-of-band, so a fresh
// account cannot log in until one is set. No session is installed.
func (uc *SignUpUseCase) Execute(ctx context.Context, cmd SignUpCommand) (*SignUpResult, error) {
	if err := uc.validate.Struct(cmd); err != nil {
		return nil, apperrors.NewValidationError("all fields are required", err.Error())
	}

	email, err := userv.NewEmail(cmd.Email)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid email", err.Error())
	}

	result, err := uc.auth.SignUp(ctx, cmd.Name, email.String(), cmd.Password)
	if err != nil {
		uc.logger.Warnw("sign up rejected", "email", email.String(), "error", err)
		return nil, err
	}

	u, err := user.NewUser(result.Identity.UID, cmd.Name, email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user record", err.Error())
	}

	if err := uc.users.Save(ctx, u); err != nil {
		uc.logger.Errorw("failed to save user record after sign up", "uid", result.Identity.UID, "error", err)
		return nil, err
	}

	uc.logger.Infow("user signed up", "uid", result.Identity.UID)
	return &SignUpResult{Identity: result.Identity}, nil
}
