package usecases

import (
	"context"

	"github.com/go-playground/validator/v10"

	"chamado/internal/infrastructure/gateway"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
)

type RequestPasswordResetCommand struct {
	Email string `validate:"required,email"`
}

type RequestPasswordResetUseCase struct {
	auth     gateway.Authenticator
	validate *validator.Validate
	logger   logger.Interface
}

func NewRequestPasswordResetUseCase(auth gateway.Authenticator, log logger.Interface) *RequestPasswordResetUseCase {
	return &RequestPasswordResetUseCase{
		auth:     auth,
		validate: validator.New(),
		logger:   log,
	}
}

func (uc *RequestPasswordResetUseCase) Execute(ctx context.Context, cmd RequestPasswordResetCommand) error {
	if err := uc.validate.Struct(cmd); err != nil {
		return apperrors.NewValidationError("invalid email", err.Error())
	}

	if err := uc.auth.SendReset(ctx, cmd.Email); err != nil {
		uc.logger.Warnw("password reset request failed", "email", cmd.Email, "error", err)
		return err
	}

	uc.logger.Infow("password reset requested", "email", cmd.Email)
	return nil
}
