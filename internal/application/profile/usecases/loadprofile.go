// Package usecases implements the profile operations: loading and saving
// the current user's record.
package usecases

import (
	"context"

	"chamado/internal/domain/user"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

type LoadProfileResult struct {
	Name  string
	Photo string
}

type LoadProfileUseCase struct {
	users   user.Repository
	session *session.Session
	logger  logger.Interface
}

func NewLoadProfileUseCase(users user.Repository, sess *session.Session, log logger.Interface) *LoadProfileUseCase {
	return &LoadProfileUseCase{
		users:   users,
		session: sess,
		logger:  log,
	}
}

// Execute reads the current user's record. A missing record yields empty
// defaults, not an error.
func (uc *LoadProfileUseCase) Execute(ctx context.Context) (*LoadProfileResult, error) {
	identity, ok := uc.session.Current()
	if !ok {
		return nil, apperrors.NewUnauthenticatedError("loading a profile requires a session")
	}

	u, err := uc.users.Get(ctx, identity.UID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return &LoadProfileResult{}, nil
		}
		return nil, err
	}

	return &LoadProfileResult{
		Name:  u.Name(),
		Photo: u.Photo(),
	}, nil
}
