package usecases

import (
	"context"

	"chamado/internal/domain/user"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

type SaveProfileCommand struct {
	Name  string
	Photo string
}

type SaveProfileUseCase struct {
	users   user.Repository
	session *session.Session
	logger  logger.Interface
}

func NewSaveProfileUseCase(users user.Repository, sess *session.Session, log logger.Interface) *SaveProfileUseCase {
	return &SaveProfileUseCase{
		users:   users,
		session: sess,
		logger:  log,
	}
}

// Execute overwrites the entire user record with the given name and photo
// payload. No validation beyond an active session; this is a full write,
// not a merge.
func (uc *SaveProfileUseCase) Execute(ctx context.Context, cmd SaveProfileCommand) error {
	identity, ok := uc.session.Current()
	if !ok {
		return apperrors.NewUnauthenticatedError("saving a profile requires a session")
	}

	if err := uc.users.ReplaceProfile(ctx, identity.UID, cmd.Name, cmd.Photo); err != nil {
		uc.logger.Errorw("failed to save profile", "uid", identity.UID, "error", err)
		return err
	}

	uc.logger.Infow("profile saved", "uid", identity.UID)
	return nil
}
