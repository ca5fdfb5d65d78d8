// Package usecases implements the ticket list operations: creating tickets
// and subscribing to the continuously updated, sorted ticket view.
package usecases

import (
	"context"
	"strings"

	"chamado/internal/domain/ticket"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

type CreateTicketCommand struct {
	Title string
}

type CreateTicketResult struct {
	TicketID string
}

type CreateTicketUseCase struct {
	tickets ticket.Repository
	session *session.Session
	logger  logger.Interface
}

func NewCreateTicketUseCase(tickets ticket.Repository, sess *session.Session, log logger.Interface) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		tickets: tickets,
		session: sess,
		logger:  log,
	}
}

// Execute creates a new open ticket with an empty preview and returns the
// backend-assigned id for immediate navigation to the chat.
func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title cannot be blank")
	}

	identity, ok := uc.session.Current()
	if !ok {
		return nil, apperrors.NewUnauthenticatedError("creating a ticket requires a session")
	}

	t, err := ticket.NewTicket(title, identity.UID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid ticket", err.Error())
	}

	ticketID, err := uc.tickets.Create(ctx, t)
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket created", "ticket_id", ticketID, "creator", identity.UID)
	return &CreateTicketResult{TicketID: ticketID}, nil
}
