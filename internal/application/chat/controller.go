// Package chat implements the ticket chat controller: joint subscriptions
// to a ticket's messages and status, and message submission gated on the
// observed status.
package chat

import (
	"context"
	"strings"
	"sync"

	"chamado/internal/domain/ticket"
	ticketvo "chamado/internal/domain/ticket/valueobjects"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

// Controller drives the chat of a single ticket. Open starts the
// subscriptions, Close cancels them; the instance is not reusable after
// Close.
//
// The status observed through the subscription gates SendMessage: the check
// happens at call time against the latest delivered snapshot, so a closed
// notification that arrives while the input is idle still blocks the next
// send.
type Controller struct {
	ticketID string
	tickets  ticket.Repository
	session  *session.Session
	logger   logger.Interface

	mu          sync.Mutex
	status      ticketvo.Status
	statusKnown bool
	cancels     []func()
	opened      bool
}

func NewController(
	ticketID string,
	tickets ticket.Repository,
	sess *session.Session,
	log logger.Interface,
) *Controller {
	return &Controller{
		ticketID: ticketID,
		tickets:  tickets,
		session:  sess,
		logger:   log,
	}
}

// Open starts the message and status subscriptions. onMessages receives
// each message snapshot sorted oldest first; onStatus receives every status
// change. Either callback may be nil.
func (c *Controller) Open(onMessages ticket.MessagesSnapshotFunc, onStatus ticket.StatusSnapshotFunc) error {
	c.mu.Lock()
	if c.opened {
		c.mu.Unlock()
		return apperrors.NewInternalError("chat controller already open")
	}
	c.opened = true
	c.mu.Unlock()

	cancelMessages, err := c.tickets.SubscribeMessages(c.ticketID, func(messages []*ticket.Message) {
		ticket.SortMessages(messages)
		if onMessages != nil {
			onMessages(messages)
		}
	})
	if err != nil {
		return err
	}

	cancelStatus, err := c.tickets.SubscribeStatus(c.ticketID, func(status ticketvo.Status, known bool) {
		c.mu.Lock()
		c.status = status
		c.statusKnown = known
		c.mu.Unlock()

		if onStatus != nil {
			onStatus(status, known)
		}
	})
	if err != nil {
		cancelMessages()
		return err
	}

	c.mu.Lock()
	c.cancels = []func(){cancelMessages, cancelStatus}
	c.mu.Unlock()
	return nil
}

// SendMessage appends a message to the ticket. Preconditions, in order:
// the observed status must not be closed, the trimmed text must be
// non-blank (blank is a silent no-op), and a session must be active.
// On success the parent ticket's preview and updatedAt are refreshed with a
// second, independent write; that write is best effort and not atomic with
// the append.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	c.mu.Lock()
	closed := c.statusKnown && c.status.IsClosed()
	c.mu.Unlock()

	if closed {
		return apperrors.NewTicketClosedError("ticket is closed, no messages can be sent", c.ticketID)
	}

	if strings.TrimSpace(text) == "" {
		return nil
	}

	identity, ok := c.session.Current()
	if !ok {
		return apperrors.NewUnauthenticatedError("sending a message requires a session")
	}

	m, err := ticket.NewMessage(text, identity.UID, identity.DisplayName)
	if err != nil {
		return apperrors.NewValidationError("invalid message", err.Error())
	}

	key, err := c.tickets.AppendMessage(ctx, c.ticketID, m)
	if err != nil {
		c.logger.Errorw("failed to append message", "ticket_id", c.ticketID, "error", err)
		return err
	}
	if err := m.SetID(key); err != nil {
		c.logger.Warnw("failed to record message key", "ticket_id", c.ticketID, "error", err)
	}

	if err := c.tickets.UpdateActivity(ctx, c.ticketID, m.Text(), m.CreatedAt()); err != nil {
		// The preview stays stale until the next message; the message
		// itself was appended.
		c.logger.Warnw("failed to update ticket preview", "ticket_id", c.ticketID, "error", err)
	}

	c.logger.Debugw("message sent", "ticket_id", c.ticketID, "message_id", key)
	return nil
}

// Close cancels both subscriptions. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	cancels := c.cancels
	c.cancels = nil
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}
