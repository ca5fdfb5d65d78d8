package repository

import (
	"context"
	"time"

	"chamado/internal/domain/ticket"
	ticketvo "chamado/internal/domain/ticket/valueobjects"
	"chamado/internal/infrastructure/gateway"
	"chamado/internal/shared/biztime"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
)

const ticketsPath = "chamados"

type ticketRecord struct {
	Title       string `json:"title"`
	Status      string `json:"status"`
	CreatedBy   string `json:"createdBy"`
	LastMessage string `json:"lastMessage"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type messageRecord struct {
	Text       string `json:"text"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	CreatedAt  int64  `json:"createdAt"`
}

type TicketRepository struct {
	store  gateway.Store
	logger logger.Interface
}

var _ ticket.Repository = (*TicketRepository)(nil)

func NewTicketRepository(store gateway.Store, log logger.Interface) *TicketRepository {
	return &TicketRepository{
		store:  store,
		logger: log,
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) (string, error) {
	record := ticketRecord{
		Title:       t.Title(),
		Status:      t.Status().String(),
		CreatedBy:   t.CreatorUID(),
		LastMessage: t.LastMessage(),
		UpdatedAt:   biztime.ToMillis(t.UpdatedAt()),
	}

	ticketID, err := r.store.Push(ctx, ticketsPath, encode(record))
	if err != nil {
		return "", apperrors.NewDeliveryError("failed to create ticket", err.Error())
	}
	return ticketID, nil
}

func (r *TicketRepository) GetStatus(ctx context.Context, ticketID string) (ticketvo.Status, bool, error) {
	value, ok, err := r.store.Read(ctx, statusPath(ticketID))
	if err != nil {
		return "", false, apperrors.NewDeliveryError("failed to read ticket status", err.Error())
	}
	if !ok {
		return "", false, nil
	}

	raw, ok := value.(string)
	if !ok {
		return "", false, apperrors.NewInternalError("malformed status field")
	}
	status, err := ticketvo.NewStatus(raw)
	if err != nil {
		return "", false, apperrors.NewInternalError("malformed status field", err.Error())
	}
	return status, true, nil
}

func (r *TicketRepository) AppendMessage(ctx context.Context, ticketID string, m *ticket.Message) (string, error) {
	record := messageRecord{
		Text:       m.Text(),
		AuthorID:   m.AuthorUID(),
		AuthorName: m.AuthorName(),
		CreatedAt:  biztime.ToMillis(m.CreatedAt()),
	}

	key, err := r.store.Push(ctx, messagesPath(ticketID), encode(record))
	if err != nil {
		return "", apperrors.NewDeliveryError("failed to append message", err.Error())
	}
	return key, nil
}

func (r *TicketRepository) UpdateActivity(ctx context.Context, ticketID string, preview string, at time.Time) error {
	err := r.store.Update(ctx, ticketPath(ticketID), map[string]any{
		"lastMessage": preview,
		"updatedAt":   biztime.ToMillis(at),
	})
	if err != nil {
		return apperrors.NewDeliveryError("failed to update ticket activity", err.Error())
	}
	return nil
}

func (r *TicketRepository) SubscribeList(fn ticket.ListSnapshotFunc) (func(), error) {
	unsubscribe, err := r.store.Subscribe(ticketsPath, func(value any) {
		fn(r.toTickets(value))
	})
	if err != nil {
		return nil, apperrors.NewDeliveryError("failed to subscribe to tickets", err.Error())
	}
	return unsubscribe, nil
}

func (r *TicketRepository) SubscribeMessages(ticketID string, fn ticket.MessagesSnapshotFunc) (func(), error) {
	unsubscribe, err := r.store.Subscribe(messagesPath(ticketID), func(value any) {
		fn(r.toMessages(value))
	})
	if err != nil {
		return nil, apperrors.NewDeliveryError("failed to subscribe to messages", err.Error())
	}
	return unsubscribe, nil
}

func (r *TicketRepository) SubscribeStatus(ticketID string, fn ticket.StatusSnapshotFunc) (func(), error) {
	unsubscribe, err := r.store.Subscribe(statusPath(ticketID), func(value any) {
		raw, ok := value.(string)
		if !ok {
			fn("", false)
			return
		}
		status, err := ticketvo.NewStatus(raw)
		if err != nil {
			r.logger.Warnw("ignoring unknown ticket status", "ticket_id", ticketID, "status", raw)
			fn("", false)
			return
		}
		fn(status, true)
	})
	if err != nil {
		return nil, apperrors.NewDeliveryError("failed to subscribe to status", err.Error())
	}
	return unsubscribe, nil
}

// toTickets rebuilds the ticket set from a raw collection snapshot.
// Malformed entries are skipped, not fatal.
func (r *TicketRepository) toTickets(value any) []*ticket.Ticket {
	collection, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	tickets := make([]*ticket.Ticket, 0, len(collection))
	for ticketID, raw := range collection {
		var record ticketRecord
		if err := decode(raw, &record); err != nil {
			r.logger.Warnw("skipping malformed ticket record", "ticket_id", ticketID, "error", err)
			continue
		}
		status, err := ticketvo.NewStatus(record.Status)
		if err != nil {
			r.logger.Warnw("skipping ticket with unknown status", "ticket_id", ticketID, "status", record.Status)
			continue
		}
		t, err := ticket.ReconstructTicket(
			ticketID,
			record.Title,
			status,
			record.CreatedBy,
			record.LastMessage,
			biztime.FromMillis(record.UpdatedAt),
		)
		if err != nil {
			r.logger.Warnw("skipping unreconstructable ticket", "ticket_id", ticketID, "error", err)
			continue
		}
		tickets = append(tickets, t)
	}
	return tickets
}

func (r *TicketRepository) toMessages(value any) []*ticket.Message {
	collection, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	messages := make([]*ticket.Message, 0, len(collection))
	for key, raw := range collection {
		var record messageRecord
		if err := decode(raw, &record); err != nil {
			r.logger.Warnw("skipping malformed message record", "message_id", key, "error", err)
			continue
		}
		m, err := ticket.ReconstructMessage(
			key,
			record.Text,
			record.AuthorID,
			record.AuthorName,
			biztime.FromMillis(record.CreatedAt),
		)
		if err != nil {
			r.logger.Warnw("skipping unreconstructable message", "message_id", key, "error", err)
			continue
		}
		messages = append(messages, m)
	}
	return messages
}

func ticketPath(ticketID string) string {
	return ticketsPath + "/" + ticketID
}

func messagesPath(ticketID string) string {
	return ticketPath(ticketID) + "/mensagens"
}

func statusPath(ticketID string) string {
	return ticketPath(ticketID) + "/status"
}
