package usecases

import (
	"context"
	"io"
	"log/slog"
	"time"

	"chamado/internal/domain/ticket"
	vo "chamado/internal/domain/ticket/valueobjects"
	"chamado/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type mockTicketRepository struct {
	CreateFunc            func(ctx context.Context, t *ticket.Ticket) (string, error)
	GetStatusFunc         func(ctx context.Context, ticketID string) (vo.Status, bool, error)
	AppendMessageFunc     func(ctx context.Context, ticketID string, m *ticket.Message) (string, error)
	UpdateActivityFunc    func(ctx context.Context, ticketID string, preview string, at time.Time) error
	SubscribeListFunc     func(fn ticket.ListSnapshotFunc) (func(), error)
	SubscribeMessagesFunc func(ticketID string, fn ticket.MessagesSnapshotFunc) (func(), error)
	SubscribeStatusFunc   func(ticketID string, fn ticket.StatusSnapshotFunc) (func(), error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) (string, error) {
	return m.CreateFunc(ctx, t)
}

func (m *mockTicketRepository) GetStatus(ctx context.Context, ticketID string) (vo.Status, bool, error) {
	return m.GetStatusFunc(ctx, ticketID)
}

func (m *mockTicketRepository) AppendMessage(ctx context.Context, ticketID string, msg *ticket.Message) (string, error) {
	return m.AppendMessageFunc(ctx, ticketID, msg)
}

func (m *mockTicketRepository) UpdateActivity(ctx context.Context, ticketID string, preview string, at time.Time) error {
	return m.UpdateActivityFunc(ctx, ticketID, preview, at)
}

func (m *mockTicketRepository) SubscribeList(fn ticket.ListSnapshotFunc) (func(), error) {
	return m.SubscribeListFunc(fn)
}

func (m *mockTicketRepository) SubscribeMessages(ticketID string, fn ticket.MessagesSnapshotFunc) (func(), error) {
	return m.SubscribeMessagesFunc(ticketID, fn)
}

func (m *mockTicketRepository) SubscribeStatus(ticketID string, fn ticket.StatusSnapshotFunc) (func(), error) {
	return m.SubscribeStatusFunc(ticketID, fn)
}
