package ticket

import (
	"context"
	"time"

	vo "chamado/internal/domain/ticket/valueobjects"
)

// ListSnapshotFunc receives the full ticket set on every change
// notification. The slice is rebuilt per snapshot and unordered; callers
// sort their own view.
type ListSnapshotFunc func(tickets []*Ticket)

// MessagesSnapshotFunc receives the full message set of one ticket on every
// change notification, unordered.
type MessagesSnapshotFunc func(messages []*Message)

// StatusSnapshotFunc receives the current status of one ticket. known is
// false when the status field is absent or not yet readable.
type StatusSnapshotFunc func(status vo.Status, known bool)

// Repository provides access to ticket records kept by the backend under
// chamados. Subscriptions are continuous until the returned cancel func is
// called; notifications for a given path arrive in backend emission order.
type Repository interface {
	// Create stores a new ticket and returns the backend-assigned id.
	Create(ctx context.Context, t *Ticket) (string, error)

	// GetStatus reads the current status field of a ticket one-shot.
	GetStatus(ctx context.Context, ticketID string) (vo.Status, bool, error)

	// AppendMessage appends a message record and returns its assigned key.
	AppendMessage(ctx context.Context, ticketID string, m *Message) (string, error)

	// UpdateActivity merges the denormalized preview and activity timestamp
	// into the parent ticket. This write is independent of AppendMessage and
	// not transactional with it; a failure in between leaves the preview
	// stale until the next message.
	UpdateActivity(ctx context.Context, ticketID string, preview string, at time.Time) error

	// SubscribeList registers for continuous updates on the ticket collection.
	SubscribeList(fn ListSnapshotFunc) (func(), error)

	// SubscribeMessages registers for continuous updates on one ticket's
	// message sub-collection.
	SubscribeMessages(ticketID string, fn MessagesSnapshotFunc) (func(), error)

	// SubscribeStatus registers for continuous updates on one ticket's
	// status field.
	SubscribeStatus(ticketID string, fn StatusSnapshotFunc) (func(), error)
}
