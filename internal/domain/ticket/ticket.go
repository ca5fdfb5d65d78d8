package ticket

import (
	"fmt"
	"sort"
	"time"

	vo "chamado/internal/domain/ticket/valueobjects"
	"chamado/internal/shared/biztime"
)

// Ticket is the support request aggregate. The id is assigned by the backend
// on creation; lastMessage is a denormalized preview of the latest message
// text and updatedAt is refreshed on every new message.
type Ticket struct {
	id          string
	title       string
	status      vo.Status
	creatorUID  string
	lastMessage string
	updatedAt   time.Time
}

// NewTicket creates a ticket to submit: status open, empty preview,
// updatedAt set to now.
func NewTicket(title string, creatorUID string) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if creatorUID == "" {
		return nil, fmt.Errorf("creator uid is required")
	}

	return &Ticket{
		title:      title,
		status:     vo.StatusOpen,
		creatorUID: creatorUID,
		updatedAt:  biztime.NowUTC(),
	}, nil
}

// ReconstructTicket reconstructs a ticket from a stored record.
func ReconstructTicket(
	id string,
	title string,
	status vo.Status,
	creatorUID string,
	lastMessage string,
	updatedAt time.Time,
) (*Ticket, error) {
	if id == "" {
		return nil, fmt.Errorf("ticket id is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Ticket{
		id:          id,
		title:       title,
		status:      status,
		creatorUID:  creatorUID,
		lastMessage: lastMessage,
		updatedAt:   updatedAt,
	}, nil
}

func (t *Ticket) ID() string {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Status() vo.Status {
	return t.status
}

func (t *Ticket) CreatorUID() string {
	return t.creatorUID
}

func (t *Ticket) LastMessage() string {
	return t.lastMessage
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// SetID records the backend-assigned id after creation.
func (t *Ticket) SetID(id string) error {
	if t.id != "" {
		return fmt.Errorf("ticket id is already set")
	}
	if id == "" {
		return fmt.Errorf("ticket id cannot be empty")
	}
	t.id = id
	return nil
}

// RecordMessage refreshes the denormalized preview and activity timestamp
// for a newly appended message. Appending to a closed ticket is an invariant
// violation.
func (t *Ticket) RecordMessage(m *Message) error {
	if m == nil {
		return fmt.Errorf("message cannot be nil")
	}
	if t.status.IsClosed() {
		return fmt.Errorf("cannot append message to closed ticket")
	}

	t.lastMessage = m.Text()
	t.updatedAt = m.CreatedAt()
	return nil
}

// SortByActivity orders tickets most recently active first. Ties on
// updatedAt break on the id descending so the order is deterministic.
func SortByActivity(tickets []*Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		if !tickets[i].updatedAt.Equal(tickets[j].updatedAt) {
			return tickets[i].updatedAt.After(tickets[j].updatedAt)
		}
		return tickets[i].id > tickets[j].id
	})
}

// SortMessages orders messages oldest first, chat order. Ties on createdAt
// break on the backend-assigned key, which is time-prefixed, so equal-time
// messages keep insertion order.
func SortMessages(messages []*Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		if !messages[i].createdAt.Equal(messages[j].createdAt) {
			return messages[i].createdAt.Before(messages[j].createdAt)
		}
		return messages[i].id < messages[j].id
	})
}
