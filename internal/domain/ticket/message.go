package ticket

import (
	"fmt"
	"strings"
	"time"

	"chamado/internal/shared/biztime"
)

// Message is a chat message inside a ticket. Immutable once created; the id
// is the backend-assigned key of the record under chamados/{id}/mensagens.
type Message struct {
	id         string
	text       string
	authorUID  string
	authorName string
	createdAt  time.Time
}

// NewMessage creates a message to append. Text is stored trimmed; the author
// display name is snapshotted at send time.
func NewMessage(text string, authorUID string, authorName string) (*Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	if authorUID == "" {
		return nil, fmt.Errorf("author uid is required")
	}
	if authorName == "" {
		authorName = "Usuário"
	}

	return &Message{
		text:       trimmed,
		authorUID:  authorUID,
		authorName: authorName,
		createdAt:  biztime.NowUTC(),
	}, nil
}

// ReconstructMessage reconstructs a message from a stored record.
func ReconstructMessage(
	id string,
	text string,
	authorUID string,
	authorName string,
	createdAt time.Time,
) (*Message, error) {
	if id == "" {
		return nil, fmt.Errorf("message id is required")
	}

	return &Message{
		id:         id,
		text:       text,
		authorUID:  authorUID,
		authorName: authorName,
		createdAt:  createdAt,
	}, nil
}

func (m *Message) ID() string {
	return m.id
}

func (m *Message) Text() string {
	return m.text
}

func (m *Message) AuthorUID() string {
	return m.authorUID
}

func (m *Message) AuthorName() string {
	return m.authorName
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// SetID records the backend-assigned key after the append.
func (m *Message) SetID(id string) error {
	if m.id != "" {
		return fmt.Errorf("message id is already set")
	}
	if id == "" {
		return fmt.Errorf("message id cannot be empty")
	}
	m.id = id
	return nil
}
