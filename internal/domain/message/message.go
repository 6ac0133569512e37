package message

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID  `json:"id"`
	LibraryID *uuid.UUID `json:"libraryId,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"isRead"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type CreateMessageInput struct {
	LibraryID *uuid.UUID `json:"libraryId"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
}

type UpdateMessageInput struct {
	IsRead *bool `json:"isRead"`
}

type ListMessagesFilter struct {
	LibraryID *uuid.UUID
	Unread    bool
	Limit     int
	Offset    int
}

func (m *Message) Apply(in UpdateMessageInput) {
	if in.IsRead != nil {
		m.IsRead = *in.IsRead
	}
}

// Response is a reply sent by a library admin to a contact message.
type Response struct {
	ID          uuid.UUID `json:"id"`
	MessageID   uuid.UUID `json:"messageId"`
	LibraryID   uuid.UUID `json:"libraryId"`
	RespondedBy uuid.UUID `json:"respondedBy"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateResponseInput struct {
	MessageID   uuid.UUID
	LibraryID   uuid.UUID
	RespondedBy uuid.UUID
	Subject     string
	Body        string
}
