package analytics

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeView  EventType = "view"
	EventTypeClick EventType = "click"
	EventTypeShare EventType = "share"
)

type Event struct {
	ID          uuid.UUID  `json:"id"`
	LibraryID   uuid.UUID  `json:"libraryId"`
	EventType   EventType  `json:"eventType"`
	ContentType string     `json:"contentType"`
	ContentID   *uuid.UUID `json:"contentId,omitempty"`
	VisitorID   string     `json:"visitorId"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type CreateEventInput struct {
	LibraryID   uuid.UUID  `json:"libraryId"`
	EventType   EventType  `json:"eventType"`
	ContentType string     `json:"contentType"`
	ContentID   *uuid.UUID `json:"contentId"`
	VisitorID   string     `json:"visitorId"`
}

type ListEventsFilter struct {
	LibraryID uuid.UUID
	Since     time.Time
}
