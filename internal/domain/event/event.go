package event

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID  `json:"id"`
	LibraryID   uuid.UUID  `json:"libraryId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	EventDate   time.Time  `json:"eventDate"`
	ImageURL    string     `json:"imageUrl"`
	IsApproved  bool       `json:"isApproved"`
	IsPublished bool       `json:"isPublished"`
	CreatedAt   *time.Time `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

type CreateEventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	EventDate   time.Time `json:"eventDate"`
	ImageURL    string    `json:"imageUrl"`
	IsPublished bool      `json:"isPublished"`
}

type UpdateEventInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	EventDate   *time.Time `json:"eventDate"`
	ImageURL    *string    `json:"imageUrl"`
	IsPublished *bool      `json:"isPublished"`
	IsApproved  *bool      `json:"isApproved"`
}

type ListEventsFilter struct {
	LibraryID *uuid.UUID
	Approved  *bool
	Published *bool
	After     *time.Time
	Limit     int
	Offset    int
}

func (e *Event) Apply(in UpdateEventInput) {
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Location != nil {
		e.Location = *in.Location
	}
	if in.EventDate != nil {
		e.EventDate = *in.EventDate
	}
	if in.ImageURL != nil {
		e.ImageURL = *in.ImageURL
	}
}

// IsUpcoming reports whether the event happens strictly after now.
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.EventDate.After(now)
}
