// Package events publishes content lifecycle notifications.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeContentCreated Type = "content.created"
	TypeContentUpdated Type = "content.updated"
	TypeContentDeleted Type = "content.deleted"
	TypeMessageReplied Type = "message.replied"
)

// Event is the payload written to the content topic.
type Event struct {
	Type       Type       `json:"type"`
	Resource   string     `json:"resource"`
	ResourceID uuid.UUID  `json:"resourceId"`
	LibraryID  *uuid.UUID `json:"libraryId,omitempty"`
	ActorID    *uuid.UUID `json:"actorId,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// Key partitions events by library so one tenant's events stay ordered.
func (e Event) Key() string {
	if e.LibraryID != nil {
		return e.LibraryID.String()
	}
	return e.ResourceID.String()
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop discards events. It is used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

func (Noop) Close() error { return nil }
