package service

import (
	"context"
	"encoding/json"

	"library-cms/internal/domain/analytics"
	"library-cms/internal/domain/asset"
	"library-cms/internal/domain/event"
	"library-cms/internal/domain/library"
	"library-cms/internal/domain/maintenance"
	"library-cms/internal/domain/media"
	"library-cms/internal/domain/message"
	"library-cms/internal/domain/story"
	"library-cms/internal/domain/user"
	"library-cms/internal/events"
	"library-cms/pkg/mailer"

	"github.com/google/uuid"
)

// Consumer-side interfaces defined by services.
// Reads return (nil, nil) when the record does not exist, Update returns
// (nil, nil) when no row matched and Delete returns false when no row matched.
// Errors are reserved for I/O failures.

type StoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*story.Story, error)
	List(ctx context.Context, filter story.ListStoriesFilter) ([]*story.Story, error)
	Create(ctx context.Context, s *story.Story) (*story.Story, error)
	Update(ctx context.Context, s *story.Story) (*story.Story, error)
}

type EventRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error)
	List(ctx context.Context, filter event.ListEventsFilter) ([]*event.Event, error)
	Create(ctx context.Context, e *event.Event) (*event.Event, error)
	Update(ctx context.Context, e *event.Event) (*event.Event, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type MediaRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*media.Item, error)
	List(ctx context.Context, filter media.ListItemsFilter) ([]*media.Item, error)
	Create(ctx context.Context, m *media.Item) (*media.Item, error)
	Update(ctx context.Context, m *media.Item) (*media.Item, error)
}

type LibraryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*library.Library, error)
	List(ctx context.Context, filter library.ListLibrariesFilter) ([]*library.Library, error)
	Create(ctx context.Context, l *library.Library) (*library.Library, error)
	Update(ctx context.Context, l *library.Library) (*library.Library, error)
}

type LibraryGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*library.Library, error)
}

type MessageRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*message.Message, error)
	List(ctx context.Context, filter message.ListMessagesFilter) ([]*message.Message, error)
	Create(ctx context.Context, input message.CreateMessageInput) (*message.Message, error)
	Update(ctx context.Context, m *message.Message) (*message.Message, error)
	CreateResponse(ctx context.Context, input message.CreateResponseInput) (*message.Response, error)
	ListResponses(ctx context.Context, messageID uuid.UUID) ([]*message.Response, error)
}

type AnalyticsRepository interface {
	Create(ctx context.Context, input analytics.CreateEventInput) (*analytics.Event, error)
	List(ctx context.Context, filter analytics.ListEventsFilter) ([]*analytics.Event, error)
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
}

// AssetUploader stores a file under a logical folder and returns its public URL.
type AssetUploader interface {
	Upload(ctx context.Context, file *asset.File, folder string) (string, error)
}

type ReplyMailer interface {
	SendReply(ctx context.Context, reply mailer.ReplyEmail) error
}

type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

type TokenGenerator interface {
	Generate(actor *user.Actor) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type MaintenanceStore interface {
	Get(ctx context.Context) (maintenance.State, error)
	Set(ctx context.Context, state maintenance.State) error
}

// BackupSource exports whole tables as JSON rows.
type BackupSource interface {
	Tables() []string
	ExportTable(ctx context.Context, table string) ([]json.RawMessage, error)
}

// ObjectWriter stores a raw object under key and returns its URL.
type ObjectWriter interface {
	PutObject(ctx context.Context, key, contentType string, data []byte) (string, error)
}
