package handler

import (
	"context"

	"library-cms/internal/audit"
	"library-cms/internal/domain/analytics"
	"library-cms/internal/domain/asset"
	"library-cms/internal/domain/event"
	"library-cms/internal/domain/library"
	"library-cms/internal/domain/maintenance"
	"library-cms/internal/domain/media"
	"library-cms/internal/domain/message"
	"library-cms/internal/domain/story"
	"library-cms/internal/domain/user"
	"library-cms/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *user.User, error)
	Me(ctx context.Context, actor *user.Actor) (*user.User, error)
}

type LibraryService interface {
	Create(ctx context.Context, input library.CreateLibraryInput, logo, featured *asset.File) (*library.Library, error)
	Update(ctx context.Context, id uuid.UUID, patch library.UpdateLibraryInput, actor *user.Actor, logo, featured *asset.File) (*library.Library, error)
	Get(ctx context.Context, id uuid.UUID) (*library.Library, error)
	List(ctx context.Context, filter library.ListLibrariesFilter) ([]*library.Library, error)
}

type StoryService interface {
	Create(ctx context.Context, input story.CreateStoryInput, ownerLibraryID uuid.UUID, file *asset.File) (*story.Story, error)
	Update(ctx context.Context, id uuid.UUID, patch story.UpdateStoryInput, actor *user.Actor, file *asset.File) (*story.Story, error)
	Get(ctx context.Context, id uuid.UUID) (*story.Story, error)
	List(ctx context.Context, filter story.ListStoriesFilter) ([]*story.Story, error)
	ListTags(ctx context.Context) ([]string, error)
}

type EventService interface {
	Create(ctx context.Context, input event.CreateEventInput, ownerLibraryID uuid.UUID, file *asset.File) (*event.Event, error)
	Update(ctx context.Context, id uuid.UUID, patch event.UpdateEventInput, actor *user.Actor, file *asset.File) (*event.Event, error)
	Get(ctx context.Context, id uuid.UUID) (*event.Event, error)
	List(ctx context.Context, filter event.ListEventsFilter) ([]*event.Event, error)
	Delete(ctx context.Context, id uuid.UUID, actor *user.Actor) (bool, error)
}

type MediaService interface {
	Create(ctx context.Context, input media.CreateItemInput, ownerLibraryID uuid.UUID, file *asset.File) (*media.Item, error)
	Update(ctx context.Context, id uuid.UUID, patch media.UpdateItemInput, actor *user.Actor, file *asset.File) (*media.Item, error)
	Get(ctx context.Context, id uuid.UUID) (*media.Item, error)
	List(ctx context.Context, filter media.ListItemsFilter) ([]*media.Item, error)
	ListTags(ctx context.Context) ([]string, error)
}

type MessageService interface {
	Create(ctx context.Context, input message.CreateMessageInput) (*message.Message, error)
	Get(ctx context.Context, id uuid.UUID) (*message.Message, error)
	List(ctx context.Context, filter message.ListMessagesFilter) ([]*message.Message, error)
	Update(ctx context.Context, id uuid.UUID, patch message.UpdateMessageInput) (*message.Message, error)
	Reply(ctx context.Context, id uuid.UUID, subject, body string, actor *user.Actor) (*message.Response, error)
	Responses(ctx context.Context, id uuid.UUID, actor *user.Actor) ([]*message.Response, error)
}

type DashboardService interface {
	Stats(ctx context.Context, libraryID uuid.UUID) (*service.DashboardStats, error)
	Activity(ctx context.Context, libraryID uuid.UUID) ([]service.ActivityItem, error)
	Analytics(ctx context.Context, libraryID uuid.UUID) (*service.DashboardAnalytics, error)
}

type AnalyticsService interface {
	Track(ctx context.Context, input analytics.CreateEventInput) (*analytics.Event, error)
}

type MaintenanceService interface {
	Status(ctx context.Context) (maintenance.State, error)
	Set(ctx context.Context, input maintenance.UpdateStateInput, actor *user.Actor) (maintenance.State, error)
}

type BackupService interface {
	Create(ctx context.Context, actor *user.Actor) (*service.BackupManifest, error)
}

// AuditLogger records mutations. Implementations must not block the request.
type AuditLogger interface {
	Record(c echo.Context, resourceType audit.ResourceType, resourceID *uuid.UUID, action audit.Action, metadata map[string]any)
	RecordError(c echo.Context, resourceType audit.ResourceType, resourceID *uuid.UUID, action audit.Action, status audit.Status, err error)
}

type ContentMetrics interface {
	RecordContent(resource, operation string, err error)
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
