package audit

import (
	"context"
	"encoding/json"
	"time"

	"library-cms/internal/auth"
	"library-cms/pkg/logger"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ActorType represents the type of entity performing an action
type ActorType string

const (
	ActorTypeUser      ActorType = "user"
	ActorTypeAnonymous ActorType = "anonymous"
	ActorTypeSystem    ActorType = "system"
)

// ResourceType represents the type of resource being acted upon
type ResourceType string

const (
	ResourceTypeLibrary     ResourceType = "library"
	ResourceTypeStory       ResourceType = "story"
	ResourceTypeEvent       ResourceType = "event"
	ResourceTypeMedia       ResourceType = "media"
	ResourceTypeMessage     ResourceType = "message"
	ResourceTypeUser        ResourceType = "user"
	ResourceTypeMaintenance ResourceType = "maintenance"
	ResourceTypeBackup      ResourceType = "backup"
)

// Action represents the action being performed
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionReply  Action = "reply"
	ActionLogin  Action = "login"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusDenied  Status = "denied"
)

const (
	tableAuditEvents = "audit_events"
	logTimeout       = 2 * time.Second
	defaultLimit     = 100
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	auditColumns = []string{
		"id", "event_type", "actor_type", "actor_id", "library_id", "resource_type", "resource_id",
		"action", "status", "ip_address", "user_agent", "request_id", "metadata", "error_message", "created_at",
	}
)

// Event represents an audit event
type Event struct {
	ID           uuid.UUID      `json:"id"`
	EventType    string         `json:"eventType"`
	ActorType    ActorType      `json:"actorType"`
	ActorID      *uuid.UUID     `json:"actorId,omitempty"`
	LibraryID    *uuid.UUID     `json:"libraryId,omitempty"`
	ResourceType ResourceType   `json:"resourceType"`
	ResourceID   *uuid.UUID     `json:"resourceId,omitempty"`
	Action       Action         `json:"action"`
	Status       Status         `json:"status"`
	IPAddress    string         `json:"ipAddress"`
	UserAgent    string         `json:"userAgent"`
	RequestID    string         `json:"requestId"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

type store interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Logger writes audit events without blocking the request that produced them.
type Logger struct {
	db  store
	log zerolog.Logger
}

func NewLogger(db store, log zerolog.Logger) *Logger {
	return &Logger{db: db, log: log.With().Str("component", "audit").Logger()}
}

// Log records an audit event
func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	var metadataJSON []byte
	if event.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return err
		}
	}

	query, args, err := psql.Insert(tableAuditEvents).
		Columns(auditColumns...).
		Values(
			event.ID, event.EventType, string(event.ActorType), event.ActorID, event.LibraryID,
			string(event.ResourceType), event.ResourceID, string(event.Action), string(event.Status),
			event.IPAddress, event.UserAgent, event.RequestID, metadataJSON, event.ErrorMessage, event.CreatedAt,
		).
		ToSql()
	if err != nil {
		return err
	}

	_, err = l.db.Exec(ctx, query, args...)
	return err
}

// Record logs a successful action taken in the request behind c.
func (l *Logger) Record(c echo.Context, resourceType ResourceType, resourceID *uuid.UUID, action Action, metadata map[string]any) {
	l.logAsync(NewEvent(c, resourceType, resourceID, action, StatusSuccess, metadata))
}

// RecordError logs a failed action. Authorization failures are stored as denied.
func (l *Logger) RecordError(c echo.Context, resourceType ResourceType, resourceID *uuid.UUID, action Action, status Status, err error) {
	event := NewEvent(c, resourceType, resourceID, action, status, nil)
	event.ErrorMessage = logger.SanitizeLogMessage(err.Error())
	l.logAsync(event)
}

func (l *Logger) logAsync(event *Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
		defer cancel()
		if err := l.Log(ctx, event); err != nil {
			l.log.Error().Err(err).Str("event_type", event.EventType).Msg("audit log failed")
		}
	}()
}

// NewEvent builds an event from the request and the actor resolved by the auth middleware.
func NewEvent(c echo.Context, resourceType ResourceType, resourceID *uuid.UUID, action Action, status Status, metadata map[string]any) *Event {
	event := &Event{
		EventType:    string(resourceType) + "." + string(action),
		ActorType:    ActorTypeAnonymous,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Status:       status,
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
		Metadata:     logger.SanitizeMap(metadata),
	}

	if actor := auth.GetActor(c); actor != nil {
		id := actor.ID
		event.ActorType = ActorTypeUser
		event.ActorID = &id
		if actor.HasLibrary() {
			lib := actor.LibraryID
			event.LibraryID = &lib
		}
	}
	return event
}

type QueryFilter struct {
	ActorID      *uuid.UUID
	LibraryID    *uuid.UUID
	ResourceType *ResourceType
	ResourceID   *uuid.UUID
	Action       *Action
	Status       *Status
	StartTime    *time.Time
	EndTime      *time.Time
	Limit        int
	Offset       int
}

func queryBuilder(filter QueryFilter) sq.SelectBuilder {
	b := psql.Select(auditColumns...).From(tableAuditEvents)

	if filter.ActorID != nil {
		b = b.Where(sq.Expr("actor_id = ?", *filter.ActorID))
	}
	if filter.LibraryID != nil {
		b = b.Where(sq.Expr("library_id = ?", *filter.LibraryID))
	}
	if filter.ResourceType != nil {
		b = b.Where(sq.Eq{"resource_type": string(*filter.ResourceType)})
	}
	if filter.ResourceID != nil {
		b = b.Where(sq.Expr("resource_id = ?", *filter.ResourceID))
	}
	if filter.Action != nil {
		b = b.Where(sq.Eq{"action": string(*filter.Action)})
	}
	if filter.Status != nil {
		b = b.Where(sq.Eq{"status": string(*filter.Status)})
	}
	if filter.StartTime != nil {
		b = b.Where(sq.GtOrEq{"created_at": *filter.StartTime})
	}
	if filter.EndTime != nil {
		b = b.Where(sq.LtOrEq{"created_at": *filter.EndTime})
	}

	b = b.OrderBy("created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	b = b.Limit(uint64(limit))
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}
	return b
}

// Query retrieves audit events, newest first.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]*Event, error) {
	query, args, err := queryBuilder(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := l.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		event := &Event{}
		var metadataJSON []byte

		err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.ActorType,
			&event.ActorID,
			&event.LibraryID,
			&event.ResourceType,
			&event.ResourceID,
			&event.Action,
			&event.Status,
			&event.IPAddress,
			&event.UserAgent,
			&event.RequestID,
			&metadataJSON,
			&event.ErrorMessage,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &event.Metadata); err != nil {
				return nil, err
			}
		}

		events = append(events, event)
	}

	return events, rows.Err()
}
