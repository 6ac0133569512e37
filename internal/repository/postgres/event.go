package postgres

import (
	"context"

	"library-cms/internal/domain/event"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var eventColumns = []string{
	"id", "library_id", "title", "description", "location", "event_date", "image_url",
	"is_approved", "is_published", "created_at", "updated_at",
}

type EventRepository struct {
	db querier
}

func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db.Pool}
}

func scanEvent(row pgx.Row) (*event.Event, error) {
	e := &event.Event{}
	err := row.Scan(
		&e.ID, &e.LibraryID, &e.Title, &e.Description, &e.Location, &e.EventDate, &e.ImageURL,
		&e.IsApproved, &e.IsPublished, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *EventRepository) Create(ctx context.Context, e *event.Event) (*event.Event, error) {
	b := psql.Insert(tableEvents).
		Columns("library_id", "title", "description", "location", "event_date", "image_url", "is_approved", "is_published").
		Values(e.LibraryID, e.Title, e.Description, e.Location, e.EventDate, e.ImageURL, e.IsApproved, e.IsPublished).
		Suffix(returning(eventColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	created, err := scanEvent(row)
	if err != nil {
		return nil, errFailedCreateEvent(err)
	}
	return created, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	b := psql.Select(eventColumns...).From(tableEvents).Where(eqID("id", id))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	e, err := scanEvent(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errFailedGetEvent(err)
	}
	return e, nil
}

// eventListQuery orders by creation, newest first. With After set it lists
// the calendar instead: events after that instant, soonest first.
func eventListQuery(filter event.ListEventsFilter) sq.SelectBuilder {
	b := psql.Select(eventColumns...).From(tableEvents)
	if filter.LibraryID != nil {
		b = b.Where(eqID("library_id", *filter.LibraryID))
	}
	if filter.Approved != nil {
		b = b.Where(sq.Eq{"is_approved": *filter.Approved})
	}
	if filter.Published != nil {
		b = b.Where(sq.Eq{"is_published": *filter.Published})
	}
	if filter.After != nil {
		b = b.Where(sq.Gt{"event_date": *filter.After}).OrderBy("event_date ASC")
	} else {
		b = b.OrderBy("created_at DESC")
	}
	return page(b, filter.Limit, filter.Offset)
}

func (r *EventRepository) List(ctx context.Context, filter event.ListEventsFilter) ([]*event.Event, error) {
	list, err := queryRows(ctx, r.db, eventListQuery(filter), scanEvent)
	if err != nil {
		return nil, errFailedListEvents(err)
	}
	return list, nil
}

func (r *EventRepository) Update(ctx context.Context, e *event.Event) (*event.Event, error) {
	b := psql.Update(tableEvents).
		SetMap(map[string]any{
			"title":        e.Title,
			"description":  e.Description,
			"location":     e.Location,
			"event_date":   e.EventDate,
			"image_url":    e.ImageURL,
			"is_approved":  e.IsApproved,
			"is_published": e.IsPublished,
			"updated_at":   sq.Expr("NOW()"),
		}).
		Where(eqID("id", e.ID)).
		Suffix(returning(eventColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	updated, err := scanEvent(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errFailedUpdateEvent(err)
	}
	return updated, nil
}

// Delete removes the event and reports whether a row existed.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := psql.Delete(tableEvents).Where(eqID("id", id)).ToSql()
	if err != nil {
		return false, errFailedBuildQuery(err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, errFailedDeleteEvent(err)
	}
	return tag.RowsAffected() > 0, nil
}
