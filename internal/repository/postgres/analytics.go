package postgres

import (
	"context"

	"library-cms/internal/domain/analytics"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var analyticsColumns = []string{
	"id", "library_id", "event_type", "content_type", "content_id", "visitor_id", "created_at",
}

type AnalyticsRepository struct {
	db querier
}

func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db.Pool}
}

func scanAnalyticsEvent(row pgx.Row) (*analytics.Event, error) {
	e := &analytics.Event{}
	err := row.Scan(&e.ID, &e.LibraryID, &e.EventType, &e.ContentType, &e.ContentID, &e.VisitorID, &e.CreatedAt)
	return e, err
}

func (r *AnalyticsRepository) Create(ctx context.Context, input analytics.CreateEventInput) (*analytics.Event, error) {
	b := psql.Insert(tableAnalyticsEvents).
		Columns("library_id", "event_type", "content_type", "content_id", "visitor_id").
		Values(input.LibraryID, string(input.EventType), input.ContentType, input.ContentID, input.VisitorID).
		Suffix(returning(analyticsColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	e, err := scanAnalyticsEvent(row)
	if err != nil {
		return nil, errFailedCreateAnalytics(err)
	}
	return e, nil
}

func analyticsListQuery(filter analytics.ListEventsFilter) sq.SelectBuilder {
	b := psql.Select(analyticsColumns...).
		From(tableAnalyticsEvents).
		Where(eqID("library_id", filter.LibraryID))
	if !filter.Since.IsZero() {
		b = b.Where(sq.GtOrEq{"created_at": filter.Since})
	}
	return b.OrderBy("created_at ASC")
}

func (r *AnalyticsRepository) List(ctx context.Context, filter analytics.ListEventsFilter) ([]*analytics.Event, error) {
	list, err := queryRows(ctx, r.db, analyticsListQuery(filter), scanAnalyticsEvent)
	if err != nil {
		return nil, errFailedListAnalytics(err)
	}
	return list, nil
}
