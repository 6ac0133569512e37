package postgres

import (
	"context"

	"library-cms/internal/domain/media"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var mediaColumns = []string{
	"id", "library_id", "gallery_id", "title", "description", "media_type", "url", "tags",
	"is_approved", "created_at", "updated_at",
}

type MediaRepository struct {
	db querier
}

func NewMediaRepository(db *DB) *MediaRepository {
	return &MediaRepository{db: db.Pool}
}

func scanMedia(row pgx.Row) (*media.Item, error) {
	m := &media.Item{}
	err := row.Scan(
		&m.ID, &m.LibraryID, &m.GalleryID, &m.Title, &m.Description, &m.MediaType, &m.URL, &m.Tags,
		&m.IsApproved, &m.CreatedAt, &m.UpdatedAt,
	)
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return m, err
}

func (r *MediaRepository) Create(ctx context.Context, m *media.Item) (*media.Item, error) {
	b := psql.Insert(tableMedia).
		Columns("library_id", "gallery_id", "title", "description", "media_type", "url", "tags", "is_approved").
		Values(m.LibraryID, m.GalleryID, m.Title, m.Description, string(m.MediaType), m.URL, tagsOrEmpty(m.Tags), m.IsApproved).
		Suffix(returning(mediaColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	created, err := scanMedia(row)
	if err != nil {
		return nil, errFailedCreateMedia(err)
	}
	return created, nil
}

func (r *MediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*media.Item, error) {
	b := psql.Select(mediaColumns...).From(tableMedia).Where(eqID("id", id))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	m, err := scanMedia(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errFailedGetMedia(err)
	}
	return m, nil
}

func mediaListQuery(filter media.ListItemsFilter) sq.SelectBuilder {
	b := psql.Select(mediaColumns...).From(tableMedia)
	if filter.LibraryID != nil {
		b = b.Where(eqID("library_id", *filter.LibraryID))
	}
	if filter.GalleryID != nil {
		b = b.Where(eqID("gallery_id", *filter.GalleryID))
	}
	if filter.MediaType != nil {
		b = b.Where(sq.Eq{"media_type": string(*filter.MediaType)})
	}
	if len(filter.Tags) > 0 {
		b = b.Where(sq.Expr("tags && ?", filter.Tags))
	}
	if filter.Approved != nil {
		b = b.Where(sq.Eq{"is_approved": *filter.Approved})
	}
	return page(b.OrderBy("created_at DESC"), filter.Limit, filter.Offset)
}

func (r *MediaRepository) List(ctx context.Context, filter media.ListItemsFilter) ([]*media.Item, error) {
	list, err := queryRows(ctx, r.db, mediaListQuery(filter), scanMedia)
	if err != nil {
		return nil, errFailedListMedia(err)
	}
	return list, nil
}

func (r *MediaRepository) Update(ctx context.Context, m *media.Item) (*media.Item, error) {
	b := psql.Update(tableMedia).
		SetMap(map[string]any{
			"gallery_id":  m.GalleryID,
			"title":       m.Title,
			"description": m.Description,
			"media_type":  string(m.MediaType),
			"url":         m.URL,
			"tags":        tagsOrEmpty(m.Tags),
			"is_approved": m.IsApproved,
			"updated_at":  sq.Expr("NOW()"),
		}).
		Where(eqID("id", m.ID)).
		Suffix(returning(mediaColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	updated, err := scanMedia(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errFailedUpdateMedia(err)
	}
	return updated, nil
}
