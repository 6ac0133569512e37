package postgres

import (
	"context"

	"library-cms/internal/domain/library"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var libraryColumns = []string{
	"id", "name", "description", "address", "email", "phone", "website",
	"logo_url", "featured_image_url", "is_approved", "created_at", "updated_at",
}

type LibraryRepository struct {
	db querier
}

func NewLibraryRepository(db *DB) *LibraryRepository {
	return &LibraryRepository{db: db.Pool}
}

func scanLibrary(row pgx.Row) (*library.Library, error) {
	l := &library.Library{}
	err := row.Scan(
		&l.ID, &l.Name, &l.Description, &l.Address, &l.Email, &l.Phone, &l.Website,
		&l.LogoURL, &l.FeaturedImageURL, &l.IsApproved, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *LibraryRepository) Create(ctx context.Context, l *library.Library) (*library.Library, error) {
	b := psql.Insert(tableLibraries).
		Columns("name", "description", "address", "email", "phone", "website", "logo_url", "featured_image_url", "is_approved").
		Values(l.Name, l.Description, l.Address, l.Email, l.Phone, l.Website, l.LogoURL, l.FeaturedImageURL, l.IsApproved).
		Suffix(returning(libraryColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	created, err := scanLibrary(row)
	if err != nil {
		return nil, errFailedCreateLibrary(err)
	}
	return created, nil
}

func (r *LibraryRepository) GetByID(ctx context.Context, id uuid.UUID) (*library.Library, error) {
	b := psql.Select(libraryColumns...).From(tableLibraries).Where(eqID("id", id))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	l, err := scanLibrary(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errFailedGetLibrary(err)
	}
	return l, nil
}

func libraryListQuery(filter library.ListLibrariesFilter) sq.SelectBuilder {
	b := psql.Select(libraryColumns...).From(tableLibraries)
	if filter.Approved != nil {
		b = b.Where(sq.Eq{"is_approved": *filter.Approved})
	}
	return page(b.OrderBy("name ASC"), filter.Limit, filter.Offset)
}

func (r *LibraryRepository) List(ctx context.Context, filter library.ListLibrariesFilter) ([]*library.Library, error) {
	list, err := queryRows(ctx, r.db, libraryListQuery(filter), scanLibrary)
	if err != nil {
		return nil, errFailedListLibraries(err)
	}
	return list, nil
}

// Update writes every mutable column of l. It returns (nil, nil) when no row matched.
func (r *LibraryRepository) Update(ctx context.Context, l *library.Library) (*library.Library, error) {
	b := psql.Update(tableLibraries).
		SetMap(map[string]any{
			"name":               l.Name,
			"description":        l.Description,
			"address":            l.Address,
			"email":              l.Email,
			"phone":              l.Phone,
			"website":            l.Website,
			"logo_url":           l.LogoURL,
			"featured_image_url": l.FeaturedImageURL,
			"is_approved":        l.IsApproved,
			"updated_at":         sq.Expr("NOW()"),
		}).
		Where(eqID("id", l.ID)).
		Suffix(returning(libraryColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	updated, err := scanLibrary(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errFailedUpdateLibrary(err)
	}
	return updated, nil
}
