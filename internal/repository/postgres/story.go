package postgres

import (
	"context"

	"library-cms/internal/domain/story"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var storyColumns = []string{
	"id", "library_id", "title", "content", "excerpt", "tags", "featured_image_url",
	"is_approved", "is_published", "is_featured", "created_at", "updated_at",
}

type StoryRepository struct {
	db querier
}

func NewStoryRepository(db *DB) *StoryRepository {
	return &StoryRepository{db: db.Pool}
}

func scanStory(row pgx.Row) (*story.Story, error) {
	s := &story.Story{}
	err := row.Scan(
		&s.ID, &s.LibraryID, &s.Title, &s.Content, &s.Excerpt, &s.Tags, &s.FeaturedImageURL,
		&s.IsApproved, &s.IsPublished, &s.IsFeatured, &s.CreatedAt, &s.UpdatedAt,
	)
	if s.Tags == nil {
		s.Tags = []string{}
	}
	return s, err
}

func (r *StoryRepository) Create(ctx context.Context, s *story.Story) (*story.Story, error) {
	b := psql.Insert(tableStories).
		Columns("library_id", "title", "content", "excerpt", "tags", "featured_image_url", "is_approved", "is_published", "is_featured").
		Values(s.LibraryID, s.Title, s.Content, s.Excerpt, tagsOrEmpty(s.Tags), s.FeaturedImageURL, s.IsApproved, s.IsPublished, s.IsFeatured).
		Suffix(returning(storyColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	created, err := scanStory(row)
	if err != nil {
		return nil, errFailedCreateStory(err)
	}
	return created, nil
}

func (r *StoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*story.Story, error) {
	b := psql.Select(storyColumns...).From(tableStories).Where(eqID("id", id))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	s, err := scanStory(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errFailedGetStory(err)
	}
	return s, nil
}

func storyListQuery(filter story.ListStoriesFilter) sq.SelectBuilder {
	b := psql.Select(storyColumns...).From(tableStories)
	if filter.LibraryID != nil {
		b = b.Where(eqID("library_id", *filter.LibraryID))
	}
	if len(filter.Tags) > 0 {
		b = b.Where(sq.Expr("tags && ?", filter.Tags))
	}
	if filter.Approved != nil {
		b = b.Where(sq.Eq{"is_approved": *filter.Approved})
	}
	if filter.Published != nil {
		b = b.Where(sq.Eq{"is_published": *filter.Published})
	}
	if filter.Featured != nil {
		b = b.Where(sq.Eq{"is_featured": *filter.Featured})
	}
	return page(b.OrderBy("created_at DESC"), filter.Limit, filter.Offset)
}

func (r *StoryRepository) List(ctx context.Context, filter story.ListStoriesFilter) ([]*story.Story, error) {
	list, err := queryRows(ctx, r.db, storyListQuery(filter), scanStory)
	if err != nil {
		return nil, errFailedListStories(err)
	}
	return list, nil
}

func (r *StoryRepository) Update(ctx context.Context, s *story.Story) (*story.Story, error) {
	b := psql.Update(tableStories).
		SetMap(map[string]any{
			"title":              s.Title,
			"content":            s.Content,
			"excerpt":            s.Excerpt,
			"tags":               tagsOrEmpty(s.Tags),
			"featured_image_url": s.FeaturedImageURL,
			"is_approved":        s.IsApproved,
			"is_published":       s.IsPublished,
			"is_featured":        s.IsFeatured,
			"updated_at":         sq.Expr("NOW()"),
		}).
		Where(eqID("id", s.ID)).
		Suffix(returning(storyColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	updated, err := scanStory(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errFailedUpdateStory(err)
	}
	return updated, nil
}

// tagsOrEmpty keeps NOT NULL array columns from receiving NULL.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
