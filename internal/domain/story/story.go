package story

import (
	"time"

	"github.com/google/uuid"
)

type Story struct {
	ID               uuid.UUID `json:"id"`
	LibraryID        uuid.UUID `json:"libraryId"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Excerpt          string    `json:"excerpt"`
	Tags             []string  `json:"tags"`
	FeaturedImageURL string    `json:"featuredImageUrl"`
	IsApproved       bool      `json:"isApproved"`
	IsPublished      bool      `json:"isPublished"`
	IsFeatured       bool      `json:"isFeatured"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type CreateStoryInput struct {
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	Excerpt          string   `json:"excerpt"`
	Tags             []string `json:"tags"`
	FeaturedImageURL string   `json:"featuredImageUrl"`
	IsPublished      bool     `json:"isPublished"`
}

type UpdateStoryInput struct {
	Title            *string   `json:"title"`
	Content          *string   `json:"content"`
	Excerpt          *string   `json:"excerpt"`
	Tags             *[]string `json:"tags"`
	FeaturedImageURL *string   `json:"featuredImageUrl"`
	IsPublished      *bool     `json:"isPublished"`
	IsFeatured       *bool     `json:"isFeatured"`
	IsApproved       *bool     `json:"isApproved"`
}

type ListStoriesFilter struct {
	LibraryID *uuid.UUID
	Tags      []string
	Approved  *bool
	Published *bool
	Featured  *bool
	Limit     int
	Offset    int
}

// Apply merges the non-nil content fields of in over s.
// Workflow flags are left to the caller.
func (s *Story) Apply(in UpdateStoryInput) {
	if in.Title != nil {
		s.Title = *in.Title
	}
	if in.Content != nil {
		s.Content = *in.Content
	}
	if in.Excerpt != nil {
		s.Excerpt = *in.Excerpt
	}
	if in.Tags != nil {
		s.Tags = append([]string(nil), (*in.Tags)...)
	}
	if in.FeaturedImageURL != nil {
		s.FeaturedImageURL = *in.FeaturedImageURL
	}
}
