package media

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeImage Type = "image"
	TypeVideo Type = "video"
	TypeAudio Type = "audio"
)

type Item struct {
	ID          uuid.UUID  `json:"id"`
	LibraryID   uuid.UUID  `json:"libraryId"`
	GalleryID   *uuid.UUID `json:"galleryId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	MediaType   Type       `json:"mediaType"`
	URL         string     `json:"url"`
	Tags        []string   `json:"tags"`
	IsApproved  bool       `json:"isApproved"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateItemInput struct {
	GalleryID   *uuid.UUID `json:"galleryId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	MediaType   Type       `json:"mediaType"`
	URL         string     `json:"url"`
	Tags        []string   `json:"tags"`
}

type UpdateItemInput struct {
	GalleryID   *uuid.UUID `json:"galleryId"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	MediaType   *Type      `json:"mediaType"`
	URL         *string    `json:"url"`
	Tags        *[]string  `json:"tags"`
	IsApproved  *bool      `json:"isApproved"`
}

type ListItemsFilter struct {
	LibraryID *uuid.UUID
	GalleryID *uuid.UUID
	MediaType *Type
	Tags      []string
	Approved  *bool
	Limit     int
	Offset    int
}

func (m *Item) Apply(in UpdateItemInput) {
	if in.GalleryID != nil {
		id := *in.GalleryID
		m.GalleryID = &id
	}
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.MediaType != nil {
		m.MediaType = *in.MediaType
	}
	if in.URL != nil {
		m.URL = *in.URL
	}
	if in.Tags != nil {
		m.Tags = append([]string(nil), (*in.Tags)...)
	}
}
