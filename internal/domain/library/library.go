package library

import (
	"time"

	"github.com/google/uuid"
)

type Library struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Address          string    `json:"address"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Website          string    `json:"website"`
	LogoURL          string    `json:"logoUrl"`
	FeaturedImageURL string    `json:"featuredImageUrl"`
	IsApproved       bool      `json:"isApproved"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type CreateLibraryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
}

type UpdateLibraryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Website     *string `json:"website"`
	IsApproved  *bool   `json:"isApproved"`
}

type ListLibrariesFilter struct {
	Approved *bool
	Limit    int
	Offset   int
}

// Apply merges the non-nil descriptive fields of in over l.
// Approval is left to the caller.
func (l *Library) Apply(in UpdateLibraryInput) {
	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.Address != nil {
		l.Address = *in.Address
	}
	if in.Email != nil {
		l.Email = *in.Email
	}
	if in.Phone != nil {
		l.Phone = *in.Phone
	}
	if in.Website != nil {
		l.Website = *in.Website
	}
}
