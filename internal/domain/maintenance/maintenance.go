package maintenance

import (
	"time"

	"github.com/google/uuid"
)

const DefaultMessage = "The site is under maintenance. Please try again later."

// State is the shared maintenance-mode flag.
type State struct {
	Enabled   bool       `json:"enabled"`
	Message   string     `json:"message"`
	UpdatedBy *uuid.UUID `json:"updatedBy,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type UpdateStateInput struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}
