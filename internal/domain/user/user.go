package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser          Role = "user"
	RoleLibraryAdmin  Role = "library_admin"
	RoleSuperAdmin    Role = "super_admin"
	errInvalidRoleFmt      = "invalid role: %s"
)

// Validate validates the role
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleLibraryAdmin, RoleSuperAdmin:
		return nil
	default:
		return fmt.Errorf(errInvalidRoleFmt, r)
	}
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	LibraryID    *uuid.UUID `json:"libraryId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type CreateUserInput struct {
	Email        string
	PasswordHash string
	Role         Role
	LibraryID    *uuid.UUID
}

// Actor is the authenticated identity performing an operation.
// LibraryID is uuid.Nil when the session carries no library.
type Actor struct {
	ID        uuid.UUID `json:"id"`
	Role      Role      `json:"role"`
	LibraryID uuid.UUID `json:"libraryId"`
}

// Actor returns the session identity for u.
func (u *User) Actor() *Actor {
	a := &Actor{ID: u.ID, Role: u.Role}
	if u.LibraryID != nil {
		a.LibraryID = *u.LibraryID
	}
	return a
}

// HasLibrary reports whether the actor is bound to a library.
func (a *Actor) HasLibrary() bool {
	return a != nil && a.LibraryID != uuid.Nil
}
