// Package policy decides whether an actor may read or mutate a library-owned
// resource. Decisions are pure: no I/O, no logging.
package policy

import (
	"fmt"

	"library-cms/internal/domain/user"
	"library-cms/internal/rbac"
	"library-cms/internal/rbac/presets"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
)

const (
	msgUnauthorized           = "Unauthorized"
	msgLibraryContextRequired = "Library context required"
	msgOwnLibraryOnly         = "You can only edit your own library"
	msgScopedFmt              = "You can only %s %s for your library"
)

var kindPlurals = map[rbac.Resource]string{
	presets.ResourceStory:   "stories",
	presets.ResourceEvent:   "events",
	presets.ResourceMedia:   "media",
	presets.ResourceMessage: "messages",
}

var actionVerbs = map[rbac.Action]string{
	presets.ActionRead:   "view",
	presets.ActionWrite:  "edit",
	presets.ActionDelete: "delete",
	presets.ActionReply:  "reply to",
}

// Target describes the resource a decision is made about.
type Target struct {
	Kind      rbac.Resource
	LibraryID uuid.UUID
	// Public is true when the record is visible to anonymous readers
	// (approved library, approved and published story or event, approved media).
	Public bool
}

type Policy struct {
	checker *rbac.Checker
}

func New(checker *rbac.Checker) *Policy {
	return &Policy{checker: checker}
}

// Default returns a Policy backed by the library CMS role matrix.
func Default() *Policy {
	return New(rbac.MustNew(presets.LibraryCMS()))
}

// RequireActor is the boundary precondition for every mutation.
func (p *Policy) RequireActor(actor *user.Actor) error {
	if actor == nil {
		return apperrors.Unauthorized(msgUnauthorized)
	}
	if err := p.checker.RequireRole(rbac.Role(actor.Role), presets.RoleLibraryAdmin); err != nil {
		return apperrors.Forbidden(msgUnauthorized)
	}
	if p.isSuperAdmin(actor) {
		return nil
	}
	if !actor.HasLibrary() {
		return apperrors.Forbidden(msgLibraryContextRequired)
	}
	return nil
}

// Authorize checks that actor holds action on kind, without looking at ownership.
func (p *Policy) Authorize(actor *user.Actor, kind rbac.Resource, action rbac.Action) error {
	if err := p.RequireActor(actor); err != nil {
		return err
	}
	if !p.checker.IsAuthorized(rbac.Role(actor.Role), kind, action) {
		return apperrors.Forbidden(msgUnauthorized)
	}
	return nil
}

// CanAct checks capability and tenant ownership for action on t.
func (p *Policy) CanAct(actor *user.Actor, t Target, action rbac.Action) error {
	if err := p.Authorize(actor, t.Kind, action); err != nil {
		return err
	}
	if p.isSuperAdmin(actor) {
		return nil
	}
	if actor.LibraryID != t.LibraryID {
		return apperrors.Forbidden(deniedMessage(t.Kind, action))
	}
	return nil
}

func (p *Policy) CanWrite(actor *user.Actor, t Target) error {
	return p.CanAct(actor, t, presets.ActionWrite)
}

// CanRead reports whether actor may see t. Non-public records are visible
// only to actors that could also edit them.
func (p *Policy) CanRead(actor *user.Actor, t Target) bool {
	if t.Public {
		return true
	}
	return p.CanWrite(actor, t) == nil
}

// ParseRole resolves name against the configured role hierarchy.
func (p *Policy) ParseRole(name string) (user.Role, error) {
	r, err := p.checker.ValidateRole(name)
	if err != nil {
		return "", err
	}
	return user.Role(r), nil
}

// RequireRole gates on an exact role match.
func (p *Policy) RequireRole(actor *user.Actor, roles ...user.Role) error {
	if actor == nil {
		return apperrors.Unauthorized(msgUnauthorized)
	}
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return apperrors.Forbidden(msgUnauthorized)
}

// CanApprove reports whether actor may change approval and featured flags on kind.
func (p *Policy) CanApprove(actor *user.Actor, kind rbac.Resource) bool {
	return p.Authorize(actor, kind, presets.ActionApprove) == nil
}

// IsSuperAdmin reports whether actor may act across every library.
func (p *Policy) IsSuperAdmin(actor *user.Actor) bool {
	return actor != nil && p.isSuperAdmin(actor)
}

func (p *Policy) isSuperAdmin(actor *user.Actor) bool {
	return p.checker.IsRoleElevated(rbac.Role(actor.Role), presets.RoleSuperAdmin)
}

func deniedMessage(kind rbac.Resource, action rbac.Action) string {
	if kind == presets.ResourceLibrary {
		return msgOwnLibraryOnly
	}
	plural, ok := kindPlurals[kind]
	if !ok {
		plural = string(kind)
	}
	verb, ok := actionVerbs[action]
	if !ok {
		verb = string(action)
	}
	return fmt.Sprintf(msgScopedFmt, verb, plural)
}
