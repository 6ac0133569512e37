package handler

import (
	"library-cms/internal/domain/user"
	"library-cms/internal/policy"
	"library-cms/internal/rbac"
	apperrors "library-cms/pkg/errors"
	"library-cms/pkg/validator"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize        = 20
	defaultMaxUpload int64 = 10 << 20
)

// Deps are the collaborators shared by every content handler.
// Audit and Metrics are optional.
type Deps struct {
	Policy   *policy.Policy
	Files    *FileReader
	Audit    AuditLogger
	Metrics  ContentMetrics
	Clock    clock.Clock
	PageSize int
}

type base struct {
	policy   *policy.Policy
	files    *FileReader
	rec      recorder
	clock    clock.Clock
	pageSize int
}

func newBase(d Deps) base {
	b := base{
		policy:   d.Policy,
		files:    d.Files,
		rec:      recorder{audit: d.Audit, metrics: d.Metrics},
		clock:    d.Clock,
		pageSize: d.PageSize,
	}
	if b.policy == nil {
		b.policy = policy.Default()
	}
	if b.files == nil {
		b.files = NewFileReader(defaultMaxUpload)
	}
	if b.clock == nil {
		b.clock = clock.New()
	}
	if b.pageSize <= 0 {
		b.pageSize = defaultPageSize
	}
	return b
}

// ownerLibrary picks the library a new record belongs to. Library admins
// always write into their own library; super admins name one with ?libraryId.
func (b base) ownerLibrary(c echo.Context, actor *user.Actor) (uuid.UUID, error) {
	if !b.policy.IsSuperAdmin(actor) {
		return actor.LibraryID, nil
	}
	id, err := queryUUID(c, queryLibraryID)
	if err != nil || id == nil {
		return uuid.Nil, err
	}
	return *id, nil
}

// publicOnly reports whether a list must be narrowed to public records.
// Super admins see everything; actors who may edit the queried library see
// its drafts too.
func (b base) publicOnly(actor *user.Actor, kind rbac.Resource, libraryID *uuid.UUID) bool {
	if b.policy.IsSuperAdmin(actor) {
		return false
	}
	if libraryID == nil {
		return true
	}
	return b.policy.CanWrite(actor, policy.Target{Kind: kind, LibraryID: *libraryID}) != nil
}

// firstInvalid turns the first failed check into a validation error.
func firstInvalid(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return apperrors.Validation(err.Error())
		}
	}
	return nil
}

func optionalText(field string, value *string, maxLen int) error {
	if value == nil {
		return nil
	}
	return validator.Text(field, *value, maxLen)
}

func truePtr() *bool {
	v := true
	return &v
}
