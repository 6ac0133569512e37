package handler

import (
	"errors"
	"net/http"

	"library-cms/internal/audit"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type listResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

func respondList[T any](c echo.Context, items []T, page pageParams) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, listResponse[T]{Items: items, Limit: page.Limit, Offset: page.Offset})
}

// recorder fans a mutation outcome out to the audit trail and the content metrics.
// Both collaborators are optional.
type recorder struct {
	audit   AuditLogger
	metrics ContentMetrics
}

func (r recorder) record(c echo.Context, resource audit.ResourceType, action audit.Action, id *uuid.UUID, err error) {
	if r.metrics != nil {
		r.metrics.RecordContent(string(resource), string(action), err)
	}
	if r.audit == nil {
		return
	}
	if err == nil {
		r.audit.Record(c, resource, id, action, nil)
		return
	}
	status := audit.StatusFailure
	if errors.Is(err, apperrors.ErrForbidden) || errors.Is(err, apperrors.ErrUnauthorized) {
		status = audit.StatusDenied
	}
	r.audit.RecordError(c, resource, id, action, status, err)
}
