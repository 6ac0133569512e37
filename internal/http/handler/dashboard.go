package handler

import (
	"net/http"

	"library-cms/internal/auth"
	"library-cms/internal/rbac/presets"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	dashboard DashboardService
	base
}

func NewDashboardHandler(dashboard DashboardService, deps Deps) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, base: newBase(deps)}
}

// scope resolves the library a dashboard request reads. Library admins see
// their own library; super admins must name one.
func (h *DashboardHandler) scope(c echo.Context) (uuid.UUID, error) {
	actor := auth.GetActor(c)
	if err := h.policy.Authorize(actor, presets.ResourceDashboard, presets.ActionRead); err != nil {
		return uuid.Nil, err
	}
	id, err := h.ownerLibrary(c, actor)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, apperrors.Validation(msgLibraryIDRequired)
	}
	return id, nil
}

func (h *DashboardHandler) Stats(c echo.Context) error {
	libraryID, err := h.scope(c)
	if err != nil {
		return err
	}
	stats, err := h.dashboard.Stats(c.Request().Context(), libraryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) Activity(c echo.Context) error {
	libraryID, err := h.scope(c)
	if err != nil {
		return err
	}
	items, err := h.dashboard.Activity(c.Request().Context(), libraryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *DashboardHandler) Analytics(c echo.Context) error {
	libraryID, err := h.scope(c)
	if err != nil {
		return err
	}
	report, err := h.dashboard.Analytics(c.Request().Context(), libraryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
