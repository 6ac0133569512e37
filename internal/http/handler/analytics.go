package handler

import (
	"errors"
	"net/http"

	"library-cms/internal/domain/analytics"
	apperrors "library-cms/pkg/errors"
	"library-cms/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AnalyticsHandler struct {
	analytics AnalyticsService
}

func NewAnalyticsHandler(svc AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: svc}
}

// Track records an anonymous view, click or share. The event type defaults to view.
func (h *AnalyticsHandler) Track(c echo.Context) error {
	var input analytics.CreateEventInput
	if err := bindStrictJSON(c, &input); err != nil {
		return err
	}
	if input.LibraryID == uuid.Nil {
		return apperrors.Validation(msgLibraryIDRequired)
	}
	if input.EventType == "" {
		input.EventType = analytics.EventTypeView
	}

	var typeErr error
	switch input.EventType {
	case analytics.EventTypeView, analytics.EventTypeClick, analytics.EventTypeShare:
	default:
		typeErr = errors.New(msgInvalidEvent)
	}
	if err := firstInvalid(
		typeErr,
		validator.Text(fieldContentType, input.ContentType, validator.MaxTitleLen),
		validator.Text(fieldVisitorID, input.VisitorID, validator.MaxTitleLen),
	); err != nil {
		return err
	}

	recorded, err := h.analytics.Track(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, recorded)
}
