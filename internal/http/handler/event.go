package handler

import (
	"errors"
	"net/http"

	"library-cms/internal/audit"
	"library-cms/internal/auth"
	"library-cms/internal/domain/event"
	"library-cms/internal/rbac/presets"
	"library-cms/internal/service"
	apperrors "library-cms/pkg/errors"
	"library-cms/pkg/validator"

	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	events EventService
	base
}

func NewEventHandler(events EventService, deps Deps) *EventHandler {
	return &EventHandler{events: events, base: newBase(deps)}
}

// List returns events in calendar order. ?upcoming=true drops past events.
func (h *EventHandler) List(c echo.Context) error {
	page, err := parsePage(c, h.pageSize)
	if err != nil {
		return err
	}
	libraryID, err := queryUUID(c, queryLibraryID)
	if err != nil {
		return err
	}
	upcoming, err := queryBool(c, queryUpcoming)
	if err != nil {
		return err
	}

	filter := event.ListEventsFilter{
		LibraryID: libraryID,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if upcoming != nil && *upcoming {
		now := h.clock.Now().UTC()
		filter.After = &now
	}
	if h.publicOnly(auth.GetActor(c), presets.ResourceEvent, libraryID) {
		filter.Approved, filter.Published = truePtr(), truePtr()
	}

	events, err := h.events.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondList(c, events, page)
}

func (h *EventHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ev, err := h.events.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !h.policy.CanRead(auth.GetActor(c), service.EventTarget(ev)) {
		return apperrors.NotFound(msgEventNotFound)
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) Create(c echo.Context) error {
	actor := auth.GetActor(c)
	if err := h.policy.Authorize(actor, presets.ResourceEvent, presets.ActionCreate); err != nil {
		return err
	}

	var input event.CreateEventInput
	if err := bindContent(c, &input); err != nil {
		return err
	}
	var dateErr error
	if input.EventDate.IsZero() {
		dateErr = errors.New(msgEventDateReq)
	}
	if err := firstInvalid(
		validator.Required(fieldTitle, input.Title, validator.MaxTitleLen),
		validator.Text(fieldDescription, input.Description, validator.MaxBodyLen),
		validator.Text(fieldLocation, input.Location, validator.MaxTitleLen),
		dateErr,
		validator.URL(fieldImageURL, input.ImageURL),
	); err != nil {
		return err
	}
	file, err := h.files.Read(c, formFieldFile)
	if err != nil {
		return err
	}
	owner, err := h.ownerLibrary(c, actor)
	if err != nil {
		return err
	}

	created, err := h.events.Create(c.Request().Context(), input, owner, file)
	if err != nil {
		h.rec.record(c, audit.ResourceTypeEvent, audit.ActionCreate, nil, err)
		return err
	}
	h.rec.record(c, audit.ResourceTypeEvent, audit.ActionCreate, &created.ID, nil)
	return c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch event.UpdateEventInput
	if err := bindContent(c, &patch); err != nil {
		return err
	}
	checks := []error{
		optionalText(fieldDescription, patch.Description, validator.MaxBodyLen),
		optionalText(fieldLocation, patch.Location, validator.MaxTitleLen),
	}
	if patch.Title != nil {
		checks = append(checks, validator.Required(fieldTitle, *patch.Title, validator.MaxTitleLen))
	}
	if patch.EventDate != nil && patch.EventDate.IsZero() {
		checks = append(checks, errors.New(msgEventDateReq))
	}
	if patch.ImageURL != nil {
		checks = append(checks, validator.URL(fieldImageURL, *patch.ImageURL))
	}
	if err := firstInvalid(checks...); err != nil {
		return err
	}
	file, err := h.files.Read(c, formFieldFile)
	if err != nil {
		return err
	}

	updated, err := h.events.Update(c.Request().Context(), id, patch, auth.GetActor(c), file)
	h.rec.record(c, audit.ResourceTypeEvent, audit.ActionUpdate, &id, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	_, err = h.events.Delete(c.Request().Context(), id, auth.GetActor(c))
	h.rec.record(c, audit.ResourceTypeEvent, audit.ActionDelete, &id, err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
