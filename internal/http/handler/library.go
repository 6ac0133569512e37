package handler

import (
	"net/http"

	"library-cms/internal/audit"
	"library-cms/internal/auth"
	"library-cms/internal/domain/library"
	"library-cms/internal/service"
	apperrors "library-cms/pkg/errors"
	"library-cms/pkg/validator"

	"github.com/labstack/echo/v4"
)

type LibraryHandler struct {
	libraries LibraryService
	base
}

func NewLibraryHandler(libraries LibraryService, deps Deps) *LibraryHandler {
	return &LibraryHandler{libraries: libraries, base: newBase(deps)}
}

func (h *LibraryHandler) List(c echo.Context) error {
	page, err := parsePage(c, h.pageSize)
	if err != nil {
		return err
	}

	filter := library.ListLibrariesFilter{Limit: page.Limit, Offset: page.Offset}
	if !h.policy.IsSuperAdmin(auth.GetActor(c)) {
		filter.Approved = truePtr()
	}

	libraries, err := h.libraries.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondList(c, libraries, page)
}

func (h *LibraryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	lib, err := h.libraries.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !h.policy.CanRead(auth.GetActor(c), service.LibraryTarget(lib)) {
		return apperrors.NotFound(msgLibraryNotFound)
	}
	return c.JSON(http.StatusOK, lib)
}

func libraryContactChecks(email, website string) []error {
	var checks []error
	if email != "" {
		checks = append(checks, validator.Email(email))
	}
	return append(checks, validator.URL(fieldWebsite, website))
}

// Create is mounted behind a super_admin role gate.
func (h *LibraryHandler) Create(c echo.Context) error {
	var input library.CreateLibraryInput
	if err := bindContent(c, &input); err != nil {
		return err
	}
	checks := []error{
		validator.Required(fieldName, input.Name, validator.MaxTitleLen),
		validator.Text(fieldDescription, input.Description, validator.MaxBodyLen),
		validator.Text(fieldAddress, input.Address, validator.MaxTitleLen),
		validator.Text(fieldPhone, input.Phone, validator.MaxTitleLen),
	}
	if err := firstInvalid(append(checks, libraryContactChecks(input.Email, input.Website)...)...); err != nil {
		return err
	}
	logo, err := h.files.Read(c, formFieldLogo)
	if err != nil {
		return err
	}
	featured, err := h.files.Read(c, formFieldFeaturedImage)
	if err != nil {
		return err
	}

	created, err := h.libraries.Create(c.Request().Context(), input, logo, featured)
	if err != nil {
		h.rec.record(c, audit.ResourceTypeLibrary, audit.ActionCreate, nil, err)
		return err
	}
	h.rec.record(c, audit.ResourceTypeLibrary, audit.ActionCreate, &created.ID, nil)
	return c.JSON(http.StatusCreated, created)
}

func (h *LibraryHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch library.UpdateLibraryInput
	if err := bindContent(c, &patch); err != nil {
		return err
	}
	checks := []error{
		optionalText(fieldDescription, patch.Description, validator.MaxBodyLen),
		optionalText(fieldAddress, patch.Address, validator.MaxTitleLen),
		optionalText(fieldPhone, patch.Phone, validator.MaxTitleLen),
	}
	if patch.Name != nil {
		checks = append(checks, validator.Required(fieldName, *patch.Name, validator.MaxTitleLen))
	}
	var email, website string
	if patch.Email != nil {
		email = *patch.Email
	}
	if patch.Website != nil {
		website = *patch.Website
	}
	if err := firstInvalid(append(checks, libraryContactChecks(email, website)...)...); err != nil {
		return err
	}
	logo, err := h.files.Read(c, formFieldLogo)
	if err != nil {
		return err
	}
	featured, err := h.files.Read(c, formFieldFeaturedImage)
	if err != nil {
		return err
	}

	updated, err := h.libraries.Update(c.Request().Context(), id, patch, auth.GetActor(c), logo, featured)
	h.rec.record(c, audit.ResourceTypeLibrary, audit.ActionUpdate, &id, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
