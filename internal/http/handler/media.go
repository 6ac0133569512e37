package handler

import (
	"errors"
	"net/http"

	"library-cms/internal/audit"
	"library-cms/internal/auth"
	"library-cms/internal/domain/media"
	"library-cms/internal/rbac/presets"
	"library-cms/internal/service"
	apperrors "library-cms/pkg/errors"
	"library-cms/pkg/validator"

	"github.com/labstack/echo/v4"
)

type MediaHandler struct {
	media MediaService
	base
}

func NewMediaHandler(svc MediaService, deps Deps) *MediaHandler {
	return &MediaHandler{media: svc, base: newBase(deps)}
}

func checkMediaType(t media.Type) error {
	switch t {
	case "", media.TypeImage, media.TypeVideo, media.TypeAudio:
		return nil
	default:
		return errors.New(msgInvalidMedia)
	}
}

func (h *MediaHandler) List(c echo.Context) error {
	page, err := parsePage(c, h.pageSize)
	if err != nil {
		return err
	}
	libraryID, err := queryUUID(c, queryLibraryID)
	if err != nil {
		return err
	}
	galleryID, err := queryUUID(c, queryGalleryID)
	if err != nil {
		return err
	}

	filter := media.ListItemsFilter{
		LibraryID: libraryID,
		GalleryID: galleryID,
		Tags:      parseTags(c),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if raw := c.QueryParam(queryType); raw != "" {
		t := media.Type(raw)
		if err := checkMediaType(t); err != nil {
			return apperrors.Validation(err.Error())
		}
		filter.MediaType = &t
	}
	if h.publicOnly(auth.GetActor(c), presets.ResourceMedia, libraryID) {
		filter.Approved = truePtr()
	}

	items, err := h.media.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondList(c, items, page)
}

func (h *MediaHandler) Tags(c echo.Context) error {
	tags, err := h.media.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string][]string{queryTags: tags})
}

func (h *MediaHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.media.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !h.policy.CanRead(auth.GetActor(c), service.MediaTarget(item)) {
		return apperrors.NotFound(msgMediaNotFound)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *MediaHandler) Create(c echo.Context) error {
	actor := auth.GetActor(c)
	if err := h.policy.Authorize(actor, presets.ResourceMedia, presets.ActionCreate); err != nil {
		return err
	}

	var input media.CreateItemInput
	if err := bindContent(c, &input); err != nil {
		return err
	}
	if err := firstInvalid(
		validator.Required(fieldTitle, input.Title, validator.MaxTitleLen),
		validator.Text(fieldDescription, input.Description, validator.MaxBodyLen),
		checkMediaType(input.MediaType),
		validator.URL(fieldURL, input.URL),
		validator.Tags(input.Tags),
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

	created, err := h.media.Create(c.Request().Context(), input, owner, file)
	if err != nil {
		h.rec.record(c, audit.ResourceTypeMedia, audit.ActionCreate, nil, err)
		return err
	}
	h.rec.record(c, audit.ResourceTypeMedia, audit.ActionCreate, &created.ID, nil)
	return c.JSON(http.StatusCreated, created)
}

func (h *MediaHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch media.UpdateItemInput
	if err := bindContent(c, &patch); err != nil {
		return err
	}
	checks := []error{optionalText(fieldDescription, patch.Description, validator.MaxBodyLen)}
	if patch.Title != nil {
		checks = append(checks, validator.Required(fieldTitle, *patch.Title, validator.MaxTitleLen))
	}
	if patch.MediaType != nil {
		checks = append(checks, checkMediaType(*patch.MediaType))
	}
	if patch.URL != nil {
		checks = append(checks, validator.URL(fieldURL, *patch.URL))
	}
	if patch.Tags != nil {
		checks = append(checks, validator.Tags(*patch.Tags))
	}
	if err := firstInvalid(checks...); err != nil {
		return err
	}
	file, err := h.files.Read(c, formFieldFile)
	if err != nil {
		return err
	}

	updated, err := h.media.Update(c.Request().Context(), id, patch, auth.GetActor(c), file)
	h.rec.record(c, audit.ResourceTypeMedia, audit.ActionUpdate, &id, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
