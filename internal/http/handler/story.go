package handler

import (
	"net/http"

	"library-cms/internal/audit"
	"library-cms/internal/auth"
	"library-cms/internal/domain/story"
	"library-cms/internal/rbac/presets"
	"library-cms/internal/service"
	apperrors "library-cms/pkg/errors"
	"library-cms/pkg/validator"

	"github.com/labstack/echo/v4"
)

type StoryHandler struct {
	stories StoryService
	base
}

func NewStoryHandler(stories StoryService, deps Deps) *StoryHandler {
	return &StoryHandler{stories: stories, base: newBase(deps)}
}

func (h *StoryHandler) List(c echo.Context) error {
	page, err := parsePage(c, h.pageSize)
	if err != nil {
		return err
	}
	libraryID, err := queryUUID(c, queryLibraryID)
	if err != nil {
		return err
	}
	featured, err := queryBool(c, queryFeatured)
	if err != nil {
		return err
	}

	filter := story.ListStoriesFilter{
		LibraryID: libraryID,
		Tags:      parseTags(c),
		Featured:  featured,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if h.publicOnly(auth.GetActor(c), presets.ResourceStory, libraryID) {
		filter.Approved, filter.Published = truePtr(), truePtr()
	}

	stories, err := h.stories.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondList(c, stories, page)
}

func (h *StoryHandler) Tags(c echo.Context) error {
	tags, err := h.stories.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string][]string{queryTags: tags})
}

// Get hides drafts from readers who could not edit them.
func (h *StoryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	st, err := h.stories.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !h.policy.CanRead(auth.GetActor(c), service.StoryTarget(st)) {
		return apperrors.NotFound(msgStoryNotFound)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *StoryHandler) Create(c echo.Context) error {
	actor := auth.GetActor(c)
	if err := h.policy.Authorize(actor, presets.ResourceStory, presets.ActionCreate); err != nil {
		return err
	}

	var input story.CreateStoryInput
	if err := bindContent(c, &input); err != nil {
		return err
	}
	if err := firstInvalid(
		validator.Required(fieldTitle, input.Title, validator.MaxTitleLen),
		validator.Required(fieldContent, input.Content, validator.MaxBodyLen),
		validator.Text(fieldExcerpt, input.Excerpt, validator.MaxBodyLen),
		validator.Tags(input.Tags),
		validator.URL(fieldImageURL, input.FeaturedImageURL),
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

	created, err := h.stories.Create(c.Request().Context(), input, owner, file)
	if err != nil {
		h.rec.record(c, audit.ResourceTypeStory, audit.ActionCreate, nil, err)
		return err
	}
	h.rec.record(c, audit.ResourceTypeStory, audit.ActionCreate, &created.ID, nil)
	return c.JSON(http.StatusCreated, created)
}

func (h *StoryHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch story.UpdateStoryInput
	if err := bindContent(c, &patch); err != nil {
		return err
	}
	checks := []error{
		optionalText(fieldContent, patch.Content, validator.MaxBodyLen),
		optionalText(fieldExcerpt, patch.Excerpt, validator.MaxBodyLen),
	}
	if patch.Title != nil {
		checks = append(checks, validator.Required(fieldTitle, *patch.Title, validator.MaxTitleLen))
	}
	if patch.Tags != nil {
		checks = append(checks, validator.Tags(*patch.Tags))
	}
	if patch.FeaturedImageURL != nil {
		checks = append(checks, validator.URL(fieldImageURL, *patch.FeaturedImageURL))
	}
	if err := firstInvalid(checks...); err != nil {
		return err
	}
	file, err := h.files.Read(c, formFieldFile)
	if err != nil {
		return err
	}

	updated, err := h.stories.Update(c.Request().Context(), id, patch, auth.GetActor(c), file)
	h.rec.record(c, audit.ResourceTypeStory, audit.ActionUpdate, &id, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
