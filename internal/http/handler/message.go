package handler

import (
	"net/http"
	"strings"

	"library-cms/internal/audit"
	"library-cms/internal/auth"
	"library-cms/internal/domain/message"
	"library-cms/internal/policy"
	"library-cms/internal/rbac/presets"
	apperrors "library-cms/pkg/errors"
	"library-cms/pkg/validator"

	"github.com/labstack/echo/v4"
)

type MessageHandler struct {
	messages MessageService
	base
}

func NewMessageHandler(messages MessageService, deps Deps) *MessageHandler {
	return &MessageHandler{messages: messages, base: newBase(deps)}
}

type replyRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Contact accepts a public contact form submission.
func (h *MessageHandler) Contact(c echo.Context) error {
	var input message.CreateMessageInput
	if err := bindStrictJSON(c, &input); err != nil {
		return err
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || strings.TrimSpace(input.Message) == "" {
		return apperrors.Validation(msgContactFieldsRequired)
	}
	if validator.Email(input.Email) != nil {
		return apperrors.Validation(msgInvalidEmail)
	}
	if err := firstInvalid(
		validator.Text(fieldName, input.Name, validator.MaxTitleLen),
		validator.Text(fieldSubject, input.Subject, validator.MaxSubjectLen),
		validator.Text(fieldMessage, input.Message, validator.MaxBodyLen),
	); err != nil {
		return err
	}

	created, err := h.messages.Create(c.Request().Context(), input)
	if err != nil {
		h.rec.record(c, audit.ResourceTypeMessage, audit.ActionCreate, nil, err)
		return err
	}
	h.rec.record(c, audit.ResourceTypeMessage, audit.ActionCreate, &created.ID, nil)
	return c.JSON(http.StatusCreated, created)
}

// List scopes library admins to their own inbox. Super admins may narrow
// with ?libraryId.
func (h *MessageHandler) List(c echo.Context) error {
	actor := auth.GetActor(c)
	if err := h.policy.Authorize(actor, presets.ResourceMessage, presets.ActionRead); err != nil {
		return err
	}
	page, err := parsePage(c, h.pageSize)
	if err != nil {
		return err
	}
	unread, err := queryBool(c, queryUnread)
	if err != nil {
		return err
	}

	filter := message.ListMessagesFilter{
		Unread: unread != nil && *unread,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if h.policy.IsSuperAdmin(actor) {
		if filter.LibraryID, err = queryUUID(c, queryLibraryID); err != nil {
			return err
		}
	} else {
		libraryID := actor.LibraryID
		filter.LibraryID = &libraryID
	}

	messages, err := h.messages.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondList(c, messages, page)
}

// Update marks a message read or unread. Messages addressed to a library
// may only be changed by that library's admins.
func (h *MessageHandler) Update(c echo.Context) error {
	actor := auth.GetActor(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch message.UpdateMessageInput
	if err := bindStrictJSON(c, &patch); err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.messages.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.LibraryID != nil {
		err = h.policy.CanAct(actor, policy.Target{Kind: presets.ResourceMessage, LibraryID: *existing.LibraryID}, presets.ActionWrite)
	} else {
		err = h.policy.Authorize(actor, presets.ResourceMessage, presets.ActionWrite)
	}
	if err != nil {
		h.rec.record(c, audit.ResourceTypeMessage, audit.ActionUpdate, &id, err)
		return err
	}

	updated, err := h.messages.Update(ctx, id, patch)
	h.rec.record(c, audit.ResourceTypeMessage, audit.ActionUpdate, &id, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Reply is mounted behind a library_admin role gate.
func (h *MessageHandler) Reply(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req replyRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
		return apperrors.Validation(msgSubjectBodyRequired)
	}
	if err := firstInvalid(
		validator.Text(fieldSubject, req.Subject, validator.MaxSubjectLen),
		validator.Text(fieldBody, req.Body, validator.MaxBodyLen),
	); err != nil {
		return err
	}

	resp, err := h.messages.Reply(c.Request().Context(), id, req.Subject, req.Body, auth.GetActor(c))
	h.rec.record(c, audit.ResourceTypeMessage, audit.ActionReply, &id, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *MessageHandler) Responses(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	responses, err := h.messages.Responses(c.Request().Context(), id, auth.GetActor(c))
	if err != nil {
		return err
	}
	if responses == nil {
		responses = []*message.Response{}
	}
	return c.JSON(http.StatusOK, map[string]any{"items": responses})
}
