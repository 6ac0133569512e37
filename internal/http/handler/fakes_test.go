package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"sync"

	"library-cms/internal/audit"
	"library-cms/internal/auth"
	"library-cms/internal/domain/asset"
	"library-cms/internal/domain/event"
	"library-cms/internal/domain/message"
	"library-cms/internal/domain/story"
	"library-cms/internal/domain/user"
	"library-cms/internal/service"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var (
	libA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	libB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func libraryAdmin(lib uuid.UUID) *user.Actor {
	return &user.Actor{ID: uuid.New(), Role: user.RoleLibraryAdmin, LibraryID: lib}
}

func superAdmin() *user.Actor {
	return &user.Actor{ID: uuid.New(), Role: user.RoleSuperAdmin}
}

func newRequestContext(method, target string, body io.Reader, contentType string, actor *user.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(auth.ContextKeyActor, actor)
	}
	return c, rec
}

func jsonContext(method, target, body string, actor *user.Actor) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return newRequestContext(method, target, r, echo.MIMEApplicationJSON, actor)
}

func withID(c echo.Context, id uuid.UUID) echo.Context {
	c.SetParamNames(paramID)
	c.SetParamValues(id.String())
	return c
}

// multipartBody builds a form with a JSON "data" part and one file part.
func multipartBody(data, field, filename string, content []byte) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if data != "" {
		_ = w.WriteField(formFieldData, data)
	}
	if field != "" {
		part, _ := w.CreateFormFile(field, filename)
		_, _ = part.Write(content)
	}
	_ = w.Close()
	return buf, w.FormDataContentType()
}

type fakeStoryService struct {
	stories     map[uuid.UUID]*story.Story
	listFilter  story.ListStoriesFilter
	createCalls int
	createOwner uuid.UUID
	createFile  *asset.File
	createInput story.CreateStoryInput
	updatePatch story.UpdateStoryInput
	updateActor *user.Actor
	err         error
}

func (f *fakeStoryService) Create(_ context.Context, input story.CreateStoryInput, owner uuid.UUID, file *asset.File) (*story.Story, error) {
	f.createCalls++
	f.createInput, f.createOwner, f.createFile = input, owner, file
	if f.err != nil {
		return nil, f.err
	}
	if owner == uuid.Nil {
		return nil, apperrors.Validation("Library ID is required")
	}
	return &story.Story{ID: uuid.New(), LibraryID: owner, Title: input.Title}, nil
}

func (f *fakeStoryService) Update(_ context.Context, id uuid.UUID, patch story.UpdateStoryInput, actor *user.Actor, _ *asset.File) (*story.Story, error) {
	f.updatePatch, f.updateActor = patch, actor
	if f.err != nil {
		return nil, f.err
	}
	return &story.Story{ID: id}, nil
}

func (f *fakeStoryService) Get(_ context.Context, id uuid.UUID) (*story.Story, error) {
	if st, ok := f.stories[id]; ok {
		return st, nil
	}
	return nil, apperrors.NotFound("Story not found")
}

func (f *fakeStoryService) List(_ context.Context, filter story.ListStoriesFilter) ([]*story.Story, error) {
	f.listFilter = filter
	return nil, f.err
}

func (f *fakeStoryService) ListTags(context.Context) ([]string, error) {
	return []string{"history", "kids"}, nil
}

type fakeEventService struct {
	listFilter  event.ListEventsFilter
	deleteCalls int
	deleteErr   error
}

func (f *fakeEventService) Create(_ context.Context, input event.CreateEventInput, owner uuid.UUID, _ *asset.File) (*event.Event, error) {
	return &event.Event{ID: uuid.New(), LibraryID: owner, Title: input.Title, EventDate: input.EventDate}, nil
}

func (f *fakeEventService) Update(_ context.Context, id uuid.UUID, _ event.UpdateEventInput, _ *user.Actor, _ *asset.File) (*event.Event, error) {
	return &event.Event{ID: id}, nil
}

func (f *fakeEventService) Get(context.Context, uuid.UUID) (*event.Event, error) {
	return nil, apperrors.NotFound("Event not found")
}

func (f *fakeEventService) List(_ context.Context, filter event.ListEventsFilter) ([]*event.Event, error) {
	f.listFilter = filter
	return []*event.Event{}, nil
}

func (f *fakeEventService) Delete(context.Context, uuid.UUID, *user.Actor) (bool, error) {
	f.deleteCalls++
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	return true, nil
}

type fakeMessageService struct {
	messages    map[uuid.UUID]*message.Message
	listFilter  message.ListMessagesFilter
	created     *message.CreateMessageInput
	updateCalls int
	replyCalls  int
}

func (f *fakeMessageService) Create(_ context.Context, input message.CreateMessageInput) (*message.Message, error) {
	f.created = &input
	return &message.Message{ID: uuid.New(), LibraryID: input.LibraryID, Name: input.Name, Email: input.Email, Message: input.Message}, nil
}

func (f *fakeMessageService) Get(_ context.Context, id uuid.UUID) (*message.Message, error) {
	if m, ok := f.messages[id]; ok {
		return m, nil
	}
	return nil, apperrors.NotFound("Message not found")
}

func (f *fakeMessageService) List(_ context.Context, filter message.ListMessagesFilter) ([]*message.Message, error) {
	f.listFilter = filter
	return nil, nil
}

func (f *fakeMessageService) Update(_ context.Context, id uuid.UUID, patch message.UpdateMessageInput) (*message.Message, error) {
	f.updateCalls++
	m := *f.messages[id]
	m.Apply(patch)
	return &m, nil
}

func (f *fakeMessageService) Reply(_ context.Context, id uuid.UUID, subject, body string, actor *user.Actor) (*message.Response, error) {
	f.replyCalls++
	return &message.Response{ID: uuid.New(), MessageID: id, RespondedBy: actor.ID, Subject: subject, Body: body}, nil
}

func (f *fakeMessageService) Responses(context.Context, uuid.UUID, *user.Actor) ([]*message.Response, error) {
	return nil, nil
}

type fakeDashboardService struct {
	statsLibrary uuid.UUID
}

func (f *fakeDashboardService) Stats(_ context.Context, libraryID uuid.UUID) (*service.DashboardStats, error) {
	f.statsLibrary = libraryID
	return &service.DashboardStats{TotalStories: 3}, nil
}

func (f *fakeDashboardService) Activity(context.Context, uuid.UUID) ([]service.ActivityItem, error) {
	return nil, nil
}

func (f *fakeDashboardService) Analytics(context.Context, uuid.UUID) (*service.DashboardAnalytics, error) {
	return &service.DashboardAnalytics{}, nil
}

type auditEntry struct {
	resource audit.ResourceType
	action   audit.Action
	status   audit.Status
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (f *fakeAudit) Record(_ echo.Context, rt audit.ResourceType, _ *uuid.UUID, action audit.Action, _ map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, auditEntry{rt, action, audit.StatusSuccess})
}

func (f *fakeAudit) RecordError(_ echo.Context, rt audit.ResourceType, _ *uuid.UUID, action audit.Action, status audit.Status, _ error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, auditEntry{rt, action, status})
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
