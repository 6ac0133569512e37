package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"library-cms/internal/domain/analytics"
	"library-cms/internal/domain/asset"
	"library-cms/internal/domain/event"
	"library-cms/internal/domain/library"
	"library-cms/internal/domain/maintenance"
	"library-cms/internal/domain/media"
	"library-cms/internal/domain/message"
	"library-cms/internal/domain/story"
	"library-cms/internal/domain/user"
	"library-cms/internal/policy"
	"library-cms/pkg/mailer"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var errStorage = errors.New("storage unavailable")

var (
	libA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	libB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func testOptions(clk clock.Clock) Options {
	return Options{Logger: zerolog.Nop(), Clock: clk}
}

func libraryAdmin(lib uuid.UUID) *user.Actor {
	return &user.Actor{ID: uuid.New(), Role: user.RoleLibraryAdmin, LibraryID: lib}
}

func superAdmin() *user.Actor {
	return &user.Actor{ID: uuid.New(), Role: user.RoleSuperAdmin}
}

func testPolicy() *policy.Policy {
	return policy.Default()
}

func testFile(name, contentType string) *asset.File {
	return &asset.File{Name: name, ContentType: contentType, Data: []byte("bytes")}
}

type fakeUploader struct {
	mu      sync.Mutex
	folders []string
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, f *asset.File, folder string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.folders = append(u.folders, folder)
	if u.err != nil {
		return "", u.err
	}
	return "https://cdn.test/" + folder + "/" + f.Name, nil
}

func (u *fakeUploader) calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.folders)
}

// memStore is an ordered in-memory table shared by the fake repositories.
type memStore[T any] struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]T
	order []uuid.UUID
}

func newMemStore[T any]() *memStore[T] {
	return &memStore[T]{rows: make(map[uuid.UUID]T)}
}

func (s *memStore[T]) get(id uuid.UUID) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.rows[id]
	return v, ok
}

func (s *memStore[T]) put(id uuid.UUID, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		s.order = append(s.order, id)
	}
	s.rows[id] = v
}

func (s *memStore[T]) remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return false
	}
	delete(s.rows, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *memStore[T]) all() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rows[id])
	}
	return out
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func matchBool(want *bool, got bool) bool {
	return want == nil || *want == got
}

func matchID(want *uuid.UUID, got uuid.UUID) bool {
	return want == nil || *want == got
}

type fakeStoryRepo struct {
	*memStore[story.Story]
	updateReturnsNil bool
	updates          int
}

func newFakeStoryRepo(seed ...story.Story) *fakeStoryRepo {
	r := &fakeStoryRepo{memStore: newMemStore[story.Story]()}
	for _, s := range seed {
		r.put(s.ID, s)
	}
	return r
}

func (r *fakeStoryRepo) GetByID(_ context.Context, id uuid.UUID) (*story.Story, error) {
	s, ok := r.get(id)
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeStoryRepo) List(_ context.Context, f story.ListStoriesFilter) ([]*story.Story, error) {
	var out []*story.Story
	for _, s := range r.all() {
		s := s
		if matchID(f.LibraryID, s.LibraryID) && matchBool(f.Approved, s.IsApproved) &&
			matchBool(f.Published, s.IsPublished) && matchBool(f.Featured, s.IsFeatured) {
			out = append(out, &s)
		}
	}
	return limit(out, f.Limit), nil
}

func (r *fakeStoryRepo) Create(_ context.Context, s *story.Story) (*story.Story, error) {
	rec := *s
	rec.ID = uuid.New()
	r.put(rec.ID, rec)
	return &rec, nil
}

func (r *fakeStoryRepo) Update(_ context.Context, s *story.Story) (*story.Story, error) {
	r.updates++
	if r.updateReturnsNil {
		return nil, nil
	}
	if _, ok := r.get(s.ID); !ok {
		return nil, nil
	}
	rec := *s
	r.put(rec.ID, rec)
	return &rec, nil
}

type fakeEventRepo struct {
	*memStore[event.Event]
	deleted          []uuid.UUID
	updateReturnsNil bool
}

func newFakeEventRepo(seed ...event.Event) *fakeEventRepo {
	r := &fakeEventRepo{memStore: newMemStore[event.Event]()}
	for _, e := range seed {
		r.put(e.ID, e)
	}
	return r
}

func (r *fakeEventRepo) GetByID(_ context.Context, id uuid.UUID) (*event.Event, error) {
	e, ok := r.get(id)
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeEventRepo) List(_ context.Context, f event.ListEventsFilter) ([]*event.Event, error) {
	var out []*event.Event
	for _, e := range r.all() {
		e := e
		if matchID(f.LibraryID, e.LibraryID) && matchBool(f.Approved, e.IsApproved) && matchBool(f.Published, e.IsPublished) {
			out = append(out, &e)
		}
	}
	return limit(out, f.Limit), nil
}

func (r *fakeEventRepo) Create(_ context.Context, e *event.Event) (*event.Event, error) {
	rec := *e
	rec.ID = uuid.New()
	r.put(rec.ID, rec)
	return &rec, nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *event.Event) (*event.Event, error) {
	if _, ok := r.get(e.ID); !ok || r.updateReturnsNil {
		return nil, nil
	}
	rec := *e
	r.put(rec.ID, rec)
	return &rec, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.deleted = append(r.deleted, id)
	return r.remove(id), nil
}

type fakeMediaRepo struct {
	*memStore[media.Item]
	err              error
	updateReturnsNil bool
}

func newFakeMediaRepo(seed ...media.Item) *fakeMediaRepo {
	r := &fakeMediaRepo{memStore: newMemStore[media.Item]()}
	for _, m := range seed {
		r.put(m.ID, m)
	}
	return r
}

func (r *fakeMediaRepo) GetByID(_ context.Context, id uuid.UUID) (*media.Item, error) {
	m, ok := r.get(id)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *fakeMediaRepo) List(_ context.Context, f media.ListItemsFilter) ([]*media.Item, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*media.Item
	for _, m := range r.all() {
		m := m
		if matchID(f.LibraryID, m.LibraryID) && matchBool(f.Approved, m.IsApproved) {
			out = append(out, &m)
		}
	}
	return limit(out, f.Limit), nil
}

func (r *fakeMediaRepo) Create(_ context.Context, m *media.Item) (*media.Item, error) {
	rec := *m
	rec.ID = uuid.New()
	r.put(rec.ID, rec)
	return &rec, nil
}

func (r *fakeMediaRepo) Update(_ context.Context, m *media.Item) (*media.Item, error) {
	if _, ok := r.get(m.ID); !ok || r.updateReturnsNil {
		return nil, nil
	}
	rec := *m
	r.put(rec.ID, rec)
	return &rec, nil
}

type fakeLibraryRepo struct {
	*memStore[library.Library]
	updateReturnsNil bool
}

func newFakeLibraryRepo(seed ...library.Library) *fakeLibraryRepo {
	r := &fakeLibraryRepo{memStore: newMemStore[library.Library]()}
	for _, l := range seed {
		r.put(l.ID, l)
	}
	return r
}

func (r *fakeLibraryRepo) GetByID(_ context.Context, id uuid.UUID) (*library.Library, error) {
	l, ok := r.get(id)
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *fakeLibraryRepo) List(_ context.Context, f library.ListLibrariesFilter) ([]*library.Library, error) {
	var out []*library.Library
	for _, l := range r.all() {
		l := l
		if matchBool(f.Approved, l.IsApproved) {
			out = append(out, &l)
		}
	}
	return limit(out, f.Limit), nil
}

func (r *fakeLibraryRepo) Create(_ context.Context, l *library.Library) (*library.Library, error) {
	rec := *l
	rec.ID = uuid.New()
	r.put(rec.ID, rec)
	return &rec, nil
}

func (r *fakeLibraryRepo) Update(_ context.Context, l *library.Library) (*library.Library, error) {
	if _, ok := r.get(l.ID); !ok || r.updateReturnsNil {
		return nil, nil
	}
	rec := *l
	r.put(rec.ID, rec)
	return &rec, nil
}

type fakeMessageRepo struct {
	*memStore[message.Message]
	responses []*message.Response
}

func newFakeMessageRepo(seed ...message.Message) *fakeMessageRepo {
	r := &fakeMessageRepo{memStore: newMemStore[message.Message]()}
	for _, m := range seed {
		r.put(m.ID, m)
	}
	return r
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id uuid.UUID) (*message.Message, error) {
	m, ok := r.get(id)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *fakeMessageRepo) List(_ context.Context, f message.ListMessagesFilter) ([]*message.Message, error) {
	var out []*message.Message
	for _, m := range r.all() {
		m := m
		if f.LibraryID != nil && (m.LibraryID == nil || *m.LibraryID != *f.LibraryID) {
			continue
		}
		if f.Unread && m.IsRead {
			continue
		}
		out = append(out, &m)
	}
	return limit(out, f.Limit), nil
}

func (r *fakeMessageRepo) Create(_ context.Context, in message.CreateMessageInput) (*message.Message, error) {
	now := time.Now()
	rec := message.Message{
		ID:        uuid.New(),
		LibraryID: in.LibraryID,
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: &now,
	}
	r.put(rec.ID, rec)
	return &rec, nil
}

func (r *fakeMessageRepo) Update(_ context.Context, m *message.Message) (*message.Message, error) {
	if _, ok := r.get(m.ID); !ok {
		return nil, nil
	}
	rec := *m
	r.put(rec.ID, rec)
	return &rec, nil
}

func (r *fakeMessageRepo) CreateResponse(_ context.Context, in message.CreateResponseInput) (*message.Response, error) {
	resp := &message.Response{
		ID:          uuid.New(),
		MessageID:   in.MessageID,
		LibraryID:   in.LibraryID,
		RespondedBy: in.RespondedBy,
		Subject:     in.Subject,
		Body:        in.Body,
		CreatedAt:   time.Now(),
	}
	r.responses = append(r.responses, resp)
	return resp, nil
}

func (r *fakeMessageRepo) ListResponses(_ context.Context, messageID uuid.UUID) ([]*message.Response, error) {
	var out []*message.Response
	for _, resp := range r.responses {
		if resp.MessageID == messageID {
			out = append(out, resp)
		}
	}
	return out, nil
}

type fakeAnalyticsRepo struct {
	mu     sync.Mutex
	events []*analytics.Event
	since  time.Time
}

func (r *fakeAnalyticsRepo) Create(_ context.Context, in analytics.CreateEventInput) (*analytics.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := &analytics.Event{
		ID:          uuid.New(),
		LibraryID:   in.LibraryID,
		EventType:   in.EventType,
		ContentType: in.ContentType,
		ContentID:   in.ContentID,
		VisitorID:   in.VisitorID,
		CreatedAt:   time.Now(),
	}
	r.events = append(r.events, e)
	return e, nil
}

func (r *fakeAnalyticsRepo) List(_ context.Context, f analytics.ListEventsFilter) ([]*analytics.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.since = f.Since
	var out []*analytics.Event
	for _, e := range r.events {
		if e.LibraryID == f.LibraryID && !e.CreatedAt.Before(f.Since) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeMailer struct {
	sent []mailer.ReplyEmail
	err  error
}

func (m *fakeMailer) SendReply(_ context.Context, r mailer.ReplyEmail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, r)
	return nil
}

type fakeMaintenanceStore struct {
	state maintenance.State
	err   error
}

func (s *fakeMaintenanceStore) Get(context.Context) (maintenance.State, error) {
	return s.state, s.err
}

func (s *fakeMaintenanceStore) Set(_ context.Context, state maintenance.State) error {
	if s.err != nil {
		return s.err
	}
	s.state = state
	return nil
}

type fakeBackupSource struct {
	tables map[string][]json.RawMessage
	err    error
}

func (s *fakeBackupSource) Tables() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	return names
}

func (s *fakeBackupSource) ExportTable(_ context.Context, table string) ([]json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tables[table], nil
}

type fakeObjectWriter struct {
	key         string
	contentType string
	data        []byte
	err         error
}

func (w *fakeObjectWriter) PutObject(_ context.Context, key, contentType string, data []byte) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	w.key, w.contentType, w.data = key, contentType, data
	return "https://cdn.test/" + key, nil
}
