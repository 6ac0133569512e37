package service

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"library-cms/internal/domain/analytics"
	"library-cms/internal/domain/event"
	"library-cms/internal/domain/media"
	"library-cms/internal/domain/message"
	"library-cms/internal/domain/story"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	activityPerKind    = 5
	activityLimit      = 10
	analyticsWindow    = 30 * 24 * time.Hour
	topContentLimit    = 5
	analyticsDayFormat = "2006-01-02"

	ActivityTypeStory   = "story"
	ActivityTypeMessage = "message"
	ActivityTypeEvent   = "event"
)

type DashboardStats struct {
	TotalStories     int `json:"totalStories"`
	PublishedStories int `json:"publishedStories"`
	TotalMedia       int `json:"totalMedia"`
	ApprovedMedia    int `json:"approvedMedia"`
	TotalEvents      int `json:"totalEvents"`
	UpcomingEvents   int `json:"upcomingEvents"`
	TotalMessages    int `json:"totalMessages"`
	UnreadMessages   int `json:"unreadMessages"`
}

type ActivityItem struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	Timestamp *time.Time `json:"timestamp"`
}

type DayViews struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

type ContentViews struct {
	ContentType string     `json:"contentType"`
	ContentID   *uuid.UUID `json:"contentId,omitempty"`
	Views       int        `json:"views"`
}

type DashboardAnalytics struct {
	TotalViews      int            `json:"totalViews"`
	UniqueVisitors  int            `json:"uniqueVisitors"`
	ViewsByDay      []DayViews     `json:"viewsByDay"`
	TopContent      []ContentViews `json:"topContent"`
	AvgTimeSpent    float64        `json:"avgTimeSpent"`
	InteractionRate float64        `json:"interactionRate"`
}

// DemoMetrics fills analytics fields that have no backing data yet.
type DemoMetrics interface {
	AvgTimeSpent() float64
	InteractionRate() float64
}

// RandomDemoMetrics produces plausible placeholder values. It is safe for
// concurrent use.
type RandomDemoMetrics struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomDemoMetrics(seed int64) *RandomDemoMetrics {
	return &RandomDemoMetrics{rnd: rand.New(rand.NewSource(seed))}
}

// AvgTimeSpent returns seconds in [60, 300].
func (m *RandomDemoMetrics) AvgTimeSpent() float64 {
	return math.Round(60 + m.next()*240)
}

// InteractionRate returns a percentage in [0, 100] with one decimal.
func (m *RandomDemoMetrics) InteractionRate() float64 {
	return math.Round(m.next()*1000) / 10
}

func (m *RandomDemoMetrics) next() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rnd.Float64()
}

// DashboardService derives read-only summaries for one library.
type DashboardService struct {
	stories   StoryRepository
	media     MediaRepository
	events    EventRepository
	messages  MessageRepository
	analytics AnalyticsRepository
	demo      DemoMetrics
	deps
}

func NewDashboardService(
	stories StoryRepository,
	mediaRepo MediaRepository,
	eventsRepo EventRepository,
	messages MessageRepository,
	analyticsRepo AnalyticsRepository,
	demo DemoMetrics,
	opts Options,
) *DashboardService {
	d := newDeps(opts)
	if demo == nil {
		demo = NewRandomDemoMetrics(d.clock.Now().UnixNano())
	}
	return &DashboardService{
		stories:   stories,
		media:     mediaRepo,
		events:    eventsRepo,
		messages:  messages,
		analytics: analyticsRepo,
		demo:      demo,
		deps:      d,
	}
}

type dashboardLists struct {
	stories  []*story.Story
	media    []*media.Item
	events   []*event.Event
	messages []*message.Message
}

// fetch reads the four collections of a library concurrently. limit 0 means all rows.
func (s *DashboardService) fetch(ctx context.Context, libraryID uuid.UUID, limit int, withMedia bool) (*dashboardLists, error) {
	var out dashboardLists
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		out.stories, err = s.stories.List(ctx, story.ListStoriesFilter{LibraryID: &libraryID, Limit: limit})
		return err
	})
	if withMedia {
		g.Go(func() error {
			var err error
			out.media, err = s.media.List(ctx, media.ListItemsFilter{LibraryID: &libraryID, Limit: limit})
			return err
		})
	}
	g.Go(func() error {
		var err error
		out.events, err = s.events.List(ctx, event.ListEventsFilter{LibraryID: &libraryID, Limit: limit})
		return err
	})
	g.Go(func() error {
		var err error
		out.messages, err = s.messages.List(ctx, message.ListMessagesFilter{LibraryID: &libraryID, Limit: limit})
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("library_id", libraryID.String()).Msg("failed to load dashboard data")
		return nil, apperrors.Upstream(msgFetchAnalyticsFail)
	}
	return &out, nil
}

func (s *DashboardService) Stats(ctx context.Context, libraryID uuid.UUID) (*DashboardStats, error) {
	lists, err := s.fetch(ctx, libraryID, 0, true)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	stats := &DashboardStats{
		TotalStories:  len(lists.stories),
		TotalMedia:    len(lists.media),
		TotalEvents:   len(lists.events),
		TotalMessages: len(lists.messages),
	}
	for _, st := range lists.stories {
		if st.IsPublished {
			stats.PublishedStories++
		}
	}
	for _, m := range lists.media {
		if m.IsApproved {
			stats.ApprovedMedia++
		}
	}
	for _, e := range lists.events {
		if e.IsUpcoming(now) {
			stats.UpcomingEvents++
		}
	}
	for _, m := range lists.messages {
		if !m.IsRead {
			stats.UnreadMessages++
		}
	}
	return stats, nil
}

// Activity merges the latest stories, messages and events, newest first.
// Items with equal timestamps keep merge order; missing timestamps sort as the epoch.
func (s *DashboardService) Activity(ctx context.Context, libraryID uuid.UUID) ([]ActivityItem, error) {
	lists, err := s.fetch(ctx, libraryID, activityPerKind, false)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	items := make([]ActivityItem, 0, 3*activityPerKind)
	for _, st := range head(lists.stories, activityPerKind) {
		status := "draft"
		if st.IsPublished {
			status = "published"
		}
		var ts *time.Time
		if !st.CreatedAt.IsZero() {
			ts = ptr(st.CreatedAt)
		}
		items = append(items, ActivityItem{ID: st.ID, Type: ActivityTypeStory, Title: st.Title, Status: status, Timestamp: ts})
	}
	for _, m := range head(lists.messages, activityPerKind) {
		status := "unread"
		if m.IsRead {
			status = "read"
		}
		items = append(items, ActivityItem{ID: m.ID, Type: ActivityTypeMessage, Title: m.Subject, Status: status, Timestamp: m.CreatedAt})
	}
	for _, e := range head(lists.events, activityPerKind) {
		status := "past"
		if e.IsUpcoming(now) {
			status = "upcoming"
		}
		items = append(items, ActivityItem{ID: e.ID, Type: ActivityTypeEvent, Title: e.Title, Status: status, Timestamp: e.CreatedAt})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return epochMillis(items[i].Timestamp) > epochMillis(items[j].Timestamp)
	})
	return head(items, activityLimit), nil
}

// Analytics aggregates the last 30 days of analytics events.
func (s *DashboardService) Analytics(ctx context.Context, libraryID uuid.UUID) (*DashboardAnalytics, error) {
	since := s.clock.Now().Add(-analyticsWindow)
	list, err := s.analytics.List(ctx, analytics.ListEventsFilter{LibraryID: libraryID, Since: since})
	if err != nil {
		s.log.Error().Err(err).Str("library_id", libraryID.String()).Msg("failed to list analytics events")
		return nil, apperrors.Upstream(msgFetchAnalyticsFail)
	}

	visitors := make(map[string]struct{})
	byDay := make(map[string]int)
	byContent := make(map[string]*ContentViews)
	var contentOrder []string
	result := &DashboardAnalytics{}

	for _, e := range list {
		if e.VisitorID != "" {
			visitors[e.VisitorID] = struct{}{}
		}
		if e.EventType != analytics.EventTypeView {
			continue
		}
		result.TotalViews++
		byDay[e.CreatedAt.UTC().Format(analyticsDayFormat)]++

		key := e.ContentType
		if e.ContentID != nil {
			key += ":" + e.ContentID.String()
		}
		cv, ok := byContent[key]
		if !ok {
			cv = &ContentViews{ContentType: e.ContentType, ContentID: e.ContentID}
			byContent[key] = cv
			contentOrder = append(contentOrder, key)
		}
		cv.Views++
	}
	result.UniqueVisitors = len(visitors)

	result.ViewsByDay = make([]DayViews, 0, len(byDay))
	for day, views := range byDay {
		result.ViewsByDay = append(result.ViewsByDay, DayViews{Date: day, Views: views})
	}
	sort.Slice(result.ViewsByDay, func(i, j int) bool {
		return result.ViewsByDay[i].Date < result.ViewsByDay[j].Date
	})

	sort.Strings(contentOrder)
	top := make([]ContentViews, 0, len(contentOrder))
	for _, key := range contentOrder {
		top = append(top, *byContent[key])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Views > top[j].Views
	})
	result.TopContent = head(top, topContentLimit)

	result.AvgTimeSpent = s.demo.AvgTimeSpent()
	result.InteractionRate = s.demo.InteractionRate()
	return result, nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func epochMillis(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}
