package service

import (
	"context"
	"strings"

	"library-cms/internal/domain/analytics"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
)

const msgInvalidEventType = "Event type must be one of view, click, share"

// AnalyticsService records anonymous interaction events from the public site.
type AnalyticsService struct {
	repo AnalyticsRepository
	deps
}

func NewAnalyticsService(repo AnalyticsRepository, opts Options) *AnalyticsService {
	return &AnalyticsService{repo: repo, deps: newDeps(opts)}
}

func (s *AnalyticsService) Track(ctx context.Context, input analytics.CreateEventInput) (*analytics.Event, error) {
	if input.LibraryID == uuid.Nil {
		return nil, apperrors.Validation(msgLibraryIDRequired)
	}
	switch input.EventType {
	case analytics.EventTypeView, analytics.EventTypeClick, analytics.EventTypeShare:
	case "":
		input.EventType = analytics.EventTypeView
	default:
		return nil, apperrors.Validation(msgInvalidEventType)
	}
	input.ContentType = strings.TrimSpace(input.ContentType)
	input.VisitorID = strings.TrimSpace(input.VisitorID)

	e, err := s.repo.Create(ctx, input)
	if err != nil {
		s.log.Error().Err(err).Str("library_id", input.LibraryID.String()).Msg("failed to record analytics event")
		return nil, apperrors.Upstream(msgTrackEventFail)
	}
	return e, nil
}
