package service

import (
	"context"
	"testing"

	"library-cms/internal/domain/analytics"
	apperrors "library-cms/pkg/errors"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsTrack(t *testing.T) {
	tests := []struct {
		name     string
		input    analytics.CreateEventInput
		wantType analytics.EventType
		wantErr  error
	}{
		{"defaults to view", analytics.CreateEventInput{LibraryID: libA, ContentType: " story "}, analytics.EventTypeView, nil},
		{"share", analytics.CreateEventInput{LibraryID: libA, EventType: analytics.EventTypeShare}, analytics.EventTypeShare, nil},
		{"unknown type", analytics.CreateEventInput{LibraryID: libA, EventType: "scroll"}, "", apperrors.ErrValidation},
		{"missing library", analytics.CreateEventInput{LibraryID: uuid.Nil}, "", apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAnalyticsRepo{}
			svc := NewAnalyticsService(repo, testOptions(clock.NewMock()))

			e, err := svc.Track(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, e.EventType)
			assert.Len(t, repo.events, 1)
		})
	}
}

func TestAnalyticsTrackTrimsContentType(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewAnalyticsService(repo, testOptions(clock.NewMock()))

	e, err := svc.Track(context.Background(), analytics.CreateEventInput{LibraryID: libA, ContentType: " story ", VisitorID: " v1 "})
	require.NoError(t, err)
	assert.Equal(t, "story", e.ContentType)
	assert.Equal(t, "v1", e.VisitorID)
}
