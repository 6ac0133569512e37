package service

import (
	"context"
	"testing"
	"time"

	"library-cms/internal/domain/story"
	"library-cms/internal/domain/user"
	apperrors "library-cms/pkg/errors"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoryFixture(seed ...story.Story) (*StoryService, *fakeStoryRepo, *fakeUploader) {
	repo := newFakeStoryRepo(seed...)
	up := &fakeUploader{}
	return NewStoryService(repo, up, testPolicy(), testOptions(clock.NewMock())), repo, up
}

func TestStoryCreateStartsUnapproved(t *testing.T) {
	svc, repo, up := newStoryFixture()

	created, err := svc.Create(context.Background(), story.CreateStoryInput{
		Title:       "Reading hour",
		Tags:        []string{"kids"},
		IsPublished: true,
	}, libA, testFile("cover.png", "image/png"))
	require.NoError(t, err)

	assert.False(t, created.IsApproved)
	assert.False(t, created.IsFeatured)
	assert.True(t, created.IsPublished)
	assert.Equal(t, libA, created.LibraryID)
	assert.Equal(t, "https://cdn.test/stories/cover.png", created.FeaturedImageURL)
	assert.Equal(t, 1, up.calls())

	stored, ok := repo.get(created.ID)
	require.True(t, ok)
	assert.False(t, stored.IsApproved)
}

func TestStoryCreateRequiresLibrary(t *testing.T) {
	svc, repo, up := newStoryFixture()

	_, err := svc.Create(context.Background(), story.CreateStoryInput{Title: "x"}, uuid.Nil, testFile("a.png", "image/png"))
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "Library ID is required", apperrors.Message(err))
	assert.Zero(t, up.calls())
	assert.Empty(t, repo.all())
}

func TestStoryCreateUploadFailure(t *testing.T) {
	svc, repo, up := newStoryFixture()
	up.err = errStorage

	_, err := svc.Create(context.Background(), story.CreateStoryInput{Title: "x"}, libA, testFile("a.png", "image/png"))
	require.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Equal(t, "Failed to upload image", apperrors.Message(err))
	assert.Empty(t, repo.all())
}

func TestStoryUpdateOwnership(t *testing.T) {
	existing := story.Story{ID: uuid.New(), LibraryID: libA, Title: "Old"}

	tests := []struct {
		name    string
		actor   *user.Actor
		wantErr error
		message string
	}{
		{"owner", libraryAdmin(libA), nil, ""},
		{"other library", libraryAdmin(libB), apperrors.ErrForbidden, "You can only edit stories for your library"},
		{"super admin", superAdmin(), nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newStoryFixture(existing)
			updated, err := svc.Update(context.Background(), existing.ID, story.UpdateStoryInput{Title: ptr("New")}, tt.actor, nil)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.message, apperrors.Message(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "New", updated.Title)
		})
	}
}

func TestStoryUpdateNotFoundBeforeAuthorization(t *testing.T) {
	svc, _, up := newStoryFixture()

	_, err := svc.Update(context.Background(), uuid.New(), story.UpdateStoryInput{}, libraryAdmin(libB), testFile("a.png", "image/png"))
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Story not found", apperrors.Message(err))
	assert.Zero(t, up.calls())
}

func TestStoryUpdateWorkflowFlags(t *testing.T) {
	existing := story.Story{ID: uuid.New(), LibraryID: libA, IsPublished: false}

	t.Run("library admin cannot approve or feature", func(t *testing.T) {
		svc, _, _ := newStoryFixture(existing)
		updated, err := svc.Update(context.Background(), existing.ID, story.UpdateStoryInput{
			IsApproved:  ptr(true),
			IsFeatured:  ptr(true),
			IsPublished: ptr(true),
		}, libraryAdmin(libA), nil)
		require.NoError(t, err)
		assert.False(t, updated.IsApproved)
		assert.False(t, updated.IsFeatured)
		assert.True(t, updated.IsPublished)
	})

	t.Run("super admin approves", func(t *testing.T) {
		svc, _, _ := newStoryFixture(existing)
		updated, err := svc.Update(context.Background(), existing.ID, story.UpdateStoryInput{
			IsApproved: ptr(true),
			IsFeatured: ptr(true),
		}, superAdmin(), nil)
		require.NoError(t, err)
		assert.True(t, updated.IsApproved)
		assert.True(t, updated.IsFeatured)
	})
}

func TestStoryUpdateReplacesImage(t *testing.T) {
	existing := story.Story{ID: uuid.New(), LibraryID: libA, FeaturedImageURL: "https://cdn.test/old.png"}
	svc, _, up := newStoryFixture(existing)

	updated, err := svc.Update(context.Background(), existing.ID, story.UpdateStoryInput{
		FeaturedImageURL: ptr("https://elsewhere.test/ignored.png"),
	}, libraryAdmin(libA), testFile("new.png", "image/png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/stories/new.png", updated.FeaturedImageURL)
	assert.Equal(t, 1, up.calls())
}

func TestStoryUpdateNoRowMatched(t *testing.T) {
	existing := story.Story{ID: uuid.New(), LibraryID: libA}
	svc, repo, _ := newStoryFixture(existing)
	repo.updateReturnsNil = true

	_, err := svc.Update(context.Background(), existing.ID, story.UpdateStoryInput{Title: ptr("t")}, libraryAdmin(libA), nil)
	require.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Equal(t, "Failed to update story", apperrors.Message(err))
	assert.Equal(t, 1, repo.updates)
}

func TestStoryListTagsOnlyPublicStories(t *testing.T) {
	now := time.Now()
	svc, _, _ := newStoryFixture(
		story.Story{ID: uuid.New(), LibraryID: libA, IsPublished: true, IsApproved: true, Tags: []string{"a"}, CreatedAt: now},
		story.Story{ID: uuid.New(), LibraryID: libA, IsPublished: false, IsApproved: true, Tags: []string{"b"}, CreatedAt: now},
	)

	tags, err := svc.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tags)
}
