package service

import (
	"context"

	"library-cms/internal/domain/asset"
	"library-cms/internal/domain/story"
	"library-cms/internal/domain/user"
	"library-cms/internal/events"
	"library-cms/internal/policy"
	"library-cms/internal/rbac/presets"
	"library-cms/internal/workflow"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
)

type StoryService struct {
	repo     StoryRepository
	uploader AssetUploader
	policy   *policy.Policy
	deps
}

func NewStoryService(repo StoryRepository, uploader AssetUploader, pol *policy.Policy, opts Options) *StoryService {
	return &StoryService{
		repo:     repo,
		uploader: uploader,
		policy:   pol,
		deps:     newDeps(opts),
	}
}

// StoryTarget describes s for policy decisions.
func StoryTarget(s *story.Story) policy.Target {
	return policy.Target{
		Kind:      presets.ResourceStory,
		LibraryID: s.LibraryID,
		Public:    s.IsApproved && s.IsPublished,
	}
}

func (s *StoryService) Create(ctx context.Context, input story.CreateStoryInput, ownerLibraryID uuid.UUID, file *asset.File) (*story.Story, error) {
	if ownerLibraryID == uuid.Nil {
		return nil, apperrors.Validation(msgLibraryIDRequired)
	}

	imageURL := input.FeaturedImageURL
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, asset.FolderStories)
		if err != nil {
			s.log.Error().Err(err).Str("library_id", ownerLibraryID.String()).Msg("story image upload failed")
			return nil, apperrors.Upstream(msgUploadImageFail)
		}
		imageURL = url
	}

	state := workflow.InitialState(workflow.KindStory, input.IsPublished)
	created, err := s.repo.Create(ctx, &story.Story{
		LibraryID:        ownerLibraryID,
		Title:            input.Title,
		Content:          input.Content,
		Excerpt:          input.Excerpt,
		Tags:             input.Tags,
		FeaturedImageURL: imageURL,
		IsApproved:       state.IsApproved,
		IsPublished:      state.IsPublished,
		IsFeatured:       state.IsFeatured,
	})
	if err != nil {
		s.log.Error().Err(err).Str("library_id", ownerLibraryID.String()).Msg("failed to create story")
		return nil, apperrors.Upstream(msgCreateStoryFail)
	}

	s.log.Info().Str("story_id", created.ID.String()).Str("library_id", created.LibraryID.String()).Msg("story created")
	s.publish(ctx, events.TypeContentCreated, string(presets.ResourceStory), created.ID, &created.LibraryID, nil)
	return created, nil
}

func (s *StoryService) Update(ctx context.Context, id uuid.UUID, patch story.UpdateStoryInput, actor *user.Actor, file *asset.File) (*story.Story, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanWrite(actor, StoryTarget(existing)); err != nil {
		return nil, err
	}

	var imageURL string
	if file != nil {
		imageURL, err = s.uploader.Upload(ctx, file, asset.FolderStories)
		if err != nil {
			s.log.Error().Err(err).Str("story_id", id.String()).Msg("story image upload failed")
			return nil, apperrors.Upstream(msgUploadImageFail)
		}
	}

	next := *existing
	next.Apply(patch)
	if imageURL != "" {
		next.FeaturedImageURL = imageURL
	}
	state := workflow.ApplyUpdate(
		workflow.State{IsApproved: existing.IsApproved, IsPublished: existing.IsPublished, IsFeatured: existing.IsFeatured},
		workflow.StatePatch{IsApproved: patch.IsApproved, IsPublished: patch.IsPublished, IsFeatured: patch.IsFeatured},
		s.policy.CanApprove(actor, presets.ResourceStory),
	)
	next.IsApproved, next.IsPublished, next.IsFeatured = state.IsApproved, state.IsPublished, state.IsFeatured

	updated, err := s.repo.Update(ctx, &next)
	if err != nil || updated == nil {
		s.log.Error().Err(err).Str("story_id", id.String()).Msg("failed to update story")
		return nil, apperrors.Upstream(msgUpdateStoryFail)
	}

	s.log.Info().Str("story_id", id.String()).Str("actor_id", actor.ID.String()).Msg("story updated")
	s.publish(ctx, events.TypeContentUpdated, string(presets.ResourceStory), id, &updated.LibraryID, &actor.ID)
	return updated, nil
}

func (s *StoryService) Get(ctx context.Context, id uuid.UUID) (*story.Story, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("story_id", id.String()).Msg("failed to fetch story")
		return nil, apperrors.Upstream(msgFetchStoriesFail)
	}
	if st == nil {
		return nil, apperrors.NotFound(msgStoryNotFound)
	}
	return st, nil
}

func (s *StoryService) List(ctx context.Context, filter story.ListStoriesFilter) ([]*story.Story, error) {
	stories, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list stories")
		return nil, apperrors.Upstream(msgFetchStoriesFail)
	}
	return stories, nil
}

// ListTags returns the tags of published, approved stories only.
func (s *StoryService) ListTags(ctx context.Context) ([]string, error) {
	stories, err := s.List(ctx, story.ListStoriesFilter{Published: ptr(true), Approved: ptr(true)})
	if err != nil {
		return nil, err
	}
	sets := make([][]string, 0, len(stories))
	for _, st := range stories {
		sets = append(sets, st.Tags)
	}
	return mergeTags(sets...), nil
}
