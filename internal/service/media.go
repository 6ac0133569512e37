package service

import (
	"context"
	"strings"

	"library-cms/internal/domain/asset"
	"library-cms/internal/domain/media"
	"library-cms/internal/domain/user"
	"library-cms/internal/events"
	"library-cms/internal/policy"
	"library-cms/internal/rbac/presets"
	"library-cms/internal/workflow"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
)

type MediaService struct {
	repo     MediaRepository
	uploader AssetUploader
	policy   *policy.Policy
	deps
}

func NewMediaService(repo MediaRepository, uploader AssetUploader, pol *policy.Policy, opts Options) *MediaService {
	return &MediaService{
		repo:     repo,
		uploader: uploader,
		policy:   pol,
		deps:     newDeps(opts),
	}
}

func MediaTarget(m *media.Item) policy.Target {
	return policy.Target{
		Kind:      presets.ResourceMedia,
		LibraryID: m.LibraryID,
		Public:    m.IsApproved,
	}
}

func (s *MediaService) Create(ctx context.Context, input media.CreateItemInput, ownerLibraryID uuid.UUID, file *asset.File) (*media.Item, error) {
	if ownerLibraryID == uuid.Nil {
		return nil, apperrors.Validation(msgLibraryIDRequired)
	}

	url := input.URL
	if file != nil {
		uploaded, err := s.uploader.Upload(ctx, file, asset.FolderMedia)
		if err != nil {
			s.log.Error().Err(err).Str("library_id", ownerLibraryID.String()).Msg("media upload failed")
			return nil, apperrors.Upstream(msgUploadMediaFail)
		}
		url = uploaded
	}
	if url == "" {
		return nil, apperrors.Validation(msgMediaURLRequired)
	}

	mediaType := input.MediaType
	if mediaType == "" {
		mediaType = detectMediaType(file)
	}

	state := workflow.InitialState(workflow.KindMedia, false)
	created, err := s.repo.Create(ctx, &media.Item{
		LibraryID:   ownerLibraryID,
		GalleryID:   input.GalleryID,
		Title:       input.Title,
		Description: input.Description,
		MediaType:   mediaType,
		URL:         url,
		Tags:        input.Tags,
		IsApproved:  state.IsApproved,
	})
	if err != nil {
		s.log.Error().Err(err).Str("library_id", ownerLibraryID.String()).Msg("failed to create media")
		return nil, apperrors.Upstream(msgCreateMediaFail)
	}

	s.log.Info().Str("media_id", created.ID.String()).Str("library_id", created.LibraryID.String()).Msg("media created")
	s.publish(ctx, events.TypeContentCreated, string(presets.ResourceMedia), created.ID, &created.LibraryID, nil)
	return created, nil
}

func (s *MediaService) Update(ctx context.Context, id uuid.UUID, patch media.UpdateItemInput, actor *user.Actor, file *asset.File) (*media.Item, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanWrite(actor, MediaTarget(existing)); err != nil {
		return nil, err
	}

	var url string
	if file != nil {
		url, err = s.uploader.Upload(ctx, file, asset.FolderMedia)
		if err != nil {
			s.log.Error().Err(err).Str("media_id", id.String()).Msg("media upload failed")
			return nil, apperrors.Upstream(msgUploadMediaFail)
		}
	}

	next := *existing
	next.Apply(patch)
	if url != "" {
		next.URL = url
	}
	state := workflow.ApplyUpdate(
		workflow.State{IsApproved: existing.IsApproved},
		workflow.StatePatch{IsApproved: patch.IsApproved},
		s.policy.CanApprove(actor, presets.ResourceMedia),
	)
	next.IsApproved = state.IsApproved

	updated, err := s.repo.Update(ctx, &next)
	if err != nil || updated == nil {
		s.log.Error().Err(err).Str("media_id", id.String()).Msg("failed to update media")
		return nil, apperrors.Upstream(msgUpdateMediaFail)
	}

	s.log.Info().Str("media_id", id.String()).Str("actor_id", actor.ID.String()).Msg("media updated")
	s.publish(ctx, events.TypeContentUpdated, string(presets.ResourceMedia), id, &updated.LibraryID, &actor.ID)
	return updated, nil
}

func (s *MediaService) Get(ctx context.Context, id uuid.UUID) (*media.Item, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("media_id", id.String()).Msg("failed to fetch media")
		return nil, apperrors.Upstream(msgFetchMediaFail)
	}
	if m == nil {
		return nil, apperrors.NotFound(msgMediaNotFound)
	}
	return m, nil
}

func (s *MediaService) List(ctx context.Context, filter media.ListItemsFilter) ([]*media.Item, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list media")
		return nil, apperrors.Upstream(msgFetchMediaFail)
	}
	return items, nil
}

// ListTags returns the tags of every media item, approved or not.
func (s *MediaService) ListTags(ctx context.Context) ([]string, error) {
	items, err := s.List(ctx, media.ListItemsFilter{})
	if err != nil {
		return nil, err
	}
	sets := make([][]string, 0, len(items))
	for _, m := range items {
		sets = append(sets, m.Tags)
	}
	return mergeTags(sets...), nil
}

func detectMediaType(file *asset.File) media.Type {
	if file == nil {
		return media.TypeImage
	}
	switch {
	case strings.HasPrefix(file.ContentType, "video/"):
		return media.TypeVideo
	case strings.HasPrefix(file.ContentType, "audio/"):
		return media.TypeAudio
	default:
		return media.TypeImage
	}
}
