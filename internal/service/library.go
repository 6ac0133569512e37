package service

import (
	"context"

	"library-cms/internal/domain/asset"
	"library-cms/internal/domain/library"
	"library-cms/internal/domain/user"
	"library-cms/internal/events"
	"library-cms/internal/policy"
	"library-cms/internal/rbac/presets"
	"library-cms/internal/workflow"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
)

type LibraryService struct {
	repo     LibraryRepository
	uploader AssetUploader
	policy   *policy.Policy
	deps
}

func NewLibraryService(repo LibraryRepository, uploader AssetUploader, pol *policy.Policy, opts Options) *LibraryService {
	return &LibraryService{
		repo:     repo,
		uploader: uploader,
		policy:   pol,
		deps:     newDeps(opts),
	}
}

// LibraryTarget describes l for policy decisions. A library owns itself.
func LibraryTarget(l *library.Library) policy.Target {
	return policy.Target{
		Kind:      presets.ResourceLibrary,
		LibraryID: l.ID,
		Public:    l.IsApproved,
	}
}

// Create registers a new tenant. Callers restrict this to super admins.
func (s *LibraryService) Create(ctx context.Context, input library.CreateLibraryInput, logo, featured *asset.File) (*library.Library, error) {
	logoURL, featuredURL, err := s.uploadImages(ctx, uuid.Nil, logo, featured)
	if err != nil {
		return nil, err
	}

	state := workflow.InitialState(workflow.KindLibrary, false)
	created, err := s.repo.Create(ctx, &library.Library{
		Name:             input.Name,
		Description:      input.Description,
		Address:          input.Address,
		Email:            input.Email,
		Phone:            input.Phone,
		Website:          input.Website,
		LogoURL:          logoURL,
		FeaturedImageURL: featuredURL,
		IsApproved:       state.IsApproved,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create library")
		return nil, apperrors.Upstream(msgCreateLibraryFail)
	}

	s.log.Info().Str("library_id", created.ID.String()).Msg("library created")
	s.publish(ctx, events.TypeContentCreated, string(presets.ResourceLibrary), created.ID, &created.ID, nil)
	return created, nil
}

func (s *LibraryService) Update(ctx context.Context, id uuid.UUID, patch library.UpdateLibraryInput, actor *user.Actor, logo, featured *asset.File) (*library.Library, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanWrite(actor, LibraryTarget(existing)); err != nil {
		return nil, err
	}

	logoURL, featuredURL, err := s.uploadImages(ctx, id, logo, featured)
	if err != nil {
		return nil, err
	}

	next := *existing
	next.Apply(patch)
	if logoURL != "" {
		next.LogoURL = logoURL
	}
	if featuredURL != "" {
		next.FeaturedImageURL = featuredURL
	}
	state := workflow.ApplyUpdate(
		workflow.State{IsApproved: existing.IsApproved},
		workflow.StatePatch{IsApproved: patch.IsApproved},
		s.policy.CanApprove(actor, presets.ResourceLibrary),
	)
	next.IsApproved = state.IsApproved

	updated, err := s.repo.Update(ctx, &next)
	if err != nil || updated == nil {
		s.log.Error().Err(err).Str("library_id", id.String()).Msg("failed to update library")
		return nil, apperrors.Upstream(msgUpdateLibraryFail)
	}

	s.log.Info().Str("library_id", id.String()).Str("actor_id", actor.ID.String()).Msg("library updated")
	s.publish(ctx, events.TypeContentUpdated, string(presets.ResourceLibrary), id, &updated.ID, &actor.ID)
	return updated, nil
}

func (s *LibraryService) Get(ctx context.Context, id uuid.UUID) (*library.Library, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("library_id", id.String()).Msg("failed to fetch library")
		return nil, apperrors.Upstream(msgFetchLibrariesFail)
	}
	if l == nil {
		return nil, apperrors.NotFound(msgLibraryNotFound)
	}
	return l, nil
}

func (s *LibraryService) List(ctx context.Context, filter library.ListLibrariesFilter) ([]*library.Library, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list libraries")
		return nil, apperrors.Upstream(msgFetchLibrariesFail)
	}
	return list, nil
}

func (s *LibraryService) uploadImages(ctx context.Context, id uuid.UUID, logo, featured *asset.File) (string, string, error) {
	var logoURL, featuredURL string
	var err error
	if logo != nil {
		logoURL, err = s.uploader.Upload(ctx, logo, asset.FolderLibraryLogos)
		if err != nil {
			s.log.Error().Err(err).Str("library_id", id.String()).Msg("library logo upload failed")
			return "", "", apperrors.Upstream(msgUploadLogoFail)
		}
	}
	if featured != nil {
		featuredURL, err = s.uploader.Upload(ctx, featured, asset.FolderLibraryFeatured)
		if err != nil {
			s.log.Error().Err(err).Str("library_id", id.String()).Msg("library featured image upload failed")
			return "", "", apperrors.Upstream(msgUploadFeaturedImageFail)
		}
	}
	return logoURL, featuredURL, nil
}
