package service

import (
	"context"

	"library-cms/internal/domain/asset"
	"library-cms/internal/domain/event"
	"library-cms/internal/domain/user"
	"library-cms/internal/events"
	"library-cms/internal/policy"
	"library-cms/internal/rbac/presets"
	"library-cms/internal/workflow"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
)

type EventService struct {
	repo     EventRepository
	uploader AssetUploader
	policy   *policy.Policy
	deps
}

func NewEventService(repo EventRepository, uploader AssetUploader, pol *policy.Policy, opts Options) *EventService {
	return &EventService{
		repo:     repo,
		uploader: uploader,
		policy:   pol,
		deps:     newDeps(opts),
	}
}

func EventTarget(e *event.Event) policy.Target {
	return policy.Target{
		Kind:      presets.ResourceEvent,
		LibraryID: e.LibraryID,
		Public:    e.IsApproved && e.IsPublished,
	}
}

// Create stores a new event. isPublished is taken from input as given.
func (s *EventService) Create(ctx context.Context, input event.CreateEventInput, ownerLibraryID uuid.UUID, file *asset.File) (*event.Event, error) {
	if ownerLibraryID == uuid.Nil {
		return nil, apperrors.Validation(msgLibraryIDRequired)
	}

	imageURL := input.ImageURL
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, asset.FolderEvents)
		if err != nil {
			s.log.Error().Err(err).Str("library_id", ownerLibraryID.String()).Msg("event image upload failed")
			return nil, apperrors.Upstream(msgUploadImageFail)
		}
		imageURL = url
	}

	state := workflow.InitialState(workflow.KindEvent, input.IsPublished)
	created, err := s.repo.Create(ctx, &event.Event{
		LibraryID:   ownerLibraryID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		EventDate:   input.EventDate,
		ImageURL:    imageURL,
		IsApproved:  state.IsApproved,
		IsPublished: state.IsPublished,
	})
	if err != nil {
		s.log.Error().Err(err).Str("library_id", ownerLibraryID.String()).Msg("failed to create event")
		return nil, apperrors.Upstream(msgCreateEventFail)
	}

	s.log.Info().Str("event_id", created.ID.String()).Str("library_id", created.LibraryID.String()).Msg("event created")
	s.publish(ctx, events.TypeContentCreated, string(presets.ResourceEvent), created.ID, &created.LibraryID, nil)
	return created, nil
}

func (s *EventService) Update(ctx context.Context, id uuid.UUID, patch event.UpdateEventInput, actor *user.Actor, file *asset.File) (*event.Event, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanWrite(actor, EventTarget(existing)); err != nil {
		return nil, err
	}

	var imageURL string
	if file != nil {
		imageURL, err = s.uploader.Upload(ctx, file, asset.FolderEvents)
		if err != nil {
			s.log.Error().Err(err).Str("event_id", id.String()).Msg("event image upload failed")
			return nil, apperrors.Upstream(msgUploadImageFail)
		}
	}

	next := *existing
	next.Apply(patch)
	if imageURL != "" {
		next.ImageURL = imageURL
	}
	state := workflow.ApplyUpdate(
		workflow.State{IsApproved: existing.IsApproved, IsPublished: existing.IsPublished},
		workflow.StatePatch{IsApproved: patch.IsApproved, IsPublished: patch.IsPublished},
		s.policy.CanApprove(actor, presets.ResourceEvent),
	)
	next.IsApproved, next.IsPublished = state.IsApproved, state.IsPublished

	updated, err := s.repo.Update(ctx, &next)
	if err != nil || updated == nil {
		s.log.Error().Err(err).Str("event_id", id.String()).Msg("failed to update event")
		return nil, apperrors.Upstream(msgUpdateEventFail)
	}

	s.log.Info().Str("event_id", id.String()).Str("actor_id", actor.ID.String()).Msg("event updated")
	s.publish(ctx, events.TypeContentUpdated, string(presets.ResourceEvent), id, &updated.LibraryID, &actor.ID)
	return updated, nil
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("event_id", id.String()).Msg("failed to fetch event")
		return nil, apperrors.Upstream(msgFetchEventsFail)
	}
	if e == nil {
		return nil, apperrors.NotFound(msgEventNotFound)
	}
	return e, nil
}

func (s *EventService) List(ctx context.Context, filter event.ListEventsFilter) ([]*event.Event, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events")
		return nil, apperrors.Upstream(msgFetchEventsFail)
	}
	return list, nil
}

// Delete hard-deletes an event. It never returns false: a missing row is a NotFound error.
func (s *EventService) Delete(ctx context.Context, id uuid.UUID, actor *user.Actor) (bool, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.policy.CanAct(actor, EventTarget(existing), presets.ActionDelete); err != nil {
		return false, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("event_id", id.String()).Msg("failed to delete event")
		return false, apperrors.Upstream(msgDeleteEventFail)
	}
	if !deleted {
		return false, apperrors.NotFound(msgEventNotFound)
	}

	s.log.Info().Str("event_id", id.String()).Str("actor_id", actor.ID.String()).Msg("event deleted")
	s.publish(ctx, events.TypeContentDeleted, string(presets.ResourceEvent), id, &existing.LibraryID, &actor.ID)
	return true, nil
}
