package service

import (
	"context"

	"library-cms/internal/domain/message"
	"library-cms/internal/domain/user"
	"library-cms/internal/events"
	"library-cms/internal/policy"
	"library-cms/internal/rbac/presets"
	apperrors "library-cms/pkg/errors"
	"library-cms/pkg/mailer"

	"github.com/google/uuid"
)

// MessageService handles contact form submissions and admin replies.
type MessageService struct {
	repo      MessageRepository
	libraries LibraryGetter
	mailer    ReplyMailer
	policy    *policy.Policy
	deps
}

func NewMessageService(repo MessageRepository, libraries LibraryGetter, m ReplyMailer, pol *policy.Policy, opts Options) *MessageService {
	return &MessageService{
		repo:      repo,
		libraries: libraries,
		mailer:    m,
		policy:    pol,
		deps:      newDeps(opts),
	}
}

func (s *MessageService) List(ctx context.Context, filter message.ListMessagesFilter) ([]*message.Message, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list messages")
		return nil, apperrors.Upstream(msgFetchMessagesFail)
	}
	return list, nil
}

func (s *MessageService) Get(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("message_id", id.String()).Msg("failed to fetch message")
		return nil, apperrors.Upstream(msgFetchMessagesFail)
	}
	if m == nil {
		return nil, apperrors.NotFound(msgMessageNotFound)
	}
	return m, nil
}

// Create stores a public contact form submission as unread.
func (s *MessageService) Create(ctx context.Context, input message.CreateMessageInput) (*message.Message, error) {
	created, err := s.repo.Create(ctx, input)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create message")
		return nil, apperrors.Upstream(msgCreateMessageFail)
	}

	libraryID := ""
	if created.LibraryID != nil {
		libraryID = created.LibraryID.String()
	}
	s.log.Info().Str("message_id", created.ID.String()).Str("library_id", libraryID).Msg("contact message received")
	return created, nil
}

func (s *MessageService) Update(ctx context.Context, id uuid.UUID, patch message.UpdateMessageInput) (*message.Message, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *existing
	next.Apply(patch)
	updated, err := s.repo.Update(ctx, &next)
	if err != nil || updated == nil {
		s.log.Error().Err(err).Str("message_id", id.String()).Msg("failed to update message")
		return nil, apperrors.Upstream(msgUpdateMessageFail)
	}
	return updated, nil
}

// Reply emails the sender, records the response and marks the message read.
// Only library admins may reply, and only to messages of their own library
// when the message names one.
func (s *MessageService) Reply(ctx context.Context, id uuid.UUID, subject, body string, actor *user.Actor) (*message.Response, error) {
	if err := s.policy.Authorize(actor, presets.ResourceMessage, presets.ActionReply); err != nil {
		return nil, err
	}

	msg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.LibraryID != nil {
		target := policy.Target{Kind: presets.ResourceMessage, LibraryID: *msg.LibraryID}
		if err := s.policy.CanAct(actor, target, presets.ActionReply); err != nil {
			return nil, err
		}
	}

	reply := mailer.ReplyEmail{
		To:              msg.Email,
		RecipientName:   msg.Name,
		Subject:         subject,
		Body:            body,
		OriginalSubject: msg.Subject,
		OriginalMessage: msg.Message,
	}
	if lib, err := s.libraries.GetByID(ctx, actor.LibraryID); err != nil {
		s.log.Warn().Err(err).Str("library_id", actor.LibraryID.String()).Msg("failed to load library for reply")
	} else if lib != nil {
		reply.LibraryName = lib.Name
		reply.ReplyTo = lib.Email
	}

	if err := s.mailer.SendReply(ctx, reply); err != nil {
		s.log.Error().Err(err).Str("message_id", id.String()).Msg("failed to send reply")
		return nil, apperrors.Upstream(msgSendReplyFail)
	}

	resp, err := s.repo.CreateResponse(ctx, message.CreateResponseInput{
		MessageID:   id,
		LibraryID:   actor.LibraryID,
		RespondedBy: actor.ID,
		Subject:     subject,
		Body:        body,
	})
	if err != nil {
		s.log.Error().Err(err).Str("message_id", id.String()).Msg("reply sent but not recorded")
		return nil, apperrors.Upstream(msgRecordReplyFail)
	}

	if !msg.IsRead {
		read := *msg
		read.IsRead = true
		if _, err := s.repo.Update(ctx, &read); err != nil {
			s.log.Warn().Err(err).Str("message_id", id.String()).Msg("failed to mark message read")
		}
	}

	s.log.Info().Str("message_id", id.String()).Str("actor_id", actor.ID.String()).Msg("message replied")
	s.publish(ctx, events.TypeMessageReplied, string(presets.ResourceMessage), id, idPtr(actor.LibraryID), &actor.ID)
	return resp, nil
}

// Responses lists the replies recorded for a message, oldest first.
func (s *MessageService) Responses(ctx context.Context, id uuid.UUID, actor *user.Actor) ([]*message.Response, error) {
	if err := s.policy.Authorize(actor, presets.ResourceMessage, presets.ActionRead); err != nil {
		return nil, err
	}
	msg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.LibraryID != nil {
		target := policy.Target{Kind: presets.ResourceMessage, LibraryID: *msg.LibraryID}
		if err := s.policy.CanAct(actor, target, presets.ActionRead); err != nil {
			return nil, err
		}
	}
	list, err := s.repo.ListResponses(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("message_id", id.String()).Msg("failed to list responses")
		return nil, apperrors.Upstream(msgFetchMessagesFail)
	}
	return list, nil
}
