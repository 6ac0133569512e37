package postgres

import (
	"context"

	"library-cms/internal/domain/message"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	messageColumns = []string{
		"id", "library_id", "name", "email", "subject", "message", "is_read", "created_at", "updated_at",
	}
	responseColumns = []string{
		"id", "message_id", "library_id", "responded_by", "subject", "body", "created_at",
	}
)

// MessageRepository stores contact form messages and the replies sent to them.
type MessageRepository struct {
	db querier
}

func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db.Pool}
}

func scanMessage(row pgx.Row) (*message.Message, error) {
	m := &message.Message{}
	err := row.Scan(&m.ID, &m.LibraryID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func scanResponse(row pgx.Row) (*message.Response, error) {
	resp := &message.Response{}
	err := row.Scan(&resp.ID, &resp.MessageID, &resp.LibraryID, &resp.RespondedBy, &resp.Subject, &resp.Body, &resp.CreatedAt)
	return resp, err
}

func (r *MessageRepository) Create(ctx context.Context, input message.CreateMessageInput) (*message.Message, error) {
	b := psql.Insert(tableMessages).
		Columns("library_id", "name", "email", "subject", "message").
		Values(input.LibraryID, input.Name, input.Email, input.Subject, input.Message).
		Suffix(returning(messageColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	created, err := scanMessage(row)
	if err != nil {
		return nil, errFailedCreateMessage(err)
	}
	return created, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	b := psql.Select(messageColumns...).From(tableMessages).Where(eqID("id", id))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	m, err := scanMessage(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errFailedGetMessage(err)
	}
	return m, nil
}

func messageListQuery(filter message.ListMessagesFilter) sq.SelectBuilder {
	b := psql.Select(messageColumns...).From(tableMessages)
	if filter.LibraryID != nil {
		b = b.Where(eqID("library_id", *filter.LibraryID))
	}
	if filter.Unread {
		b = b.Where(sq.Eq{"is_read": false})
	}
	return page(b.OrderBy("created_at DESC"), filter.Limit, filter.Offset)
}

func (r *MessageRepository) List(ctx context.Context, filter message.ListMessagesFilter) ([]*message.Message, error) {
	list, err := queryRows(ctx, r.db, messageListQuery(filter), scanMessage)
	if err != nil {
		return nil, errFailedListMessages(err)
	}
	return list, nil
}

func (r *MessageRepository) Update(ctx context.Context, m *message.Message) (*message.Message, error) {
	b := psql.Update(tableMessages).
		Set("is_read", m.IsRead).
		Set("updated_at", sq.Expr("NOW()")).
		Where(eqID("id", m.ID)).
		Suffix(returning(messageColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	updated, err := scanMessage(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errFailedUpdateMessage(err)
	}
	return updated, nil
}

func (r *MessageRepository) CreateResponse(ctx context.Context, input message.CreateResponseInput) (*message.Response, error) {
	b := psql.Insert(tableMessageResponses).
		Columns("message_id", "library_id", "responded_by", "subject", "body").
		Values(input.MessageID, input.LibraryID, input.RespondedBy, input.Subject, input.Body).
		Suffix(returning(responseColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	resp, err := scanResponse(row)
	if err != nil {
		return nil, errFailedCreateResponse(err)
	}
	return resp, nil
}

// ListResponses returns the replies to a message, oldest first.
func (r *MessageRepository) ListResponses(ctx context.Context, messageID uuid.UUID) ([]*message.Response, error) {
	b := psql.Select(responseColumns...).
		From(tableMessageResponses).
		Where(eqID("message_id", messageID)).
		OrderBy("created_at ASC")

	list, err := queryRows(ctx, r.db, b, scanResponse)
	if err != nil {
		return nil, errFailedListResponses(err)
	}
	return list, nil
}
