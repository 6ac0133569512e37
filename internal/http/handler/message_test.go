package handler

import (
	"net/http"
	"testing"

	"library-cms/internal/domain/message"
	"library-cms/internal/domain/user"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageHandler_Contact(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Ada","email":" Ada@Example.com ","subject":"Hours","message":"When do you open?"}`, ""},
		{"missing message", `{"name":"Ada","email":"ada@example.com"}`, msgContactFieldsRequired},
		{"missing name", `{"email":"ada@example.com","message":"hi"}`, msgContactFieldsRequired},
		{"invalid email", `{"name":"Ada","email":"not-an-email","message":"hi"}`, msgInvalidEmail},
		{"unknown field", `{"name":"Ada","email":"ada@example.com","message":"hi","isRead":true}`, msgInvalidRequestBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMessageService{}
			h := NewMessageHandler(svc, Deps{})
			c, rec := jsonContext(http.MethodPost, "/api/contact", tt.body, nil)

			err := h.Contact(c)
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Equal(t, tt.wantErr, apperrors.Message(err))
				assert.Nil(t, svc.created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, http.StatusCreated, rec.Code)
			require.NotNil(t, svc.created)
			assert.Equal(t, "ada@example.com", svc.created.Email)
		})
	}
}

func TestMessageHandler_ContactRequiresJSON(t *testing.T) {
	h := NewMessageHandler(&fakeMessageService{}, Deps{})
	c, _ := newRequestContext(http.MethodPost, "/api/contact", nil, "text/plain", nil)

	err := h.Contact(c)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
}

func TestMessageHandler_ListScope(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		actor       *user.Actor
		wantErr     error
		wantLibrary *uuid.UUID
		wantUnread  bool
	}{
		{"anonymous", "/", nil, apperrors.ErrUnauthorized, nil, false},
		{"plain user", "/", &user.Actor{ID: uuid.New(), Role: user.RoleUser}, apperrors.ErrForbidden, nil, false},
		{"library admin pinned to own library", "/?libraryId=" + libB.String(), libraryAdmin(libA), nil, &libA, false},
		{"library admin unread", "/?unread=true", libraryAdmin(libA), nil, &libA, true},
		{"super admin all libraries", "/", superAdmin(), nil, nil, false},
		{"super admin narrowed", "/?libraryId=" + libB.String(), superAdmin(), nil, &libB, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMessageService{}
			h := NewMessageHandler(svc, Deps{})
			c, _ := jsonContext(http.MethodGet, tt.target, "", tt.actor)

			err := h.List(c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLibrary, svc.listFilter.LibraryID)
			assert.Equal(t, tt.wantUnread, svc.listFilter.Unread)
		})
	}
}

func TestMessageHandler_UpdateOwnership(t *testing.T) {
	scoped := &message.Message{ID: uuid.New(), LibraryID: &libA, Name: "Ada"}
	general := &message.Message{ID: uuid.New(), Name: "Grace"}

	tests := []struct {
		name      string
		msg       *message.Message
		actor     *user.Actor
		wantErr   error
		wantCalls int
	}{
		{"own library admin", scoped, libraryAdmin(libA), nil, 1},
		{"other library admin", scoped, libraryAdmin(libB), apperrors.ErrForbidden, 0},
		{"super admin", scoped, superAdmin(), nil, 1},
		{"unscoped message", general, libraryAdmin(libB), nil, 1},
		{"anonymous", scoped, nil, apperrors.ErrUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMessageService{messages: map[uuid.UUID]*message.Message{tt.msg.ID: tt.msg}}
			h := NewMessageHandler(svc, Deps{})
			c, rec := jsonContext(http.MethodPatch, "/", `{"isRead":true}`, tt.actor)

			err := h.Update(withID(c, tt.msg.ID))
			assert.Equal(t, tt.wantCalls, svc.updateCalls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"isRead":true`)
		})
	}
}

func TestMessageHandler_UpdateMissing(t *testing.T) {
	svc := &fakeMessageService{messages: map[uuid.UUID]*message.Message{}}
	h := NewMessageHandler(svc, Deps{})
	c, _ := jsonContext(http.MethodPatch, "/", `{"isRead":true}`, libraryAdmin(libA))

	assert.ErrorIs(t, h.Update(withID(c, uuid.New())), apperrors.ErrNotFound)
	assert.Zero(t, svc.updateCalls)
}

func TestMessageHandler_Reply(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"subject":"Re: Hours","body":"We open at nine."}`, false},
		{"blank subject", `{"subject":" ","body":"We open at nine."}`, true},
		{"missing body", `{"subject":"Re: Hours"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMessageService{}
			h := NewMessageHandler(svc, Deps{})
			c, rec := jsonContext(http.MethodPost, "/", tt.body, libraryAdmin(libA))

			err := h.Reply(withID(c, uuid.New()))
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Zero(t, svc.replyCalls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, http.StatusCreated, rec.Code)
			assert.Equal(t, 1, svc.replyCalls)
		})
	}
}
