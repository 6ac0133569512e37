package handler

import (
	"net/http"
	"testing"

	"library-cms/internal/domain/user"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_Scope(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		actor       *user.Actor
		wantErr     error
		wantLibrary uuid.UUID
	}{
		{"library admin own library", "/", libraryAdmin(libA), nil, libA},
		{"library admin ignores query", "/?libraryId=" + libB.String(), libraryAdmin(libA), nil, libA},
		{"super admin names library", "/?libraryId=" + libB.String(), superAdmin(), nil, libB},
		{"super admin without library", "/", superAdmin(), apperrors.ErrValidation, uuid.Nil},
		{"plain user", "/", &user.Actor{ID: uuid.New(), Role: user.RoleUser}, apperrors.ErrForbidden, uuid.Nil},
		{"library admin without library", "/", &user.Actor{ID: uuid.New(), Role: user.RoleLibraryAdmin}, apperrors.ErrForbidden, uuid.Nil},
		{"anonymous", "/", nil, apperrors.ErrUnauthorized, uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeDashboardService{}
			h := NewDashboardHandler(svc, Deps{})
			c, rec := jsonContext(http.MethodGet, tt.target, "", tt.actor)

			err := h.Stats(c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, uuid.Nil, svc.statsLibrary)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantLibrary, svc.statsLibrary)
			assert.Contains(t, rec.Body.String(), `"totalStories":3`)
		})
	}
}

func TestDashboardHandler_MissingLibraryMessage(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardService{}, Deps{})
	c, _ := jsonContext(http.MethodGet, "/", "", superAdmin())

	err := h.Analytics(c)
	assert.Equal(t, msgLibraryIDRequired, apperrors.Message(err))
}
