package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"library-cms/internal/domain/user"
	apperrors "library-cms/pkg/errors"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPasswordMismatch = errors.New("password mismatch")

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	if len(password) < 8 {
		return "", errors.New("password too short")
	}
	return "hashed:" + password, nil
}

func (plainHasher) Verify(password, hash string) error {
	if strings.TrimPrefix(hash, "hashed:") != password {
		return errPasswordMismatch
	}
	return nil
}

type stubTokens struct {
	issued []*user.Actor
}

func (s *stubTokens) Generate(actor *user.Actor) (string, error) {
	s.issued = append(s.issued, actor)
	return "token-" + actor.ID.String(), nil
}

type fakeUserRepo struct {
	byEmail map[string]*user.User
}

func newFakeUserRepo(seed ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{byEmail: make(map[string]*user.User)}
	for _, u := range seed {
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(_ context.Context, in user.CreateUserInput) (*user.User, error) {
	u := &user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         in.Role,
		LibraryID:    in.LibraryID,
		CreatedAt:    time.Now(),
	}
	r.byEmail[u.Email] = u
	return u, nil
}

func TestAuthLogin(t *testing.T) {
	admin := &user.User{ID: uuid.New(), Email: "admin@example.org", PasswordHash: "hashed:correct-horse", Role: user.RoleLibraryAdmin, LibraryID: ptr(libA)}
	tokens := &stubTokens{}
	svc := NewAuthService(newFakeUserRepo(admin), plainHasher{}, tokens, testOptions(clock.NewMock()))

	token, u, err := svc.Login(context.Background(), " Admin@Example.org ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "token-"+admin.ID.String(), token)
	assert.Equal(t, admin.ID, u.ID)
	require.Len(t, tokens.issued, 1)
	assert.Equal(t, libA, tokens.issued[0].LibraryID)

	_, _, err = svc.Login(context.Background(), "admin@example.org", "wrong")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.org", "correct-horse")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthMe(t *testing.T) {
	admin := &user.User{ID: uuid.New(), Email: "admin@example.org", Role: user.RoleSuperAdmin}
	svc := NewAuthService(newFakeUserRepo(admin), plainHasher{}, &stubTokens{}, testOptions(clock.NewMock()))

	u, err := svc.Me(context.Background(), admin.Actor())
	require.NoError(t, err)
	assert.Equal(t, admin.Email, u.Email)

	_, err = svc.Me(context.Background(), nil)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Me(context.Background(), &user.Actor{ID: uuid.New(), Role: user.RoleUser})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthCreateUser(t *testing.T) {
	existing := &user.User{ID: uuid.New(), Email: "taken@example.org", Role: user.RoleUser}

	tests := []struct {
		name      string
		email     string
		password  string
		role      user.Role
		libraryID uuid.UUID
		wantErr   error
	}{
		{"library admin", "new@example.org", "long-enough", user.RoleLibraryAdmin, libA, nil},
		{"super admin without library", "root@example.org", "long-enough", user.RoleSuperAdmin, uuid.Nil, nil},
		{"library admin without library", "new@example.org", "long-enough", user.RoleLibraryAdmin, uuid.Nil, apperrors.ErrValidation},
		{"unknown role", "new@example.org", "long-enough", "owner", libA, apperrors.ErrValidation},
		{"duplicate email", "Taken@example.org", "long-enough", user.RoleUser, uuid.Nil, apperrors.ErrConflict},
		{"short password", "new@example.org", "short", user.RoleUser, uuid.Nil, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(newFakeUserRepo(existing), plainHasher{}, &stubTokens{}, testOptions(clock.NewMock()))
			u, err := svc.CreateUser(context.Background(), tt.email, tt.password, tt.role, tt.libraryID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, u.Role)
			assert.Equal(t, "hashed:"+tt.password, u.PasswordHash)
			if tt.libraryID == uuid.Nil {
				assert.Nil(t, u.LibraryID)
			} else {
				assert.Equal(t, tt.libraryID, *u.LibraryID)
			}
		})
	}
}
