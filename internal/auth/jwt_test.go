package auth

import (
	"testing"
	"time"

	"library-cms/internal/domain/user"

	"github.com/benbjohnson/clock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "k3J9x!pQ2vLm8#Zr5tWb7YcN4eHs6GaD"

func newTestJWT(t *testing.T) (*JWTService, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	clk.Set(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	return NewJWTServiceWithClock(testSecret, time.Hour, clk), clk
}

func TestJWTRoundTrip(t *testing.T) {
	svc, _ := newTestJWT(t)
	libraryID := uuid.New()

	tests := []struct {
		name  string
		actor *user.Actor
	}{
		{"library admin", &user.Actor{ID: uuid.New(), Role: user.RoleLibraryAdmin, LibraryID: libraryID}},
		{"super admin without library", &user.Actor{ID: uuid.New(), Role: user.RoleSuperAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Generate(tt.actor)
			require.NoError(t, err)

			claims, err := svc.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, tt.actor, claims.Actor())
			assert.Equal(t, tt.actor.ID.String(), claims.Subject)
			assert.Equal(t, tt.actor.HasLibrary(), claims.LibraryID != nil)
		})
	}
}

func TestJWTExpires(t *testing.T) {
	svc, clk := newTestJWT(t)
	token, err := svc.Generate(&user.Actor{ID: uuid.New(), Role: user.RoleSuperAdmin})
	require.NoError(t, err)

	clk.Add(59 * time.Minute)
	_, err = svc.Verify(token)
	require.NoError(t, err)

	clk.Add(2 * time.Minute)
	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTRejectsForeignSignature(t *testing.T) {
	svc, clk := newTestJWT(t)
	other := NewJWTServiceWithClock("another-secret-another-secret-xx", time.Hour, clk)

	token, err := other.Generate(&user.Actor{ID: uuid.New(), Role: user.RoleSuperAdmin})
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTRejectsUnsignedToken(t *testing.T) {
	svc, clk := newTestJWT(t)
	claims := Claims{
		UserID: uuid.New(),
		Role:   user.RoleSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clk.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTRejectsUnknownRole(t *testing.T) {
	svc, clk := newTestJWT(t)
	claims := Claims{
		UserID: uuid.New(),
		Role:   user.Role("owner"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clk.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}
