package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Verify("correct horse", hash))
	assert.ErrorIs(t, h.Verify("wrong horse", hash), ErrMismatch)
}

func TestHashRejectsLength(t *testing.T) {
	h := NewHasher(MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{"empty", ""},
		{"too short", "short"},
		{"too long", strings.Repeat("a", MaxLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Hash(tt.password)
			assert.Error(t, err)
		})
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewHasher(0).cost)
	assert.Equal(t, DefaultCost, NewHasher(MaxCost+1).cost)
	assert.Equal(t, MinCost, NewHasher(MinCost).cost)
}

func TestNeedsRehash(t *testing.T) {
	weak := NewHasher(MinCost)
	hash, err := weak.Hash("correct horse")
	require.NoError(t, err)

	needs, err := NewHasher(MinCost + 1).NeedsRehash(hash)
	require.NoError(t, err)
	assert.True(t, needs)

	needs, err = weak.NeedsRehash(hash)
	require.NoError(t, err)
	assert.False(t, needs)

	_, err = weak.NeedsRehash("not-a-hash")
	assert.Error(t, err)
}
