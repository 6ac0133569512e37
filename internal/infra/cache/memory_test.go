package cache

import (
	"context"
	"sync"
	"testing"

	"library-cms/internal/domain/maintenance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreDefaultsToDisabled(t *testing.T) {
	s := NewMemoryStore()
	state, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Enabled)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestMemoryStoreSetGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, maintenance.State{Enabled: true, Message: "upgrading"}))
	state, err := s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, state.Enabled)
	assert.Equal(t, "upgrading", state.Message)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(enabled bool) {
			defer wg.Done()
			_ = s.Set(ctx, maintenance.State{Enabled: enabled})
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			_, _ = s.Get(ctx)
		}()
	}
	wg.Wait()
}
