package duel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryGetOrCreate(t *testing.T) {
	registry := NewRegistry()

	t.Run("SingleWinner", func(t *testing.T) {
		const goroutines = 64

		var wg sync.WaitGroup
		states := make([]*LiveState, goroutines)
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				states[i] = registry.GetOrCreate("RACECODE")
			}(i)
		}
		wg.Wait()

		for i := 1; i < goroutines; i++ {
			assert.Same(t, states[0], states[i])
		}
		assert.Equal(t, 1, registry.Len())
	})

	t.Run("FreshStateIsRunning", func(t *testing.T) {
		state := registry.GetOrCreate("NEWCODE1")
		assert.True(t, state.Running())
		state.Stop()
		assert.False(t, state.Running())
	})

	t.Run("RemoveReleasesLookupOnly", func(t *testing.T) {
		state := registry.GetOrCreate("GONECODE")
		state.mu.Lock()
		state.Scores["x"] = 5
		state.mu.Unlock()

		registry.Remove("GONECODE")
		_, ok := registry.Get("GONECODE")
		assert.False(t, ok)

		// pointer holders still read their copy
		state.mu.Lock()
		assert.Equal(t, 5, state.Scores["x"])
		state.mu.Unlock()
	})
}
