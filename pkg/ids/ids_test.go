package ids

import (
	"sync"
	"testing"

	messages "github.com/cucumber/messages/go/v21"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("issues distinct identifiers", func(t *testing.T) {
		gen := NewUUID()

		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := gen.NewId()
			require.NotEmpty(t, id)
			require.False(t, seen[id], "identifier %s issued twice", id)
			seen[id] = true
		}
	})

	t.Run("unique under concurrent use", func(t *testing.T) {
		gen := NewUUID()

		var mu sync.Mutex
		seen := make(map[string]bool)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					id := gen.NewId()
					mu.Lock()
					require.False(t, seen[id])
					seen[id] = true
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		require.Len(t, seen, 2000)
	})
}

func TestIncrementingSatisfiesGenerator(t *testing.T) {
	var gen Generator = &messages.Incrementing{}

	require.Equal(t, "0", gen.NewId())
	require.Equal(t, "1", gen.NewId())
}
