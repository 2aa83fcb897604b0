package locks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	km := NewKeyedMutex()
	var countA, countB int

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			km.Lock("a@x.com")
			countA++
			km.Unlock("a@x.com")
		}()
		go func() {
			defer wg.Done()
			km.Lock("b@x.com")
			countB++
			km.Unlock("b@x.com")
		}()
	}
	wg.Wait()

	require.Equal(t, 100, countA)
	require.Equal(t, 100, countB)
}

func TestKeyedMutex_DropsIdleEntries(t *testing.T) {
	km := NewKeyedMutex()
	km.Lock("k")
	km.Unlock("k")

	km.mu.Lock()
	defer km.mu.Unlock()
	require.Empty(t, km.locks)
}
