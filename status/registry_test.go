package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsStablePointer(t *testing.T) {
	reg := NewRegistry()

	a := reg.Ints.Get("nav.primary.attempts")
	b := reg.Ints.Get("nav.primary.attempts")
	assert.Same(t, a, b)

	a.Add(3)
	assert.Equal(t, int64(3), b.Load())
}

func TestSnapshot(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get("b").Store(2)
	reg.Ints.Get("a").Store(1)

	snap := reg.Snapshot()
	assert.Equal(t, map[string]int64{"a": 1, "b": 2}, snap)
}

func TestConcurrentRegistration(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg.Ints.Get("shared").Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1600), reg.Ints.Get("shared").Load())
	assert.Equal(t, 1, reg.Ints.Count())
}
