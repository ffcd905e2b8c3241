package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDGenerator_Sequence(t *testing.T) {
	g := NewSequentialIDGenerator("link")

	assert.Equal(t, "link-1", g.NewID())
	assert.Equal(t, "link-2", g.NewID())
	assert.Equal(t, 2, g.Count())
}

func TestSequentialIDGenerator_Concurrent(t *testing.T) {
	g := NewSequentialIDGenerator("link")

	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := g.NewID()
			_, dup := seen.LoadOrStore(id, true)
			assert.False(t, dup, "duplicate id %s", id)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, g.Count())
}

func TestTickingClock_Advances(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	c := NewTickingClock(base, time.Minute)

	assert.Equal(t, base, c.Now())
	assert.Equal(t, base.Add(time.Minute), c.Now())
	assert.Equal(t, base.Add(2*time.Minute), c.Now())
}
