package idgen

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextIDIsUniqueUnderConcurrency(t *testing.T) {
	g := NewSnowflakeIDGenerator(7)

	const n = 500
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- g.NextID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, n)
	for id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
}

func TestNextIDEncodesMachine(t *testing.T) {
	g := NewSnowflakeIDGenerator(42)
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	first := g.NextID()
	second := g.NextID()
	assert.Equal(t, int64(42), (first/1000)%100)
	assert.Equal(t, first+1, second)
}

func TestClockRollbackKeepsIncreasing(t *testing.T) {
	g := NewSnowflakeIDGenerator(1)
	current := time.Date(2025, 6, 1, 0, 0, 10, 0, time.UTC)
	g.now = func() time.Time { return current }

	a := g.NextID()
	current = current.Add(-5 * time.Second)
	b := g.NextID()
	assert.Greater(t, b, a)
}

func TestInvalidMachineIDFallsBackToZero(t *testing.T) {
	g := NewSnowflakeIDGenerator(1000)
	assert.Equal(t, int64(0), g.machineID)
	assert.True(t, strings.HasPrefix(g.NextOrderNo(), "PS-"))
}
