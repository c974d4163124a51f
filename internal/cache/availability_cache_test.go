package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/holistia-mx/availability-engine/internal/domain/availability"
)

// gatedFetcher serves synthetic grids and can hold individual weeks
// in flight until the test releases them.
type gatedFetcher struct {
	mu      sync.Mutex
	calls   []string
	gates   map[string]chan struct{}
	started map[string]chan struct{}
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{
		gates:   map[string]chan struct{}{},
		started: map[string]chan struct{}{},
	}
}

func (f *gatedFetcher) gate(week string) (gate, started chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate = make(chan struct{})
	started = make(chan struct{})
	f.gates[week] = gate
	f.started[week] = started
	return gate, started
}

func (f *gatedFetcher) FetchWeek(_ context.Context, providerID uint, weekStart time.Time) (*availability.SlotGrid, error) {
	week := weekStart.Format(availability.DateLayout)

	f.mu.Lock()
	f.calls = append(f.calls, week)
	gate := f.gates[week]
	started := f.started[week]
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}

	return &availability.SlotGrid{ProviderID: providerID, WeekStart: week}, nil
}

func (f *gatedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var (
	weekA = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)  // Monday
	weekB = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)  // next Monday
	weekC = time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC) // previous Monday
)

func TestLoad_CachesAndReuses(t *testing.T) {
	f := newGatedFetcher()
	c := New(f, zap.NewNop())

	grid, applied, err := c.Load(context.Background(), 1, weekA, true)
	assert.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "2025-06-02", grid.WeekStart)
	assert.Equal(t, 1, f.callCount())

	t.Run("cache hit skips the fetch", func(t *testing.T) {
		again, applied, err := c.Load(context.Background(), 1, weekA, true)
		assert.NoError(t, err)
		assert.True(t, applied)
		assert.Same(t, grid, again)
		assert.Equal(t, 1, f.callCount())
	})

	t.Run("non-canonical anchor hits the same entry", func(t *testing.T) {
		thursday := weekA.AddDate(0, 0, 3)
		assert.Same(t, grid, c.Get(1, thursday))
	})

	t.Run("forced refresh refetches", func(t *testing.T) {
		_, applied, err := c.Load(context.Background(), 1, weekA, false)
		assert.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, 2, f.callCount())
	})
}

func TestLoad_SupersededResultDiscarded(t *testing.T) {
	f := newGatedFetcher()
	c := New(f, zap.NewNop())

	gateA, startedA := f.gate("2025-06-02")

	type loadResult struct {
		grid    *availability.SlotGrid
		applied bool
		err     error
	}
	resultA := make(chan loadResult, 1)

	go func() {
		g, applied, err := c.Load(context.Background(), 1, weekA, true)
		resultA <- loadResult{g, applied, err}
	}()

	// A is in flight; navigate to B before it resolves.
	<-startedA
	gridB, applied, err := c.Load(context.Background(), 1, weekB, true)
	assert.NoError(t, err)
	assert.True(t, applied)

	// A's response arrives late and must be discarded.
	close(gateA)
	resA := <-resultA
	assert.NoError(t, resA.err)
	assert.False(t, resA.applied)
	assert.Nil(t, resA.grid)

	assert.Same(t, gridB, c.Visible(1))
	assert.Nil(t, c.Get(1, weekA), "discarded result must not land in the cache map")
}

func TestLoad_ProvidersSupersedeIndependently(t *testing.T) {
	f := newGatedFetcher()
	c := New(f, zap.NewNop())

	gateA, startedA := f.gate("2025-06-02")

	type loadResult struct {
		grid    *availability.SlotGrid
		applied bool
		err     error
	}
	result1 := make(chan loadResult, 1)

	go func() {
		g, applied, err := c.Load(context.Background(), 1, weekA, true)
		result1 <- loadResult{g, applied, err}
	}()

	// Provider 1's fetch is in flight; provider 2 navigates meanwhile.
	<-startedA
	grid2, applied, err := c.Load(context.Background(), 2, weekB, true)
	assert.NoError(t, err)
	assert.True(t, applied)

	// Provider 1's result arrives late but was not superseded by anyone:
	// only a same-provider navigation may discard it.
	close(gateA)
	res1 := <-result1
	assert.NoError(t, res1.err)
	assert.True(t, res1.applied)
	assert.NotNil(t, res1.grid)

	assert.Same(t, res1.grid, c.Visible(1))
	assert.Same(t, grid2, c.Visible(2))
	assert.NotNil(t, c.Get(1, weekA))
}

func TestPreloadAdjacent(t *testing.T) {
	f := newGatedFetcher()
	c := New(f, zap.NewNop())

	grid, _, err := c.Load(context.Background(), 1, weekA, true)
	assert.NoError(t, err)

	c.PreloadAdjacent(context.Background(), 1, weekA)

	t.Run("both neighbours cached", func(t *testing.T) {
		assert.NotNil(t, c.Get(1, weekC))
		assert.NotNil(t, c.Get(1, weekB))
	})

	t.Run("visible state untouched", func(t *testing.T) {
		assert.Same(t, grid, c.Visible(1))
	})

	t.Run("preload never bumps the version", func(t *testing.T) {
		// A Load issued before the preload would have been discarded if
		// preloading bumped the counter; a fresh Load still applies.
		g, applied, err := c.Load(context.Background(), 1, weekB, true)
		assert.NoError(t, err)
		assert.True(t, applied)
		assert.NotNil(t, g)
	})

	t.Run("already-cached weeks are skipped", func(t *testing.T) {
		before := f.callCount()
		c.PreloadAdjacent(context.Background(), 1, weekA)
		assert.Equal(t, before, f.callCount())
	})
}

func TestInvalidateAll(t *testing.T) {
	f := newGatedFetcher()
	c := New(f, zap.NewNop())

	_, _, err := c.Load(context.Background(), 1, weekA, true)
	assert.NoError(t, err)
	assert.NotNil(t, c.Get(1, weekA))

	c.InvalidateAll()

	assert.Nil(t, c.Get(1, weekA))

	_, applied, err := c.Load(context.Background(), 1, weekA, true)
	assert.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 2, f.callCount())
}
