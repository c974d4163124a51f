package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/holistia-mx/availability-engine/internal/domain/availability"
)

// Fetcher loads one week's grid from the computation engine.
type Fetcher interface {
	FetchWeek(
		ctx context.Context,
		providerID uint,
		weekStart time.Time,
	) (*availability.SlotGrid, error)
}

type key struct {
	providerID uint
	weekStart  string
}

// providerState tracks one provider's navigation independently: a load
// version and the grid last applied to visible state. Supersession is a
// same-provider affair; one provider navigating must never discard
// another provider's in-flight read.
type providerState struct {
	version uint64
	visible *availability.SlotGrid
}

// AvailabilityCache avoids redundant grid fetches across week navigation
// while guaranteeing the visible grid never regresses to a stale result.
//
// Every Load bumps the provider's version counter before fetching; a
// completed fetch only becomes visible if its captured version still
// matches. Superseded in-flight loads finish but their results are
// discarded — reads are idempotent, so discarding beats cancelling.
type AvailabilityCache struct {
	fetcher Fetcher
	log     *zap.Logger

	mu      sync.Mutex
	entries map[key]*availability.SlotGrid
	states  map[uint]*providerState
}

func New(fetcher Fetcher, log *zap.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		fetcher: fetcher,
		log:     log,
		entries: map[key]*availability.SlotGrid{},
		states:  map[uint]*providerState{},
	}
}

func keyFor(providerID uint, weekStart time.Time) key {
	return key{
		providerID: providerID,
		weekStart:  availability.CanonicalWeekStart(weekStart).Format(availability.DateLayout),
	}
}

// state returns the provider's navigation state, creating it on first
// use. Callers must hold c.mu.
func (c *AvailabilityCache) state(providerID uint) *providerState {
	st := c.states[providerID]
	if st == nil {
		st = &providerState{}
		c.states[providerID] = st
	}
	return st
}

// Get returns the cached grid for the week, or nil.
func (c *AvailabilityCache) Get(providerID uint, weekStart time.Time) *availability.SlotGrid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[keyFor(providerID, weekStart)]
}

// Visible returns the grid last applied to the provider's visible state.
func (c *AvailabilityCache) Visible(providerID uint) *availability.SlotGrid {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st := c.states[providerID]; st != nil {
		return st.visible
	}
	return nil
}

// Load resolves a week, from cache when allowed. The returned applied flag
// is false when a newer Load by the same provider superseded this one and
// the result was discarded.
func (c *AvailabilityCache) Load(
	ctx context.Context,
	providerID uint,
	weekStart time.Time,
	useCache bool,
) (grid *availability.SlotGrid, applied bool, err error) {

	k := keyFor(providerID, weekStart)

	c.mu.Lock()
	st := c.state(providerID)
	st.version++
	v := st.version

	if useCache {
		if cached := c.entries[k]; cached != nil {
			st.visible = cached
			c.mu.Unlock()
			return cached, true, nil
		}
	}
	c.mu.Unlock()

	fetched, err := c.fetcher.FetchWeek(ctx, providerID, weekStart)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if st.version != v {
		// A newer navigation by this provider owns the visible state now.
		return nil, false, nil
	}

	c.entries[k] = fetched
	st.visible = fetched
	return fetched, true, nil
}

// PreloadAdjacent warms the previous and next week. Writes only to the
// cache map, never to visible state, and never bumps the version. Intended
// to run on a background goroutine after a Load.
func (c *AvailabilityCache) PreloadAdjacent(
	ctx context.Context,
	providerID uint,
	weekStart time.Time,
) {
	for _, delta := range []int{-7, 7} {
		week := availability.CanonicalWeekStart(weekStart).AddDate(0, 0, delta)
		k := keyFor(providerID, week)

		c.mu.Lock()
		_, have := c.entries[k]
		c.mu.Unlock()
		if have {
			continue
		}

		grid, err := c.fetcher.FetchWeek(ctx, providerID, week)
		if err != nil {
			c.log.Debug("preload failed",
				zap.Uint("provider_id", providerID),
				zap.String("week_start", k.weekStart),
				zap.Error(err))
			continue
		}

		c.mu.Lock()
		c.entries[k] = grid
		c.mu.Unlock()
	}
}

// InvalidateAll clears the cache map. Wired to the reload bus and invoked
// on provider switch. Visible grids stay until the next Load replaces
// them.
func (c *AvailabilityCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[key]*availability.SlotGrid{}
}
