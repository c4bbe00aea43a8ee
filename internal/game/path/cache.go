package path

import (
	"github.com/duskfield/gridnav/internal/game/grid"
	"github.com/duskfield/gridnav/internal/game/movement"
)

type cacheKey struct {
	start      grid.Point
	goal       grid.Point
	capability movement.Capability
}

type cacheEntry struct {
	key    cacheKey
	result Result
	cells  []grid.Point
}

// resultCache is a bounded FIFO cache of successful pathfinding
// results. Entries are additionally indexed by every grid cell their
// route traverses, so an obstacle change at (x, y) invalidates exactly
// the routes crossing that cell. Eviction is oldest-first insertion
// order, not LRU; at this capacity the difference is not worth the
// bookkeeping.
//
// The key deliberately omits the other query options (clearance, cost
// multiplier, diagonal/smoothing flags): callers mixing those between
// queries for the same endpoints can observe a route computed under
// the earlier options. Fallback recovery therefore bypasses the cache
// for its relaxed searches.
type resultCache struct {
	capacity int
	entries  map[cacheKey]*cacheEntry
	order    []cacheKey
	byCell   map[grid.Point]map[cacheKey]struct{}
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{
		capacity: capacity,
		entries:  make(map[cacheKey]*cacheEntry, capacity),
		order:    make([]cacheKey, 0, capacity),
		byCell:   make(map[grid.Point]map[cacheKey]struct{}),
	}
}

func (c *resultCache) get(key cacheKey) (Result, bool) {
	entry, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	return entry.result, true
}

func (c *resultCache) put(key cacheKey, r Result, cells []grid.Point) {
	if _, ok := c.entries[key]; ok {
		c.remove(key)
	}
	for len(c.entries) >= c.capacity && len(c.order) > 0 {
		c.remove(c.order[0])
	}

	c.entries[key] = &cacheEntry{key: key, result: r, cells: cells}
	c.order = append(c.order, key)
	for _, p := range cells {
		keys, ok := c.byCell[p]
		if !ok {
			keys = make(map[cacheKey]struct{}, 2)
			c.byCell[p] = keys
		}
		keys[key] = struct{}{}
	}
}

// invalidateCell purges every cached route that crosses (x, y).
func (c *resultCache) invalidateCell(x, y int) {
	p := grid.Point{X: x, Y: y}
	keys, ok := c.byCell[p]
	if !ok {
		return
	}
	for key := range keys {
		c.remove(key)
	}
}

func (c *resultCache) remove(key cacheKey) {
	entry, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	for _, p := range entry.cells {
		if keys, ok := c.byCell[p]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byCell, p)
			}
		}
	}
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *resultCache) clear() {
	c.entries = make(map[cacheKey]*cacheEntry, c.capacity)
	c.order = c.order[:0]
	c.byCell = make(map[grid.Point]map[cacheKey]struct{})
}

func (c *resultCache) len() int {
	return len(c.entries)
}
