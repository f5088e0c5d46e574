package route

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Cache holds routes resolved ahead of time for a fixed number list. It
// trades one bulk resolution pass and O(numbers x carriers) memory for O(1)
// lookups afterward. The lazy alternative is Registry.Resolve per query:
// cheap start, per-query latency set by the backend.
type Cache struct {
	numbers []string
	results map[string]RouteResult
}

// Precompute resolves every number against reg and returns the finished
// cache. Work fans out across workers goroutines (NumCPU when workers <= 0);
// the tables are immutable, so the only coordination is collecting results.
// Any resolution error aborts the whole pass and no cache is returned.
func Precompute(ctx context.Context, reg *Registry, numbers []string, workers int) (*Cache, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	cache := &Cache{
		numbers: append([]string(nil), numbers...),
		results: make(map[string]RouteResult, len(numbers)),
	}

	var mu sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for _, number := range cache.numbers {
		number := number
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := reg.Resolve(number)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", number, err)
			}
			mu.Lock()
			cache.results[number] = result
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return cache, nil
}

// Get returns the precomputed result for number. The boolean is false for
// numbers that were not part of the precomputed set.
func (c *Cache) Get(number string) (RouteResult, bool) {
	result, ok := c.results[number]
	return result, ok
}

// Len reports how many numbers were precomputed.
func (c *Cache) Len() int { return len(c.results) }

// Cursor returns a cursor over the cache in input order.
func (c *Cache) Cursor() *Cursor {
	return &Cursor{numbers: c.numbers, cache: c}
}

// Cursor steps through precomputed routes one at a time, in the order the
// numbers were given to Precompute. It is finite and restartable; the only
// state is the cursor's own position, so independent cursors over the same
// cache do not affect each other.
type Cursor struct {
	numbers []string
	cache   *Cache
	idx     int
}

// Next returns the next result. The boolean is false once the sequence is
// exhausted; Reset rewinds.
func (c *Cursor) Next() (RouteResult, bool) {
	for c.idx < len(c.numbers) {
		number := c.numbers[c.idx]
		c.idx++
		if result, ok := c.cache.Get(number); ok {
			return result, true
		}
	}
	return RouteResult{}, false
}

// Reset rewinds the cursor to the first result.
func (c *Cursor) Reset() { c.idx = 0 }
