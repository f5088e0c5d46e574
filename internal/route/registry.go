// Package route resolves phone numbers to per-carrier call costs by
// longest-prefix match over the tables in a carrier registry, either lazily
// per query or eagerly through a precomputed cache.
package route

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"call-routing/internal/rates"
)

// ErrUnknownCarrier reports a query against a carrier id that was never
// loaded. It is an ordinary return value, never fatal to the process.
var ErrUnknownCarrier = errors.New("unknown carrier")

// Registry holds one immutable rate table per carrier. Install swaps a
// carrier's table in a single step, so concurrent readers see either the
// old table or the fully built new one, never something in between.
type Registry struct {
	mu       sync.RWMutex
	carriers map[string]rates.Backend
}

func NewRegistry() *Registry {
	return &Registry{carriers: make(map[string]rates.Backend)}
}

// Install adds or replaces a carrier's table. The table must be fully built
// before it is installed; the table it replaces, if any, is closed.
func (r *Registry) Install(id string, table rates.Backend) {
	r.mu.Lock()
	old := r.carriers[id]
	r.carriers[id] = table
	r.mu.Unlock()

	if old != nil {
		old.Close()
	}
}

// Carrier returns the table loaded for id, or ErrUnknownCarrier.
func (r *Registry) Carrier(id string) (rates.Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, ok := r.carriers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCarrier, id)
	}
	return table, nil
}

// CarrierIDs returns the loaded carrier names sorted ascending, so every
// walk over the registry is deterministic.
func (r *Registry) CarrierIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.carriers))
	for id := range r.carriers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports the number of loaded carriers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carriers)
}

// Close closes every table and empties the registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for id, table := range r.carriers {
		if err := table.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing carrier %s: %w", id, err)
		}
		delete(r.carriers, id)
	}
	return firstErr
}
