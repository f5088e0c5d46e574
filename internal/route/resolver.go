package route

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"call-routing/internal/rates"
)

// minMatchLen is the shortest prefix the resolver ever probes. Trimming a
// number below two digits is never attempted.
const minMatchLen = 2

// FindLongest probes table with leading substrings of number from the full
// length down to minMatchLen and returns the first hit, which by
// construction is the longest stored prefix of number.
func FindLongest(table rates.Backend, number string) (decimal.Decimal, bool, error) {
	for i := len(number); i >= minMatchLen; i-- {
		cost, ok, err := table.LookupExact(number[:i])
		if err != nil {
			return decimal.Decimal{}, false, err
		}
		if ok {
			return cost, true, nil
		}
	}
	return decimal.Decimal{}, false, nil
}

// RouteResult is the outcome of resolving one number: the cost each
// matching carrier would charge. An empty Costs map means no carrier had a
// matching prefix, which is distinct from a carrier charging zero.
type RouteResult struct {
	Number string
	Costs  map[string]decimal.Decimal
}

// Matched reports whether at least one carrier matched.
func (r RouteResult) Matched() bool { return len(r.Costs) > 0 }

// Carriers returns the matching carrier ids sorted ascending.
func (r RouteResult) Carriers() []string {
	ids := make([]string, 0, len(r.Costs))
	for id := range r.Costs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Cheapest returns the carrier with the numerically lowest cost. Ties go to
// the carrier id that sorts first, so repeated calls agree.
func (r RouteResult) Cheapest() (string, decimal.Decimal, bool) {
	var bestID string
	var best decimal.Decimal
	for _, id := range r.Carriers() {
		cost := r.Costs[id]
		if bestID == "" || cost.LessThan(best) {
			bestID = id
			best = cost
		}
	}
	if bestID == "" {
		return "", decimal.Decimal{}, false
	}
	return bestID, best, true
}

// Resolve finds the longest-prefix cost for number at every loaded carrier.
// Carriers with no matching prefix are simply absent from the result.
func (r *Registry) Resolve(number string) (RouteResult, error) {
	result := RouteResult{Number: number, Costs: make(map[string]decimal.Decimal)}
	for _, id := range r.CarrierIDs() {
		table, err := r.Carrier(id)
		if err != nil {
			continue
		}
		cost, ok, err := FindLongest(table, number)
		if err != nil {
			return RouteResult{}, fmt.Errorf("carrier %s: %w", id, err)
		}
		if ok {
			result.Costs[id] = cost
		}
	}
	return result, nil
}

// ResolveCarrier resolves number against a single named carrier.
func (r *Registry) ResolveCarrier(id, number string) (decimal.Decimal, bool, error) {
	table, err := r.Carrier(id)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	return FindLongest(table, number)
}
