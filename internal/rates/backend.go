// Package rates owns per-carrier prefix-cost tables: parsing rate sources
// and the three interchangeable storage backends (in-memory map, mapped-file
// scan, relational table). A table is built once and read-only afterward;
// concurrent readers need no locking.
package rates

import "github.com/shopspring/decimal"

// Backend is the lookup contract every storage strategy satisfies. The
// strategies differ only in their load-time/lookup-time/memory profile.
type Backend interface {
	// LookupExact returns the cost stored for exactly this prefix. The
	// boolean reports presence; a miss is an ordinary result, not an error.
	LookupExact(prefix string) (decimal.Decimal, bool, error)

	// Len reports the number of records in the table.
	Len() int

	// Close releases any resources the table holds.
	Close() error
}
