package rates

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DuplicatePolicy decides which cost wins when the same prefix appears more
// than once in a carrier's rate source.
type DuplicatePolicy int

const (
	// KeepMin keeps the cheapest cost. This is the default: a cheapest-route
	// system should never quote a rate higher than one it was offered.
	KeepMin DuplicatePolicy = iota
	// KeepMax keeps the most expensive cost.
	KeepMax
	// KeepLast keeps whichever cost appears later in the source.
	KeepLast
	// Reject treats any duplicate as a load error.
	Reject
)

func (p DuplicatePolicy) String() string {
	switch p {
	case KeepMin:
		return "keep-min"
	case KeepMax:
		return "keep-max"
	case KeepLast:
		return "keep-last"
	case Reject:
		return "reject"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy maps a flag value to a DuplicatePolicy.
func ParsePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "min", "keep-min":
		return KeepMin, nil
	case "max", "keep-max":
		return KeepMax, nil
	case "last", "keep-last":
		return KeepLast, nil
	case "reject":
		return Reject, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q", s)
}

// dedupe collapses records into one cost per prefix according to policy.
// Shared by the memory and relational builders so both resolve duplicates
// the same way.
func dedupe(records []Record, policy DuplicatePolicy) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(records))
	for _, rec := range records {
		prev, seen := out[rec.Prefix]
		if !seen {
			out[rec.Prefix] = rec.Cost
			continue
		}
		switch policy {
		case KeepMin:
			if rec.Cost.LessThan(prev) {
				out[rec.Prefix] = rec.Cost
			}
		case KeepMax:
			if rec.Cost.GreaterThan(prev) {
				out[rec.Prefix] = rec.Cost
			}
		case KeepLast:
			out[rec.Prefix] = rec.Cost
		case Reject:
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePrefix, rec.Prefix)
		}
	}
	return out, nil
}
