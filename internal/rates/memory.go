package rates

import "github.com/shopspring/decimal"

// MemoryTable is the exact-match in-memory backend. Building costs Θ(n)
// over the input records; each probe is one map hit. Default choice when
// lookup latency matters more than startup time.
type MemoryTable struct {
	costs map[string]decimal.Decimal
}

// BuildMemoryTable builds a table from parsed records, collapsing duplicate
// prefixes per policy.
func BuildMemoryTable(records []Record, policy DuplicatePolicy) (*MemoryTable, error) {
	costs, err := dedupe(records, policy)
	if err != nil {
		return nil, err
	}
	return &MemoryTable{costs: costs}, nil
}

func (t *MemoryTable) LookupExact(prefix string) (decimal.Decimal, bool, error) {
	cost, ok := t.costs[prefix]
	return cost, ok, nil
}

func (t *MemoryTable) Len() int { return len(t.costs) }

func (t *MemoryTable) Close() error { return nil }
