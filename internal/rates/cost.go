package rates

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseCost parses a cost field such as "0.05". Costs are exact decimals so
// comparing two rates never depends on float rounding, and "cheaper" always
// means numerically cheaper rather than lexically.
func ParseCost(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty cost", ErrMalformedRecord)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: bad cost %q", ErrMalformedRecord, s)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: negative cost %q", ErrMalformedRecord, s)
	}
	return d, nil
}
