package rates

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Prefix length bounds enforced at load time. The resolver never probes a
// prefix shorter than MinPrefixLen, so storing one would be dead weight.
const (
	MinPrefixLen = 2
	MaxPrefixLen = 15
)

// Record is one parsed rate-table row: a dialing prefix and the cost a
// carrier charges for numbers under it.
type Record struct {
	Prefix string
	Cost   decimal.Decimal
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidNumber reports whether s is usable as a lookup key: digits only, at
// least MinPrefixLen long.
func ValidNumber(s string) bool {
	return len(s) >= MinPrefixLen && digitsOnly(s)
}

// ReadRates parses "prefix,cost" records, one per line, no header row.
// Blank lines are skipped; anything else that fails to parse aborts the
// whole read so a half-good source is never loaded.
func ReadRates(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}
		prefix, cost, ok := strings.Cut(text, ",")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing delimiter in %q", ErrMalformedRecord, line, text)
		}
		if !digitsOnly(prefix) || len(prefix) < MinPrefixLen || len(prefix) > MaxPrefixLen {
			return nil, fmt.Errorf("%w: line %d: bad prefix %q", ErrMalformedRecord, line, prefix)
		}
		d, err := ParseCost(cost)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, Record{Prefix: prefix, Cost: d})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading rates: %w", err)
	}

	return records, nil
}

// ReadRateFile reads a rate file from disk.
func ReadRateFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rate file %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRates(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadNumbers parses phone numbers, one digit string per line. Blank lines
// are skipped; a record with anything but digits aborts the read.
func ReadNumbers(r io.Reader) ([]string, error) {
	var numbers []string
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}
		if !ValidNumber(text) {
			return nil, fmt.Errorf("%w: line %d: bad number %q", ErrMalformedRecord, line, text)
		}
		numbers = append(numbers, text)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading numbers: %w", err)
	}

	return numbers, nil
}

// ReadNumberFile reads a phone-number list file from disk.
func ReadNumberFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open number file %s: %w", path, err)
	}
	defer f.Close()

	numbers, err := ReadNumbers(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return numbers, nil
}
