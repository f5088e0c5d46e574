package route

import (
	"bufio"
	"fmt"
	"os"
)

// noMatchField is written in place of a cost when no carrier matched, so a
// missing route can never be read back as a price.
const noMatchField = "no-match"

// WriteResults writes one "number,cost" line per result to outputPath,
// using each result's cheapest carrier cost. The lines go to a temporary
// sibling file that is renamed into place at the end, so a failed write
// never leaves a partial results file behind.
func WriteResults(results []RouteResult, outputPath string) error {
	tmpPath := outputPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, r := range results {
		field := noMatchField
		if _, cost, ok := r.Cheapest(); ok {
			field = cost.String()
		}
		if _, err := fmt.Fprintf(w, "%s,%s\n", r.Number, field); err != nil {
			f.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush results: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close results file: %w", err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move results file into place: %w", err)
	}
	return nil
}
