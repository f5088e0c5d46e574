package route

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResults(t *testing.T) {
	results := []RouteResult{
		{
			Number: "2125551234",
			Costs: map[string]decimal.Decimal{
				"telA": decimal.RequireFromString("0.05"),
				"telB": decimal.RequireFromString("0.03"),
			},
		},
		{Number: "9995551234"},
	}

	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteResults(results, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2125551234,0.03\n9995551234,no-match\n", string(content))
}

func TestWriteResultsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteResults(nil, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestWriteResultsBadPath(t *testing.T) {
	err := WriteResults(nil, filepath.Join(t.TempDir(), "no-such-dir", "results.csv"))
	assert.Error(t, err)
}

func TestWriteResultsLeavesNoTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteResults(nil, path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

// A failed write must not leave anything behind at or next to the output
// path. A directory at the output path makes the final rename fail.
func TestWriteResultsFailureLeavesNothingBehind(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.Mkdir(outPath, 0755))

	err := WriteResults([]RouteResult{{Number: "2125551234"}}, outPath)
	require.Error(t, err)

	_, err = os.Stat(outPath + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
