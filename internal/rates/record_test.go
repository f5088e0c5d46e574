package rates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRates(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantPrefixes []string
		wantErr      bool
	}{
		{
			name:         "valid records",
			content:      "212,0.05\n2125,0.03\n800,0.10\n",
			wantPrefixes: []string{"212", "2125", "800"},
		},
		{
			name:         "blank lines skipped",
			content:      "\n212,0.05\n\n800,0.10\n\n",
			wantPrefixes: []string{"212", "800"},
		},
		{
			name:         "duplicates pass through to the policy layer",
			content:      "555,0.10\n555,0.05\n",
			wantPrefixes: []string{"555", "555"},
		},
		{
			name:    "missing delimiter",
			content: "2120.05\n",
			wantErr: true,
		},
		{
			name:    "empty prefix",
			content: ",0.05\n",
			wantErr: true,
		},
		{
			name:    "prefix too short",
			content: "2,0.05\n",
			wantErr: true,
		},
		{
			name:    "prefix too long",
			content: "1234567890123456,0.05\n",
			wantErr: true,
		},
		{
			name:    "non-digit prefix",
			content: "21a,0.05\n",
			wantErr: true,
		},
		{
			name:    "bad cost",
			content: "212,cheap\n",
			wantErr: true,
		},
		{
			name:    "empty cost",
			content: "212,\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ReadRates(strings.NewReader(tt.content))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedRecord)
				return
			}
			require.NoError(t, err)

			var prefixes []string
			for _, rec := range records {
				prefixes = append(prefixes, rec.Prefix)
			}
			assert.Equal(t, tt.wantPrefixes, prefixes)
		})
	}
}

func TestReadRatesReportsLineNumber(t *testing.T) {
	_, err := ReadRates(strings.NewReader("212,0.05\nbroken\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadNumbers(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name:    "valid numbers",
			content: "4155551234\n2125550000\n",
			want:    []string{"4155551234", "2125550000"},
		},
		{
			name:    "blank lines skipped",
			content: "\n4155551234\n\n",
			want:    []string{"4155551234"},
		},
		{
			name:    "embedded delimiter rejected",
			content: "415,5551234\n",
			wantErr: true,
		},
		{
			name:    "too short",
			content: "4\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			numbers, err := ReadNumbers(strings.NewReader(tt.content))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedRecord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, numbers)
		})
	}
}

func TestReadRateFile(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "rates.csv")
	require.NoError(t, os.WriteFile(path, []byte("212,0.05\n"), 0644))

	records, err := ReadRateFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "212", records[0].Prefix)

	_, err = ReadRateFile(filepath.Join(tmpDir, "missing.csv"))
	assert.Error(t, err)
}

func TestValidNumber(t *testing.T) {
	assert.True(t, ValidNumber("41"))
	assert.True(t, ValidNumber("4155551234"))
	assert.False(t, ValidNumber(""))
	assert.False(t, ValidNumber("4"))
	assert.False(t, ValidNumber("415-555"))
}
