package route

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-routing/internal/rates"
)

// fakeTable is a Backend stub that records Close calls.
type fakeTable struct {
	costs  map[string]string
	closed bool
}

func (f *fakeTable) LookupExact(prefix string) (decimal.Decimal, bool, error) {
	s, ok := f.costs[prefix]
	if !ok {
		return decimal.Decimal{}, false, nil
	}
	return decimal.RequireFromString(s), true, nil
}

func (f *fakeTable) Len() int { return len(f.costs) }

func (f *fakeTable) Close() error {
	f.closed = true
	return nil
}

func TestRegistryCarrier(t *testing.T) {
	reg := NewRegistry()
	table := &fakeTable{costs: map[string]string{"212": "0.05"}}
	reg.Install("telA", table)

	got, err := reg.Carrier("telA")
	require.NoError(t, err)
	assert.Equal(t, rates.Backend(table), got)

	_, err = reg.Carrier("telZ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCarrier)
}

func TestRegistryInstallReplaces(t *testing.T) {
	reg := NewRegistry()
	old := &fakeTable{costs: map[string]string{"212": "0.05"}}
	reg.Install("telA", old)

	replacement := &fakeTable{costs: map[string]string{"212": "0.04"}}
	reg.Install("telA", replacement)

	assert.True(t, old.closed, "replaced table must be closed")
	assert.Equal(t, 1, reg.Len())

	cost, ok, err := reg.ResolveCarrier("telA", "2125551234")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "0.04", cost.String())
}

func TestRegistryCarrierIDsSorted(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		reg.Install(id, &fakeTable{})
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.CarrierIDs())
}

func TestRegistryClose(t *testing.T) {
	reg := NewRegistry()
	a := &fakeTable{}
	b := &fakeTable{}
	reg.Install("telA", a)
	reg.Install("telB", b)

	require.NoError(t, reg.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.Equal(t, 0, reg.Len())
}
