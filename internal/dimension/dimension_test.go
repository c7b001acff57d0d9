package dimension

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrderAndWeights(t *testing.T) {
	want := []struct {
		name   string
		weight float64
	}{
		{Safety, 1.5}, {Health, 1.5}, {Time, 1.5}, {Freedom, 1.2},
		{Connection, 1.0}, {Growth, 1.2}, {Meaning, 1.0},
	}

	all := All()
	require.Len(t, all, len(want))
	for i, w := range want {
		assert.Equal(t, w.name, all[i].Name)
		assert.Equal(t, w.weight, all[i].Weight)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Weight = 99

	d, ok := Lookup(Safety)
	require.True(t, ok)
	assert.Equal(t, 1.5, d.Weight)
}

func TestLookupAndIndex(t *testing.T) {
	d, ok := Lookup(Growth)
	require.True(t, ok)
	assert.Equal(t, 1.2, d.Weight)
	assert.Equal(t, 5, Index(Growth))

	_, ok = Lookup("Luck")
	assert.False(t, ok)
	assert.Equal(t, -1, Index("Luck"))
}

func TestCeiling(t *testing.T) {
	d, _ := Lookup(Freedom)
	assert.InDelta(t, 120.0, d.Ceiling(), 1e-9)
}

func TestScoresSumIgnoresUnknown(t *testing.T) {
	s := Scores{Safety: 2, Meaning: 3, "Luck": 100}
	assert.InDelta(t, 5.0, s.Sum(), 1e-9)
	assert.Equal(t, 0.0, s.Get(Health))
}

func TestScoresMarshalCatalogOrder(t *testing.T) {
	s := Scores{Meaning: 1, Safety: 2.5, "Zeal": 4, Time: 0, "Alpha": 3}

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"Safety":2.5,"Time":0,"Meaning":1,"Alpha":3,"Zeal":4}`, string(b))

	var back Scores
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, s, back)
}

func TestScoresMarshalEmpty(t *testing.T) {
	b, err := json.Marshal(Scores(nil))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}
