package circuitprofile

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/plonkcore/plonk/composer"
)

func fieldElement(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func buildSample(t *testing.T) *composer.Composer {
	t.Helper()
	c := composer.New(16)
	a := c.AddInput(fieldElement(3))
	b := c.AddInput(fieldElement(4))
	c.Add(a, b)
	c.Mul(a, b)
	require.NoError(t, c.RangeGate(a, 4))
	return c
}

func rowKindNoneCount(c *composer.Composer) int {
	n := 0
	for i := 0; i < c.CircuitSize(); i++ {
		if classifyRow(c, i) == rowKindNone {
			n++
		}
	}
	return n
}

func TestProfileCountsRows(t *testing.T) {
	c := buildSample(t)

	p, err := Profile(c)
	require.NoError(t, err)
	require.NoError(t, p.CheckValid())

	total := int64(0)
	for _, s := range p.Sample {
		total += s.Value[0]
	}
	require.Equal(t, int64(c.CircuitSize()), total+int64(rowKindNoneCount(c)))
}

func TestEncodeDecodeRowKindsRoundTrips(t *testing.T) {
	c := buildSample(t)

	packed, err := EncodeRowKinds(c)
	require.NoError(t, err)

	kinds, err := DecodeRowKinds(packed, c.CircuitSize())
	require.NoError(t, err)
	require.Len(t, kinds, c.CircuitSize())

	for i, k := range kinds {
		require.Equal(t, classifyRow(c, i), k)
	}
}
