package composer_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/plonkcore/plonk/composer"
	"github.com/plonkcore/plonk/perr"
)

func TestAddAndMul(t *testing.T) {
	assert := require.New(t)

	c := composer.New(16)
	var three, four fr.Element
	three.SetUint64(3)
	four.SetUint64(4)

	a := c.AddInput(three)
	b := c.AddInput(four)

	sum := c.Add(a, b)
	prod := c.Mul(a, b)

	var wantSum, wantProd fr.Element
	wantSum.SetUint64(7)
	wantProd.SetUint64(12)

	assert.True(c.Variables[sum].Equal(&wantSum))
	assert.True(c.Variables[prod].Equal(&wantProd))
	// +1 for the ZeroVar-constraining row New() emits (invariant I4).
	assert.Equal(3, c.CircuitSize())
}

func TestConstrainToConstant(t *testing.T) {
	assert := require.New(t)

	c := composer.New(4)
	var five fr.Element
	five.SetUint64(5)
	v := c.AddInput(five)
	c.ConstrainToConstant(v, five)

	// +1 for the ZeroVar-constraining row New() emits (invariant I4); the
	// five-constraint gate itself lands at index 1.
	assert.Equal(2, c.CircuitSize())
	assert.True(c.QL[1].IsOne())
}

func TestRangeGateRejectsOddBitWidth(t *testing.T) {
	assert := require.New(t)

	c := composer.New(64)
	var v fr.Element
	v.SetUint64(7)
	w := c.AddInput(v)

	err := c.RangeGate(w, 7)
	assert.ErrorIs(err, perr.ErrOddRangeBitCount)
}

func TestRangeGateAcceptsInRangeWitness(t *testing.T) {
	assert := require.New(t)

	c := composer.New(64)
	var v fr.Element
	v.SetUint64(1<<10 - 1)
	w := c.AddInput(v)

	err := c.RangeGate(w, 16)
	assert.NoError(err)
	assert.Greater(c.CircuitSize(), 0)
}
