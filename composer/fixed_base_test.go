package composer_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
	"github.com/stretchr/testify/require"

	"github.com/plonkcore/plonk/composer"
)

func TestFixedBaseScalarMulMatchesScalarMultiplication(t *testing.T) {
	assert := require.New(t)

	base := twistededwards.GetEdwardsCurve().Base

	for _, k := range []uint64{0, 1, 2, 3, 7, 1023} {
		var scalar fr.Element
		scalar.SetUint64(k)

		c := composer.New(4096)
		s := c.AddInput(scalar)
		got := c.FixedBaseScalarMul(s, base)

		var kBig big.Int
		scalar.ToBigIntRegular(&kBig)
		var want twistededwards.PointAffine
		want.ScalarMultiplication(&base, &kBig)

		assert.True(c.Variables[got.X].Equal(&want.X), "k=%d: X mismatch", k)
		assert.True(c.Variables[got.Y].Equal(&want.Y), "k=%d: Y mismatch", k)
	}
}
