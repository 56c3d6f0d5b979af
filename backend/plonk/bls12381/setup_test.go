package bls12381_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	"github.com/stretchr/testify/require"

	"github.com/plonkcore/plonk/backend/plonk/bls12381"
	"github.com/plonkcore/plonk/composer"
	"github.com/plonkcore/plonk/internal/accelerator"
)

// newTestSRS builds a deterministic, test-only KZG SRS: production code must
// never call kzg.NewSRS with a fixed, known alpha.
func newTestSRS(t *testing.T, size uint64) kzg.SRS {
	t.Helper()
	srs, err := kzg.NewSRS(size, big.NewInt(987654321))
	require.NoError(t, err)
	return *srs
}

func buildSmallComposer(t *testing.T) *composer.Composer {
	t.Helper()
	c := composer.New(8)
	var three, four fr.Element
	three.SetUint64(3)
	four.SetUint64(4)
	a := c.AddInput(three)
	b := c.AddInput(four)
	sum := c.Add(a, b)
	c.Mul(sum, b)
	return c
}

func TestPreprocessProverPadsToPowerOfTwoDomain(t *testing.T) {
	assert := require.New(t)

	c := buildSmallComposer(t)
	srs := newTestSRS(t, 32)
	tr := bls12381.NewTranscript("test-circuit")

	pk, err := bls12381.PreprocessProver(c, srs, tr, accelerator.New())
	assert.NoError(err)
	assert.True(pk.N&(pk.N-1) == 0, "N=%d is not a power of two", pk.N)
	assert.GreaterOrEqual(int(pk.N), c.CircuitSize())
	assert.Equal(pk.N, pk.Domain.Cardinality)
	assert.Equal(4*pk.N, pk.Domain4.Cardinality)
	assert.Len(pk.VanishingPolyCoset, int(pk.Domain4.Cardinality))
	assert.Len(pk.LinearEvalsCoset, int(pk.Domain4.Cardinality))
}

func TestPreprocessVerifierMatchesProverCommitments(t *testing.T) {
	assert := require.New(t)

	c := buildSmallComposer(t)
	srs := newTestSRS(t, 32)

	pk, err := bls12381.PreprocessProver(c, srs, bls12381.NewTranscript("a"), accelerator.New())
	assert.NoError(err)

	vk, err := bls12381.PreprocessVerifier(buildSmallComposer(t), srs, bls12381.NewTranscript("a"), accelerator.New())
	assert.NoError(err)

	assert.True(pk.Vk.CQM.Equal(&vk.CQM))
	assert.True(pk.Vk.CSigmaF.Equal(&vk.CSigmaF))
	assert.Equal(pk.Vk.N, vk.N)
}

func TestPreprocessProverRejectsUndersizedSRS(t *testing.T) {
	assert := require.New(t)

	c := buildSmallComposer(t)
	srs := newTestSRS(t, 2)

	_, err := bls12381.PreprocessProver(c, srs, bls12381.NewTranscript("tiny"), accelerator.New())
	assert.Error(err)
}
