package transcript_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/plonkcore/plonk/transcript"
)

func TestChallengeScalarIsDeterministic(t *testing.T) {
	assert := require.New(t)

	var s fr.Element
	s.SetUint64(42)

	t1 := transcript.New("gamma", "alpha")
	assert.NoError(t1.AppendScalar("gamma", &s))
	c1, err := t1.ChallengeScalar("gamma")
	assert.NoError(err)

	t2 := transcript.New("gamma", "alpha")
	assert.NoError(t2.AppendScalar("gamma", &s))
	c2, err := t2.ChallengeScalar("gamma")
	assert.NoError(err)

	assert.True(c1.Equal(&c2), "same transcript label sequence must derive the same challenge")
}

func TestChallengeScalarDependsOnAppendedData(t *testing.T) {
	assert := require.New(t)

	var s1, s2 fr.Element
	s1.SetUint64(1)
	s2.SetUint64(2)

	ta := transcript.New("gamma")
	assert.NoError(ta.AppendScalar("gamma", &s1))
	ca, err := ta.ChallengeScalar("gamma")
	assert.NoError(err)

	tb := transcript.New("gamma")
	assert.NoError(tb.AppendScalar("gamma", &s2))
	cb, err := tb.ChallengeScalar("gamma")
	assert.NoError(err)

	assert.False(ca.Equal(&cb), "different appended scalars must derive different challenges")
}

func TestCircuitDomainSepChangesChallenge(t *testing.T) {
	assert := require.New(t)

	ta := transcript.New("zeta")
	assert.NoError(ta.CircuitDomainSep("zeta", 8))
	ca, err := ta.ChallengeScalar("zeta")
	assert.NoError(err)

	tb := transcript.New("zeta")
	assert.NoError(tb.CircuitDomainSep("zeta", 16))
	cb, err := tb.ChallengeScalar("zeta")
	assert.NoError(err)

	assert.False(ca.Equal(&cb))
}
