package permutation_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/plonkcore/plonk/permutation"
)

// buildConsistentWitness wires up a 4-gate circuit where every variable's
// occurrences all carry the same witness value (the copy-constraint
// invariant the permutation argument assumes), and returns the four
// evaluation-form wire vectors plus the matching sigma Lagrange encodings.
func buildConsistentWitness(val1, val2 fr.Element, domain *fft.Domain) (permutation.WireValues, [4][]fr.Element) {
	p := permutation.New()
	v0 := p.NewVariable()
	v1 := p.NewVariable()
	v2 := p.NewVariable()

	p.AddVariablesToMap(v1, v2, v1, v0, 0)
	p.AddVariablesToMap(v2, v1, v2, v0, 1)
	p.AddVariablesToMap(v1, v1, v1, v0, 2)
	p.AddVariablesToMap(v2, v2, v2, v0, 3)

	var zero fr.Element
	wires := permutation.WireValues{
		L: []fr.Element{val1, val2, val1, val2},
		R: []fr.Element{val2, val1, val1, val2},
		O: []fr.Element{val1, val2, val1, val2},
		F: []fr.Element{zero, zero, zero, zero},
	}

	sigma := p.ComputeSigmaPermutations(4)
	var sigmaEvals [4][]fr.Element
	for w := permutation.WireLeft; w <= permutation.WireFourth; w++ {
		sigmaEvals[w] = permutation.ComputePermutationLagrange(sigma[w], domain)
	}
	return wires, sigmaEvals
}

func TestAccumulatorStartsAtOne(t *testing.T) {
	assert := require.New(t)

	domain := fft.NewDomain(4)
	var val1, val2, beta, gamma fr.Element
	val1.SetUint64(11)
	val2.SetUint64(22)
	beta.SetUint64(3)
	gamma.SetUint64(5)

	wires, sigmaEvals := buildConsistentWitness(val1, val2, domain)
	z := permutation.ComputeAccumulatorEvaluations(domain, wires, beta, gamma, sigmaEvals)
	assert.True(z[0].IsOne())
}

// TestAccumulatorClosesToOne checks property P5: for witness values that
// satisfy every copy constraint, the grand product must wrap back to 1
// regardless of the (nonzero) Fiat-Shamir challenges beta and gamma.
func TestAccumulatorClosesToOne(t *testing.T) {
	assert := require.New(t)

	domain := fft.NewDomain(4)
	var val1, val2, beta, gamma fr.Element
	val1.SetUint64(11)
	val2.SetUint64(22)
	beta.SetUint64(9)
	gamma.SetUint64(4)

	wires, sigmaEvals := buildConsistentWitness(val1, val2, domain)
	z := permutation.ComputeAccumulatorEvaluations(domain, wires, beta, gamma, sigmaEvals)
	closure := permutation.AccumulatorClosure(domain, z, wires, beta, gamma, sigmaEvals)
	assert.True(closure.IsOne(), "Z must close back to 1 for a consistent witness")
}

func TestAccumulatorClosureHoldsForRandomChallenges(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	domain := fft.NewDomain(4)
	var val1, val2 fr.Element
	val1.SetUint64(11)
	val2.SetUint64(22)
	wires, sigmaEvals := buildConsistentWitness(val1, val2, domain)

	properties.Property("Z[n] == 1 for any nonzero beta, gamma", prop.ForAll(
		func(betaSeed, gammaSeed uint64) bool {
			var beta, gamma fr.Element
			beta.SetUint64(betaSeed + 1)
			gamma.SetUint64(gammaSeed + 1)

			z := permutation.ComputeAccumulatorEvaluations(domain, wires, beta, gamma, sigmaEvals)
			closure := permutation.AccumulatorClosure(domain, z, wires, beta, gamma, sigmaEvals)
			return closure.IsOne()
		},
		gen.UInt64Range(0, 1<<20),
		gen.UInt64Range(0, 1<<20),
	))

	properties.TestingRun(t)
}
