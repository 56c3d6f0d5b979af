package permutation_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/stretchr/testify/require"

	"github.com/plonkcore/plonk/internal/polyutil"
	"github.com/plonkcore/plonk/permutation"
)

// TestEncodeWireSlotIsInjectiveAcrossWires checks property P4: the four
// k_wire cosets never collide with each other or with the base subgroup, so
// no two distinct (wire, gate) pairs ever encode to the same field element
// within one domain.
func TestEncodeWireSlotIsInjectiveAcrossWires(t *testing.T) {
	assert := require.New(t)

	domain := fft.NewDomain(8)
	seen := map[string]permutation.WireSlot{}
	for w := permutation.WireLeft; w <= permutation.WireFourth; w++ {
		for g := 0; g < 8; g++ {
			slot := permutation.WireSlot{Wire: w, Gate: g}
			enc := permutation.EncodeWireSlot(slot, domain)
			key := enc.String()
			if prior, ok := seen[key]; ok {
				t.Fatalf("collision between %+v and %+v", prior, slot)
			}
			seen[key] = slot
		}
	}
	assert.Len(seen, 32)
}

// TestComputeSigmaPolynomialsRoundTripsThroughLagrange checks that
// interpolating the sigma polynomials back out via forward FFT reproduces
// the Lagrange encodings ComputeSigmaPermutations/EncodeWireSlot built.
func TestComputeSigmaPolynomialsRoundTripsThroughLagrange(t *testing.T) {
	assert := require.New(t)

	n := 8
	domain := fft.NewDomain(uint64(n))

	p := permutation.New()
	v1 := p.NewVariable()
	v2 := p.NewVariable()
	p.AddVariablesToMap(v1, v2, v1, v2, 0)
	p.AddVariablesToMap(v2, v1, v2, v1, 1)

	sigmaL, sigmaR, sigmaO, sigmaF := p.ComputeSigmaPolynomials(n, domain)
	assert.Len(sigmaL, n)
	assert.Len(sigmaR, n)
	assert.Len(sigmaO, n)
	assert.Len(sigmaF, n)

	gotL := polyutil.FFT(domain, sigmaL)
	sigma := p.ComputeSigmaPermutations(n)
	wantL := permutation.ComputePermutationLagrange(sigma[permutation.WireLeft], domain)

	for i := range wantL {
		assert.True(gotL[i].Equal(&wantL[i]), "sigma_L mismatch at index %d", i)
	}
}
