package permutation

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/plonkcore/plonk/internal/polyutil"
)

// EncodeWireSlot maps a WireSlot (wire, i) to k_wire * omega^i, per spec.md
// §3/§4.4 (property P4). For wire = L this is simply omega^i since k_L = 1.
func EncodeWireSlot(s WireSlot, domain *fft.Domain) fr.Element {
	k := CosetConstant(s.Wire)
	var omegaI fr.Element
	omegaI.Exp(domain.Generator, big.NewInt(int64(s.Gate)))
	var out fr.Element
	out.Mul(&k, &omegaI)
	return out
}

// ComputePermutationLagrange encodes a length-n sigma sequence into its
// Lagrange-basis (evaluation) form.
func ComputePermutationLagrange(sigma []WireSlot, domain *fft.Domain) []fr.Element {
	out := make([]fr.Element, len(sigma))
	for i, s := range sigma {
		out[i] = EncodeWireSlot(s, domain)
	}
	return out
}

// ComputeSigmaPolynomials returns the four sigma polynomials in coefficient
// form, obtained by inverse-FFT of their Lagrange encodings.
func (p *Permutation) ComputeSigmaPolynomials(n int, domain *fft.Domain) (sigmaL, sigmaR, sigmaO, sigmaF []fr.Element) {
	sigma := p.ComputeSigmaPermutations(n)
	lagrange := [4][]fr.Element{
		ComputePermutationLagrange(sigma[WireLeft], domain),
		ComputePermutationLagrange(sigma[WireRight], domain),
		ComputePermutationLagrange(sigma[WireOutput], domain),
		ComputePermutationLagrange(sigma[WireFourth], domain),
	}
	return polyutil.IFFT(domain, lagrange[0]),
		polyutil.IFFT(domain, lagrange[1]),
		polyutil.IFFT(domain, lagrange[2]),
		polyutil.IFFT(domain, lagrange[3])
}
