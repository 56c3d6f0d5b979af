package bls12381

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/plonkcore/plonk/perr"
)

// vanishingPolyAtZeta returns Z_H(zeta) = zeta^N - 1, the divisor both the
// prover's quotient identity and the verifier's final check divide by.
func vanishingPolyAtZeta(zeta fr.Element, n uint64) fr.Element {
	var zetaN, one fr.Element
	one.SetOne()
	zetaN.Exp(zeta, new(big.Int).SetUint64(n))
	zetaN.Sub(&zetaN, &one)
	return zetaN
}

// l1AtZeta evaluates L1(X), the Lagrange basis polynomial for the domain's
// first root of unity, at zeta: L1(zeta) = (zeta^N - 1) / (N*(zeta - 1)).
func l1AtZeta(zeta fr.Element, n uint64, nInv fr.Element) fr.Element {
	zh := vanishingPolyAtZeta(zeta, n)
	var one, denom, out fr.Element
	one.SetOne()
	denom.Sub(&zeta, &one)
	out.Mul(&zh, &nInv)
	var denomInv fr.Element
	denomInv.Inverse(&denom)
	out.Mul(&out, &denomInv)
	return out
}

// piPositions bundles the sparse public-input description VerifierData
// hands the verifier: which gate rows carry a public input, and what value
// each one is instantiated with for this particular proof.
type piPositions struct {
	Positions []int
	Values    []fr.Element
}

// evaluatePIAtZeta computes PI(zeta) via barycentric Lagrange interpolation,
// the verifier's counterpart to the prover directly IFFT-ing the dense PI
// vector it already holds as a composer. PI(X) is zero at every row not in
// Positions and equals -Values[k] at row Positions[k], so
// PI(zeta) = sum_k (-Values[k]) * L_{Positions[k]}(zeta), with
// L_i(zeta) = Z_H(zeta) * omega^i / (N * (zeta - omega^i)).
func evaluatePIAtZeta(pi piPositions, n uint64, generator, zeta fr.Element) (fr.Element, error) {
	if len(pi.Positions) != len(pi.Values) {
		return fr.Element{}, perr.ErrPublicInputPositionMismatch
	}

	zh := vanishingPolyAtZeta(zeta, n)
	var nFe fr.Element
	nFe.SetUint64(n)

	var sum fr.Element
	for k, pos := range pi.Positions {
		var omegaI fr.Element
		omegaI.Exp(generator, new(big.Int).SetInt64(int64(pos)))

		var denom fr.Element
		denom.Sub(&zeta, &omegaI)
		denom.Mul(&denom, &nFe)
		var denomInv fr.Element
		denomInv.Inverse(&denom)

		var li fr.Element
		li.Mul(&zh, &omegaI)
		li.Mul(&li, &denomInv)

		var negValue, term fr.Element
		negValue.Neg(&pi.Values[k])
		term.Mul(&negValue, &li)
		sum.Add(&sum, &term)
	}
	return sum, nil
}
