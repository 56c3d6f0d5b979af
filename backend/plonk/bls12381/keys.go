// Package bls12381 implements the PLONK backend (preprocessing, proving,
// verification) over the BLS12-381 scalar field, instantiated with
// gnark-crypto's KZG commitment scheme.
package bls12381

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
)

// SelectorPolynomials bundles the circuit's eleven selector polynomials and
// four sigma (copy-constraint) polynomials, the unit preprocessing operates
// on. Mirrors the original SelectorPolynomials struct, generalized from its
// three-selector/three-sigma layout to this arithmetization's
// eleven-selector/four-sigma one.
type SelectorPolynomials struct {
	QM, QL, QR, QO, Q4, QC             []fr.Element
	QArith, QRange, QLogic             []fr.Element
	QFixedGroupAdd, QVariableGroupAdd  []fr.Element

	SigmaL, SigmaR, SigmaO, SigmaF []fr.Element
}

// ProverKey holds everything the prover needs once a circuit has been
// preprocessed: the canonical-form selector/sigma polynomials, their
// evaluations over the 4N coset (where the quotient polynomial identity is
// checked), the vanishing-polynomial and L1 evaluations over that same
// coset, and the embedded VerifierKey (so Prove never needs a second input).
type ProverKey struct {
	N       uint64
	Domain  *fft.Domain
	Domain4 *fft.Domain

	Selectors SelectorPolynomials

	// Coset evaluations (over Domain4, shifted by FrMultiplicativeGen) of
	// every polynomial in Selectors, in the same field order.
	SelectorsCoset SelectorPolynomials

	// LinearEvalsCoset holds L1(X) (the Lagrange basis polynomial for the
	// first root of unity) evaluated over the 4N coset; the permutation
	// check's L1(X)*(Z(X)-1) term reads this directly instead of
	// recomputing L1 at every quotient evaluation point.
	LinearEvalsCoset []fr.Element

	// VanishingPolyCoset holds X^N - 1 evaluated over the 4N coset, the
	// divisor the quotient polynomial identity is checked against.
	VanishingPolyCoset []fr.Element

	CommitKey kzg.ProvingKey

	Vk *VerifierKey
}

// VerifierKey holds the data needed to verify a proof: the circuit's size
// parameters and the KZG commitments to every selector and sigma
// polynomial, established once at preprocessing time and reused by every
// subsequent VerifyProof call against this circuit.
type VerifierKey struct {
	N         uint64
	NInv      fr.Element
	Generator fr.Element

	Kzg kzg.VerifyingKey

	CQM, CQL, CQR, CQO, CQ4, CQC            kzg.Digest
	CQArith, CQRange, CQLogic                kzg.Digest
	CQFixedGroupAdd, CQVariableGroupAdd      kzg.Digest

	CSigmaL, CSigmaR, CSigmaO, CSigmaF kzg.Digest
}
