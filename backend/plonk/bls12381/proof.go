package bls12381

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
)

// ProofEvaluations bundles every scalar evaluation the proof carries besides
// the polynomial commitments themselves: the witness wires and their
// rotated (next-row) counterparts, the selectors the linearisation step
// needs evaluated rather than committed, the sigma polynomials, and the
// accumulator and linearisation evaluations. Field set mirrors the original
// ProofEvaluations one-for-one (a/b/c/d, *_next, q_arith/q_c/q_l/q_r,
// left/right/out sigma, linearisation_polynomial_eval, permutation_eval),
// generalized with a fourth-wire sigma entry this arithmetization adds.
type ProofEvaluations struct {
	AEval, BEval, CEval, DEval          fr.Element
	ANextEval, BNextEval, DNextEval     fr.Element
	QArithEval, QCEval, QLEval, QREval  fr.Element
	LeftSigmaEval, RightSigmaEval       fr.Element
	OutSigmaEval, FourthSigmaEval       fr.Element
	LinearisationPolynomialEval         fr.Element
	PermutationEval                     fr.Element
}

// Proof is everything the verifier needs to check a single circuit
// instance's satisfiability: the witness, accumulator and quotient
// commitments, the two KZG opening proofs, and the evaluation set above.
// Mirrors the original Proof struct's field set one-for-one, generalized
// from a three-way split quotient commitment to this arithmetization's
// four-way split (the quotient's degree grows with an extra wire and more
// gate identities, so it no longer fits in three SRS-sized chunks).
type Proof struct {
	ACommit, BCommit, CCommit, DCommit kzg.Digest
	ZCommit                           kzg.Digest
	T1Commit, T2Commit, T3Commit, T4Commit kzg.Digest
	WZCommit, WZWCommit               kzg.Digest

	Evaluations ProofEvaluations
}
