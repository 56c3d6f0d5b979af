package bls12381

import (
	"runtime"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"

	"github.com/plonkcore/plonk/internal/polyutil"
)

// multiExpConfig returns the ecc.MultiExpConfig every verifier-side MSM in
// this package shares: parallelised across the host's cores.
func multiExpConfig() ecc.MultiExpConfig {
	return ecc.MultiExpConfig{NbTasks: runtime.NumCPU()}
}

// polyScale returns a fresh slice holding coeffs scaled by s, the building
// block every term below uses to fold a selector polynomial's contribution
// into the running linearisation polynomial.
func polyScale(coeffs []fr.Element, s fr.Element) []fr.Element {
	out := make([]fr.Element, len(coeffs))
	for i, c := range coeffs {
		out[i].Mul(&c, &s)
	}
	return out
}

func polyAddInPlace(dst, src []fr.Element) []fr.Element {
	if len(src) > len(dst) {
		grown := make([]fr.Element, len(src))
		copy(grown, dst)
		dst = grown
	}
	for i, c := range src {
		dst[i].Add(&dst[i], &c)
	}
	return dst
}

// LinearisationInputs bundles the evaluations and separation challenges
// computed during the prover's round 4 (spec.md §4.6) that
// ComputeLinearisationPolynomial needs to fold ten selector polynomials
// (every selector except q_arith), the fourth sigma polynomial and the
// accumulator polynomial into a single polynomial r(X) whose opening at the
// challenge point z substitutes for opening those polynomials separately.
// The quotient chunks are not part of r(X).
type LinearisationInputs struct {
	PK *ProverKey

	ZPoly []fr.Element // accumulator polynomial, coefficient form

	Eval ProofEvaluations

	ZChallenge                     fr.Element
	Alpha, Beta, Gamma              fr.Element
	RangeSep, LogicSep, FixedBaseSep, VarBaseSep fr.Element
	L1Eval                          fr.Element
}

// ComputeLinearisationPolynomial returns r(X) in coefficient form, grounded
// on proof.rs::compute_linearisation_commitment: every gate family
// contributes qFamily(X) scaled by the evaluated witness/selector values at
// z (so only one selector polynomial, not every wire, needs to stay in
// polynomial form here), and the permutation argument contributes both
// Z(X) (scaled by the grand-product's "forward" factor at z) and sigmaF(X)
// (scaled by the "backward" factor), exactly the two terms that let the
// verifier reconstruct the same commitment from vk's commitments alone.
func ComputeLinearisationPolynomial(in LinearisationInputs) []fr.Element {
	sel := in.PK.Selectors
	e := in.Eval

	r := make([]fr.Element, len(sel.QM))

	// arithmetic: qM*a*b + qL*a + qR*b + qO*c + q4*d + qC
	var t fr.Element
	t.Mul(&e.AEval, &e.BEval)
	r = polyAddInPlace(r, polyScale(sel.QM, t))
	r = polyAddInPlace(r, polyScale(sel.QL, e.AEval))
	r = polyAddInPlace(r, polyScale(sel.QR, e.BEval))
	r = polyAddInPlace(r, polyScale(sel.QO, e.CEval))
	r = polyAddInPlace(r, polyScale(sel.Q4, e.DEval))
	r = polyAddInPlace(r, sel.QC)

	k1 := fr.Element{}
	k1.SetUint64(7)
	k2 := fr.Element{}
	k2.SetUint64(13)
	k3 := fr.Element{}
	k3.SetUint64(17)

	// permutation forward factor: (a+beta*z+gamma)(b+beta*k1*z+gamma)
	// (o+beta*k2*z+gamma)(d+beta*k3*z+gamma)*alpha + alpha^2*L1(z), scales Z(X)
	mulAdd := func(w, kTimesZ, beta, gamma fr.Element) fr.Element {
		var out, bt fr.Element
		bt.Mul(&beta, &kTimesZ)
		out.Add(&w, &bt)
		out.Add(&out, &gamma)
		return out
	}
	var kz1, kz2, kz3 fr.Element
	kz1.Mul(&k1, &in.ZChallenge)
	kz2.Mul(&k2, &in.ZChallenge)
	kz3.Mul(&k3, &in.ZChallenge)

	fwd := mulAdd(e.AEval, in.ZChallenge, in.Beta, in.Gamma)
	f1 := mulAdd(e.BEval, kz1, in.Beta, in.Gamma)
	f2 := mulAdd(e.CEval, kz2, in.Beta, in.Gamma)
	f3 := mulAdd(e.DEval, kz3, in.Beta, in.Gamma)
	fwd.Mul(&fwd, &f1)
	fwd.Mul(&fwd, &f2)
	fwd.Mul(&fwd, &f3)
	fwd.Mul(&fwd, &in.Alpha)

	var alphaSq, l1Term fr.Element
	alphaSq.Mul(&in.Alpha, &in.Alpha)
	l1Term.Mul(&in.L1Eval, &alphaSq)
	fwd.Add(&fwd, &l1Term)

	r = polyAddInPlace(r, polyScale(in.ZPoly, fwd))

	// permutation backward factor: -alpha*beta*zNextEval*
	// (a+beta*sigmaL+gamma)(b+beta*sigmaR+gamma)(o+beta*sigmaO+gamma), scales
	// sigmaF(X) (the one sigma polynomial not yet evaluated and committed to
	// separately from Z(X) in this term).
	bwd := mulAdd(e.AEval, e.LeftSigmaEval, in.Beta, in.Gamma)
	b1 := mulAdd(e.BEval, e.RightSigmaEval, in.Beta, in.Gamma)
	b2 := mulAdd(e.CEval, e.OutSigmaEval, in.Beta, in.Gamma)
	bwd.Mul(&bwd, &b1)
	bwd.Mul(&bwd, &b2)
	bwd.Mul(&bwd, &in.Alpha)
	bwd.Mul(&bwd, &in.Beta)
	bwd.Mul(&bwd, &e.PermutationEval)
	bwd.Neg(&bwd)

	r = polyAddInPlace(r, polyScale(sel.SigmaF, bwd))

	// range/logic/ecc families contribute their selector polynomial scaled
	// by the row identity evaluated at z: in.RangeSep etc. already carry the
	// bare identity (RangeIdentity et al., computed by the caller from the
	// proof's z/z*omega evaluations) times the family's separation
	// challenge, so only the selector itself stays a full polynomial here.
	r = polyAddInPlace(r, polyScale(sel.QRange, in.RangeSep))
	r = polyAddInPlace(r, polyScale(sel.QLogic, in.LogicSep))
	r = polyAddInPlace(r, polyScale(sel.QFixedGroupAdd, in.FixedBaseSep))
	r = polyAddInPlace(r, polyScale(sel.QVariableGroupAdd, in.VarBaseSep))

	return r
}

// EvalLinearisationAtZ evaluates r(X) at z, the scalar the proof actually
// carries (linearisation_polynomial_eval): committing to r(X) and opening
// it once at z is cheaper than opening every constituent polynomial.
func EvalLinearisationAtZ(r []fr.Element, z fr.Element) fr.Element {
	return polyutil.EvalPolynomial(r, z)
}

// msmScalarsPoints accumulates (scalar, point) pairs for the verifier's
// final multi-scalar multiplication, mirroring compute_linearisation_commitment's
// `scalars`/`points` vector-building idiom.
type msmScalarsPoints struct {
	Scalars []fr.Element
	Points  []kzg.Digest
}

func (m *msmScalarsPoints) add(scalar fr.Element, point kzg.Digest) {
	m.Scalars = append(m.Scalars, scalar)
	m.Points = append(m.Points, point)
}

// ComputeLinearisationCommitment reconstructs [r]_1 from vk's commitments
// and the proof's evaluations, the verifier-side counterpart to
// ComputeLinearisationPolynomial: same scalar coefficients, but applied to
// commitments via an MSM instead of to polynomials via scalar multiplication
// of coefficient vectors.
func ComputeLinearisationCommitment(vk *VerifierKey, e ProofEvaluations, zComm kzg.Digest, zChallenge, alpha, beta, gamma, l1Eval, rangeSep, logicSep, fixedBaseSep, varBaseSep fr.Element) (kzg.Digest, error) {
	acc := &msmScalarsPoints{}

	var t fr.Element
	t.Mul(&e.AEval, &e.BEval)
	acc.add(t, vk.CQM)
	acc.add(e.AEval, vk.CQL)
	acc.add(e.BEval, vk.CQR)
	acc.add(e.CEval, vk.CQO)
	acc.add(e.DEval, vk.CQ4)
	one := fr.Element{}
	one.SetOne()
	acc.add(one, vk.CQC)

	k1 := fr.Element{}
	k1.SetUint64(7)
	k2 := fr.Element{}
	k2.SetUint64(13)
	k3 := fr.Element{}
	k3.SetUint64(17)

	mulAdd := func(w, kTimesZ, beta, gamma fr.Element) fr.Element {
		var out, bt fr.Element
		bt.Mul(&beta, &kTimesZ)
		out.Add(&w, &bt)
		out.Add(&out, &gamma)
		return out
	}
	var kz1, kz2, kz3 fr.Element
	kz1.Mul(&k1, &zChallenge)
	kz2.Mul(&k2, &zChallenge)
	kz3.Mul(&k3, &zChallenge)

	fwd := mulAdd(e.AEval, zChallenge, beta, gamma)
	f1 := mulAdd(e.BEval, kz1, beta, gamma)
	f2 := mulAdd(e.CEval, kz2, beta, gamma)
	f3 := mulAdd(e.DEval, kz3, beta, gamma)
	fwd.Mul(&fwd, &f1)
	fwd.Mul(&fwd, &f2)
	fwd.Mul(&fwd, &f3)
	fwd.Mul(&fwd, &alpha)

	var alphaSq, l1Term fr.Element
	alphaSq.Mul(&alpha, &alpha)
	l1Term.Mul(&l1Eval, &alphaSq)
	fwd.Add(&fwd, &l1Term)
	acc.add(fwd, zComm)

	bwd := mulAdd(e.AEval, e.LeftSigmaEval, beta, gamma)
	b1 := mulAdd(e.BEval, e.RightSigmaEval, beta, gamma)
	b2 := mulAdd(e.CEval, e.OutSigmaEval, beta, gamma)
	bwd.Mul(&bwd, &b1)
	bwd.Mul(&bwd, &b2)
	bwd.Mul(&bwd, &alpha)
	bwd.Mul(&bwd, &beta)
	bwd.Mul(&bwd, &e.PermutationEval)
	bwd.Neg(&bwd)
	acc.add(bwd, vk.CSigmaF)

	acc.add(rangeSep, vk.CQRange)
	acc.add(logicSep, vk.CQLogic)
	acc.add(fixedBaseSep, vk.CQFixedGroupAdd)
	acc.add(varBaseSep, vk.CQVariableGroupAdd)

	var result kzg.Digest
	_, err := result.MultiExp(acc.Points, acc.Scalars, multiExpConfig())
	return result, err
}
