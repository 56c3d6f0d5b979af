package bls12381

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"

	"github.com/plonkcore/plonk/composer"
	"github.com/plonkcore/plonk/internal/accelerator"
	"github.com/plonkcore/plonk/internal/polyutil"
	"github.com/plonkcore/plonk/internal/zlog"
	"github.com/plonkcore/plonk/permutation"
	"github.com/plonkcore/plonk/transcript"
)

// blindPoly adds (b1+b2*X)*(X^n-1) to coeffs (a length-n coefficient-form
// polynomial), the standard PLONK hiding technique: the two random terms
// vanish on the evaluation domain, so every Lagrange-form value the circuit
// actually cares about is unaffected, but the committed polynomial's
// coefficients (and hence any opening outside the domain) reveal nothing
// about the witness beyond what the opened evaluations themselves leak.
func blindPoly(coeffs []fr.Element, n int, b1, b2 fr.Element) []fr.Element {
	out := make([]fr.Element, n+2)
	copy(out, coeffs)
	var negB1, negB2 fr.Element
	negB1.Neg(&b1)
	negB2.Neg(&b2)
	out[0].Add(&out[0], &negB1)
	out[1].Add(&out[1], &negB2)
	out[n].Add(&out[n], &b1)
	out[n+1].Add(&out[n+1], &b2)
	return out
}

func randomScalar() (fr.Element, error) {
	var s fr.Element
	if _, err := s.SetRandom(); err != nil {
		return fr.Element{}, err
	}
	return s, nil
}

// padWireValues reads wire's assigned values out of c.Variables into a
// length-n Lagrange-form vector; rows beyond len(wire) are left at their
// zero value, matching how pad() zero-extends the selector vectors those
// rows pair with.
func padWireValues(c *composer.Composer, wire []composer.Variable, n uint64) []fr.Element {
	out := make([]fr.Element, n)
	for i, v := range wire {
		out[i] = c.Variables[v]
	}
	return out
}

// Prove runs the five-round PLONK prover protocol (spec.md §4.6) against a
// composer already replayed against the same circuit pk was preprocessed
// from, producing a proof tr's caller can hand to Verify together with the
// matching VerifierKey.
func Prove(pk *ProverKey, c *composer.Composer, tr *transcript.Transcript, acc accelerator.Accelerator) (*Proof, error) {
	n := pk.N
	zlog.Logger().Debug().Uint64("circuit_size", n).Msg("round 1: committing wire polynomials")

	aLag := padWireValues(c, c.WL, n)
	bLag := padWireValues(c, c.WR, n)
	oLag := padWireValues(c, c.WO, n)
	dLag := padWireValues(c, c.W4, n)

	aCoeffs := polyutil.IFFT(pk.Domain, aLag)
	bCoeffs := polyutil.IFFT(pk.Domain, bLag)
	oCoeffs := polyutil.IFFT(pk.Domain, oLag)
	dCoeffs := polyutil.IFFT(pk.Domain, dLag)

	blinds := make([]fr.Element, 10)
	for i := range blinds {
		s, err := randomScalar()
		if err != nil {
			return nil, err
		}
		blinds[i] = s
	}

	// Round 1: commit the blinded wire polynomials.
	aBlinded := blindPoly(aCoeffs, int(n), blinds[0], blinds[1])
	bBlinded := blindPoly(bCoeffs, int(n), blinds[2], blinds[3])
	oBlinded := blindPoly(oCoeffs, int(n), blinds[4], blinds[5])
	dBlinded := blindPoly(dCoeffs, int(n), blinds[6], blinds[7])

	wireCommits, err := acc.CommitBatch([][]fr.Element{aBlinded, bBlinded, oBlinded, dBlinded}, pk.CommitKey)
	if err != nil {
		return nil, err
	}
	aCommit, bCommit, oCommit, dCommit := wireCommits[0], wireCommits[1], wireCommits[2], wireCommits[3]
	for _, cm := range []kzg.Digest{aCommit, bCommit, oCommit, dCommit} {
		cm := cm
		if err := tr.AppendCommitment("beta", &cm); err != nil {
			return nil, err
		}
	}

	beta, err := tr.ChallengeScalar("beta")
	if err != nil {
		return nil, err
	}
	gamma, err := tr.ChallengeScalar("gamma")
	if err != nil {
		return nil, err
	}

	// Round 2: accumulate the permutation grand product and commit it.
	zlog.Logger().Debug().Msg("round 2: committing permutation accumulator")
	sigmaLEvals := polyutil.FFT(pk.Domain, pk.Selectors.SigmaL)
	sigmaREvals := polyutil.FFT(pk.Domain, pk.Selectors.SigmaR)
	sigmaOEvals := polyutil.FFT(pk.Domain, pk.Selectors.SigmaO)
	sigmaFEvals := polyutil.FFT(pk.Domain, pk.Selectors.SigmaF)
	sigmaEvals := [4][]fr.Element{sigmaLEvals, sigmaREvals, sigmaOEvals, sigmaFEvals}

	wires := permutation.WireValues{L: aLag, R: bLag, O: oLag, F: dLag}
	zCoeffs := permutation.ComputePermutationPoly(pk.Domain, wires, beta, gamma, sigmaEvals)
	zBlinded := blindPoly(zCoeffs, int(n), blinds[8], blinds[9])

	zCommit, err := kzg.Commit(zBlinded, pk.CommitKey)
	if err != nil {
		return nil, err
	}
	if err := tr.AppendCommitment("gamma", &zCommit); err != nil {
		return nil, err
	}

	alpha, err := tr.ChallengeScalar("alpha")
	if err != nil {
		return nil, err
	}
	rangeSepCh, err := tr.ChallengeScalar("range")
	if err != nil {
		return nil, err
	}
	logicSepCh, err := tr.ChallengeScalar("logic")
	if err != nil {
		return nil, err
	}
	fixedBaseSepCh, err := tr.ChallengeScalar("fixed_base")
	if err != nil {
		return nil, err
	}
	varBaseSepCh, err := tr.ChallengeScalar("var_base")
	if err != nil {
		return nil, err
	}

	// Round 3: build the quotient polynomial over the 4N coset and split it.
	zlog.Logger().Debug().Msg("round 3: computing and splitting the quotient polynomial")
	aCoset := polyutil.CosetFFT(pk.Domain4, aBlinded)
	bCoset := polyutil.CosetFFT(pk.Domain4, bBlinded)
	oCoset := polyutil.CosetFFT(pk.Domain4, oBlinded)
	dCoset := polyutil.CosetFFT(pk.Domain4, dBlinded)
	zCoset := polyutil.CosetFFT(pk.Domain4, zBlinded)

	piLag := make([]fr.Element, n)
	copy(piLag, c.PI)
	piCoeffs := polyutil.IFFT(pk.Domain, piLag)
	piCoset := polyutil.CosetFFT(pk.Domain4, piCoeffs)

	qctx := QuotientContext{
		PK:           pk,
		L:            aCoset,
		R:            bCoset,
		O:            oCoset,
		F:            dCoset,
		LNext:        rotate(aCoset),
		RNext:        rotate(bCoset),
		FNext:        rotate(dCoset),
		PICoset:      piCoset,
		ZCoset:       zCoset,
		ZNextCoset:   rotate(zCoset),
		Alpha:        alpha,
		Beta:         beta,
		Gamma:        gamma,
		RangeSep:     rangeSepCh,
		LogicSep:     logicSepCh,
		FixedBaseSep: fixedBaseSepCh,
		VarBaseSep:   varBaseSepCh,
	}
	quotientEvals := ComputeQuotientCoset(qctx)
	qCoeffs := polyutil.CosetIFFT(pk.Domain4, quotientEvals)
	t1, t2, t3, t4 := SplitQuotient(qCoeffs, int(n))

	quotientCommits, err := acc.CommitBatch([][]fr.Element{t1, t2, t3, t4}, pk.CommitKey)
	if err != nil {
		return nil, err
	}
	t1Commit, t2Commit, t3Commit, t4Commit := quotientCommits[0], quotientCommits[1], quotientCommits[2], quotientCommits[3]
	for _, cm := range []kzg.Digest{t1Commit, t2Commit, t3Commit, t4Commit} {
		cm := cm
		if err := tr.AppendCommitment("var_base", &cm); err != nil {
			return nil, err
		}
	}

	zeta, err := tr.ChallengeScalar("zeta")
	if err != nil {
		return nil, err
	}

	// Round 4: evaluate everything at zeta (and zeta*omega for the wires
	// and accumulator that need a "next row" check) and build r(X).
	zlog.Logger().Debug().Msg("round 4: evaluating at zeta and building the linearisation polynomial")
	var zetaOmega fr.Element
	zetaOmega.Mul(&zeta, &pk.Domain.Generator)

	aEval := polyutil.EvalPolynomial(aBlinded, zeta)
	bEval := polyutil.EvalPolynomial(bBlinded, zeta)
	cEval := polyutil.EvalPolynomial(oBlinded, zeta)
	dEval := polyutil.EvalPolynomial(dBlinded, zeta)
	aNextEval := polyutil.EvalPolynomial(aBlinded, zetaOmega)
	bNextEval := polyutil.EvalPolynomial(bBlinded, zetaOmega)
	dNextEval := polyutil.EvalPolynomial(dBlinded, zetaOmega)
	zNextEval := polyutil.EvalPolynomial(zBlinded, zetaOmega)

	qArithEval := polyutil.EvalPolynomial(pk.Selectors.QArith, zeta)
	qcEval := polyutil.EvalPolynomial(pk.Selectors.QC, zeta)
	qlEval := polyutil.EvalPolynomial(pk.Selectors.QL, zeta)
	qrEval := polyutil.EvalPolynomial(pk.Selectors.QR, zeta)

	sigmaLEval := polyutil.EvalPolynomial(pk.Selectors.SigmaL, zeta)
	sigmaREval := polyutil.EvalPolynomial(pk.Selectors.SigmaR, zeta)
	sigmaOEval := polyutil.EvalPolynomial(pk.Selectors.SigmaO, zeta)
	sigmaFEval := polyutil.EvalPolynomial(pk.Selectors.SigmaF, zeta)

	curveD := twistededwards.GetEdwardsCurve().D
	rangeIdentity := RangeIdentity(aEval, bEval, cEval, dEval, dNextEval, rangeSepCh)
	logicIdentity := LogicIdentity(aEval, aNextEval, bEval, bNextEval, dEval, dNextEval, qcEval, logicSepCh)
	fixedBaseIdentity := FixedBaseIdentity(aEval, bEval, cEval, dEval, aNextEval, bNextEval, dNextEval, qlEval, qrEval, qcEval, fixedBaseSepCh, curveD)
	varBaseIdentity := VarBaseIdentity(aEval, bEval, cEval, dEval, aNextEval, bNextEval, dNextEval, varBaseSepCh, curveD)

	l1Eval := l1AtZeta(zeta, n, pk.Vk.NInv)

	linIn := LinearisationInputs{
		PK:    pk,
		ZPoly: zBlinded,
		Eval: ProofEvaluations{
			AEval: aEval, BEval: bEval, CEval: cEval, DEval: dEval,
			ANextEval: aNextEval, BNextEval: bNextEval, DNextEval: dNextEval,
			QArithEval: qArithEval, QCEval: qcEval, QLEval: qlEval, QREval: qrEval,
			LeftSigmaEval: sigmaLEval, RightSigmaEval: sigmaREval,
			OutSigmaEval: sigmaOEval, FourthSigmaEval: sigmaFEval,
			PermutationEval: zNextEval,
		},
		ZChallenge:   zeta,
		Alpha:        alpha,
		Beta:         beta,
		Gamma:        gamma,
		RangeSep:     rangeIdentity,
		LogicSep:     logicIdentity,
		FixedBaseSep: fixedBaseIdentity,
		VarBaseSep:   varBaseIdentity,
		L1Eval:       l1Eval,
	}
	rPoly := ComputeLinearisationPolynomial(linIn)
	rEval := EvalLinearisationAtZ(rPoly, zeta)
	linIn.Eval.LinearisationPolynomialEval = rEval

	for _, s := range []fr.Element{
		aEval, bEval, cEval, dEval, aNextEval, bNextEval, dNextEval,
		qArithEval, qcEval, qlEval, qrEval,
		sigmaLEval, sigmaREval, sigmaOEval, sigmaFEval,
		rEval, zNextEval,
	} {
		s := s
		if err := tr.AppendScalar("zeta", &s); err != nil {
			return nil, err
		}
	}

	v, err := tr.ChallengeScalar("v")
	if err != nil {
		return nil, err
	}

	// Round 5: batch the zeta-opened and zeta*omega-opened polynomials and
	// commit to their KZG opening proofs.
	zlog.Logger().Debug().Msg("round 5: batching KZG openings")
	var zetaN, zeta2N, zeta3N fr.Element
	zetaN.Exp(zeta, new(big.Int).SetUint64(n))
	zeta2N.Mul(&zetaN, &zetaN)
	zeta3N.Mul(&zeta2N, &zetaN)

	tCombined := make([]fr.Element, n)
	tCombined = polyAddInPlace(tCombined, t1)
	tCombined = polyAddInPlace(tCombined, polyScale(t2, zetaN))
	tCombined = polyAddInPlace(tCombined, polyScale(t3, zeta2N))
	tCombined = polyAddInPlace(tCombined, polyScale(t4, zeta3N))

	var vPow [9]fr.Element
	vPow[0].SetOne()
	for i := 1; i < len(vPow); i++ {
		vPow[i].Mul(&vPow[i-1], &v)
	}

	combinedZeta := make([]fr.Element, 0, n)
	combinedZeta = polyAddInPlace(combinedZeta, tCombined)
	combinedZeta = polyAddInPlace(combinedZeta, polyScale(rPoly, vPow[1]))
	combinedZeta = polyAddInPlace(combinedZeta, polyScale(aBlinded, vPow[2]))
	combinedZeta = polyAddInPlace(combinedZeta, polyScale(bBlinded, vPow[3]))
	combinedZeta = polyAddInPlace(combinedZeta, polyScale(oBlinded, vPow[4]))
	combinedZeta = polyAddInPlace(combinedZeta, polyScale(dBlinded, vPow[5]))
	combinedZeta = polyAddInPlace(combinedZeta, polyScale(pk.Selectors.SigmaL, vPow[6]))
	combinedZeta = polyAddInPlace(combinedZeta, polyScale(pk.Selectors.SigmaR, vPow[7]))
	combinedZeta = polyAddInPlace(combinedZeta, polyScale(pk.Selectors.SigmaO, vPow[8]))

	wzQuotient := polyutil.DivideByLinear(combinedZeta, zeta)
	wzCommit, err := kzg.Commit(wzQuotient, pk.CommitKey)
	if err != nil {
		return nil, err
	}

	combinedZetaOmega := make([]fr.Element, len(zBlinded))
	copy(combinedZetaOmega, zBlinded)
	combinedZetaOmega = polyAddInPlace(combinedZetaOmega, polyScale(aBlinded, v))
	combinedZetaOmega = polyAddInPlace(combinedZetaOmega, polyScale(bBlinded, vPow[2]))
	combinedZetaOmega = polyAddInPlace(combinedZetaOmega, polyScale(dBlinded, vPow[3]))

	wzwQuotient := polyutil.DivideByLinear(combinedZetaOmega, zetaOmega)
	wzwCommit, err := kzg.Commit(wzwQuotient, pk.CommitKey)
	if err != nil {
		return nil, err
	}

	zlog.Logger().Debug().Msg("proof complete")
	return &Proof{
		ACommit: aCommit, BCommit: bCommit, CCommit: oCommit, DCommit: dCommit,
		ZCommit:  zCommit,
		T1Commit: t1Commit, T2Commit: t2Commit, T3Commit: t3Commit, T4Commit: t4Commit,
		WZCommit: wzCommit, WZWCommit: wzwCommit,
		Evaluations: linIn.Eval,
	}, nil
}
