package bls12381

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"

	"github.com/plonkcore/plonk/internal/zlog"
	"github.com/plonkcore/plonk/perr"
	"github.com/plonkcore/plonk/transcript"
)

// PublicInputs bundles the sparse (position, value) pairs a verifier is
// handed out-of-band for one proof instance: positions come from
// composer.PublicInputPositions() (carried in VerifierData by the circuit
// package), values from whatever the caller is asserting this proof attests
// to.
type PublicInputs struct {
	Positions []int
	Values    []fr.Element
}

// Verify replays the prover's Fiat-Shamir transcript from proof's
// commitments alone, reconstructs PI(zeta) from publicInputs, and checks the
// combined gate identity via two KZG opening verifications: one at zeta
// against a commitment folded (with the transcript's own v challenge) from
// nine individual commitments, one at zeta*omega folded from four. This
// mirrors the real gnark PLONK verifier's kzg.BatchVerifySinglePoint-then-
// kzg.Verify structure, except the zeta fold is done by hand with v here
// rather than via BatchVerifySinglePoint itself, since that helper samples
// its own folding challenge internally instead of taking one from our
// transcript. tr must already be seeded the same way the prover's transcript
// was: NewTranscript(label) followed by SeedTranscript(tr, vk), using the
// same label the prover used.
func Verify(vk *VerifierKey, proof *Proof, publicInputs PublicInputs, tr *transcript.Transcript) error {
	zlog.Logger().Debug().Uint64("circuit_size", vk.N).Int("num_public_inputs", len(publicInputs.Positions)).Msg("verifying proof")
	for _, cm := range []kzg.Digest{proof.ACommit, proof.BCommit, proof.CCommit, proof.DCommit} {
		cm := cm
		if err := tr.AppendCommitment("beta", &cm); err != nil {
			return err
		}
	}
	beta, err := tr.ChallengeScalar("beta")
	if err != nil {
		return err
	}
	gamma, err := tr.ChallengeScalar("gamma")
	if err != nil {
		return err
	}

	if err := tr.AppendCommitment("gamma", &proof.ZCommit); err != nil {
		return err
	}
	alpha, err := tr.ChallengeScalar("alpha")
	if err != nil {
		return err
	}
	rangeSepCh, err := tr.ChallengeScalar("range")
	if err != nil {
		return err
	}
	logicSepCh, err := tr.ChallengeScalar("logic")
	if err != nil {
		return err
	}
	fixedBaseSepCh, err := tr.ChallengeScalar("fixed_base")
	if err != nil {
		return err
	}
	varBaseSepCh, err := tr.ChallengeScalar("var_base")
	if err != nil {
		return err
	}

	for _, cm := range []kzg.Digest{proof.T1Commit, proof.T2Commit, proof.T3Commit, proof.T4Commit} {
		cm := cm
		if err := tr.AppendCommitment("var_base", &cm); err != nil {
			return err
		}
	}
	zeta, err := tr.ChallengeScalar("zeta")
	if err != nil {
		return err
	}

	e := proof.Evaluations
	for _, s := range []fr.Element{
		e.AEval, e.BEval, e.CEval, e.DEval, e.ANextEval, e.BNextEval, e.DNextEval,
		e.QArithEval, e.QCEval, e.QLEval, e.QREval,
		e.LeftSigmaEval, e.RightSigmaEval, e.OutSigmaEval, e.FourthSigmaEval,
		e.LinearisationPolynomialEval, e.PermutationEval,
	} {
		s := s
		if err := tr.AppendScalar("zeta", &s); err != nil {
			return err
		}
	}
	v, err := tr.ChallengeScalar("v")
	if err != nil {
		return err
	}

	piEval, err := evaluatePIAtZeta(piPositions{Positions: publicInputs.Positions, Values: publicInputs.Values}, vk.N, vk.Generator, zeta)
	if err != nil {
		return err
	}
	l1Eval := l1AtZeta(zeta, vk.N, vk.NInv)
	zh := vanishingPolyAtZeta(zeta, vk.N)

	curveD := twistededwards.GetEdwardsCurve().D
	rangeIdentity := RangeIdentity(e.AEval, e.BEval, e.CEval, e.DEval, e.DNextEval, rangeSepCh)
	logicIdentity := LogicIdentity(e.AEval, e.ANextEval, e.BEval, e.BNextEval, e.DEval, e.DNextEval, e.QCEval, logicSepCh)
	fixedBaseIdentity := FixedBaseIdentity(e.AEval, e.BEval, e.CEval, e.DEval, e.ANextEval, e.BNextEval, e.DNextEval, e.QLEval, e.QREval, e.QCEval, fixedBaseSepCh, curveD)
	varBaseIdentity := VarBaseIdentity(e.AEval, e.BEval, e.CEval, e.DEval, e.ANextEval, e.BNextEval, e.DNextEval, varBaseSepCh, curveD)

	rComm, err := ComputeLinearisationCommitment(vk, e, proof.ZCommit, zeta, alpha, beta, gamma, l1Eval,
		rangeIdentity, logicIdentity, fixedBaseIdentity, varBaseIdentity)
	if err != nil {
		return err
	}

	// The quotient's own evaluation is never sent; it is recovered as
	// t(zeta) = [r(zeta) + PI(zeta)
	//            - alpha*z(zeta*omega)*(a+beta*sigmaL+gamma)(b+beta*sigmaR+gamma)(c+beta*sigmaO+gamma)(d+gamma)
	//            - alpha^2*L1(zeta)] / Z_H(zeta).
	var zhInv, tEval, permTerm, tmp, l1Term fr.Element
	zhInv.Inverse(&zh)
	permTerm.Mul(&beta, &e.LeftSigmaEval).Add(&permTerm, &e.AEval).Add(&permTerm, &gamma)
	tmp.Mul(&beta, &e.RightSigmaEval).Add(&tmp, &e.BEval).Add(&tmp, &gamma)
	permTerm.Mul(&permTerm, &tmp)
	tmp.Mul(&beta, &e.OutSigmaEval).Add(&tmp, &e.CEval).Add(&tmp, &gamma)
	permTerm.Mul(&permTerm, &tmp)
	tmp.Add(&e.DEval, &gamma)
	permTerm.Mul(&permTerm, &tmp).Mul(&permTerm, &e.PermutationEval).Mul(&permTerm, &alpha)
	l1Term.Square(&alpha).Mul(&l1Term, &l1Eval)
	tEval.Add(&e.LinearisationPolynomialEval, &piEval)
	tEval.Sub(&tEval, &permTerm).Sub(&tEval, &l1Term)
	tEval.Mul(&tEval, &zhInv)

	var zetaN, zeta2N, zeta3N fr.Element
	zetaN.Exp(zeta, new(big.Int).SetUint64(vk.N))
	zeta2N.Mul(&zetaN, &zetaN)
	zeta3N.Mul(&zeta2N, &zetaN)

	tAcc := &msmScalarsPoints{}
	one := fr.Element{}
	one.SetOne()
	tAcc.add(one, proof.T1Commit)
	tAcc.add(zetaN, proof.T2Commit)
	tAcc.add(zeta2N, proof.T3Commit)
	tAcc.add(zeta3N, proof.T4Commit)
	var tComm kzg.Digest
	if _, err := tComm.MultiExp(tAcc.Points, tAcc.Scalars, multiExpConfig()); err != nil {
		return err
	}

	var vPow [9]fr.Element
	vPow[0].SetOne()
	for i := 1; i < len(vPow); i++ {
		vPow[i].Mul(&vPow[i-1], &v)
	}

	zetaAcc := &msmScalarsPoints{}
	zetaAcc.add(vPow[0], tComm)
	zetaAcc.add(vPow[1], rComm)
	zetaAcc.add(vPow[2], proof.ACommit)
	zetaAcc.add(vPow[3], proof.BCommit)
	zetaAcc.add(vPow[4], proof.CCommit)
	zetaAcc.add(vPow[5], proof.DCommit)
	zetaAcc.add(vPow[6], vk.CSigmaL)
	zetaAcc.add(vPow[7], vk.CSigmaR)
	zetaAcc.add(vPow[8], vk.CSigmaO)
	var zetaComm kzg.Digest
	if _, err := zetaComm.MultiExp(zetaAcc.Points, zetaAcc.Scalars, multiExpConfig()); err != nil {
		return err
	}

	var zetaClaimed fr.Element
	zetaClaimed.Add(&tEval, new(fr.Element).Mul(&e.LinearisationPolynomialEval, &vPow[1]))
	zetaClaimed.Add(&zetaClaimed, new(fr.Element).Mul(&e.AEval, &vPow[2]))
	zetaClaimed.Add(&zetaClaimed, new(fr.Element).Mul(&e.BEval, &vPow[3]))
	zetaClaimed.Add(&zetaClaimed, new(fr.Element).Mul(&e.CEval, &vPow[4]))
	zetaClaimed.Add(&zetaClaimed, new(fr.Element).Mul(&e.DEval, &vPow[5]))
	zetaClaimed.Add(&zetaClaimed, new(fr.Element).Mul(&e.LeftSigmaEval, &vPow[6]))
	zetaClaimed.Add(&zetaClaimed, new(fr.Element).Mul(&e.RightSigmaEval, &vPow[7]))
	zetaClaimed.Add(&zetaClaimed, new(fr.Element).Mul(&e.OutSigmaEval, &vPow[8]))

	if err := kzg.Verify(&zetaComm, &kzg.OpeningProof{H: proof.WZCommit, ClaimedValue: zetaClaimed}, zeta, vk.Kzg); err != nil {
		zlog.Logger().Error().Err(err).Msg("zeta opening check failed")
		return perr.ErrProofVerificationFailed
	}

	var zetaOmega fr.Element
	zetaOmega.Mul(&zeta, &vk.Generator)

	zetaOmegaAcc := &msmScalarsPoints{}
	zetaOmegaAcc.add(one, proof.ZCommit)
	zetaOmegaAcc.add(v, proof.ACommit)
	zetaOmegaAcc.add(vPow[2], proof.BCommit)
	zetaOmegaAcc.add(vPow[3], proof.DCommit)
	var zetaOmegaComm kzg.Digest
	if _, err := zetaOmegaComm.MultiExp(zetaOmegaAcc.Points, zetaOmegaAcc.Scalars, multiExpConfig()); err != nil {
		return err
	}

	var zetaOmegaClaimed fr.Element
	zetaOmegaClaimed.Add(&e.PermutationEval, new(fr.Element).Mul(&e.ANextEval, &v))
	zetaOmegaClaimed.Add(&zetaOmegaClaimed, new(fr.Element).Mul(&e.BNextEval, &vPow[2]))
	zetaOmegaClaimed.Add(&zetaOmegaClaimed, new(fr.Element).Mul(&e.DNextEval, &vPow[3]))

	if err := kzg.Verify(&zetaOmegaComm, &kzg.OpeningProof{H: proof.WZWCommit, ClaimedValue: zetaOmegaClaimed}, zetaOmega, vk.Kzg); err != nil {
		zlog.Logger().Error().Err(err).Msg("zeta*omega opening check failed")
		return perr.ErrProofVerificationFailed
	}

	zlog.Logger().Debug().Msg("proof verified")
	return nil
}
