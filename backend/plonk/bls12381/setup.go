package bls12381

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"

	"github.com/plonkcore/plonk/composer"
	"github.com/plonkcore/plonk/internal/accelerator"
	"github.com/plonkcore/plonk/internal/polyutil"
	"github.com/plonkcore/plonk/internal/zlog"
	"github.com/plonkcore/plonk/perr"
	"github.com/plonkcore/plonk/transcript"
)

// checkPolySameLen verifies that every gate-row vector the composer built
// has the same length, the invariant Preprocess relies on before it can pad
// and FFT them together.
func checkPolySameLen(n int, vecs ...[]fr.Element) error {
	for _, v := range vecs {
		if len(v) != n {
			return perr.ErrMismatchedPolyLen
		}
	}
	return nil
}

// pad zero-extends every selector and public-input vector up to size. Wire
// vectors are left untouched: the padding rows are never assigned a gate
// via appendGate, so permutation.ComputeSigmaPermutations already treats
// them as self-mapped (property P3) without the composer registering any
// occurrence for them.
func pad(c *composer.Composer, size int) {
	grow := func(v []fr.Element) []fr.Element {
		out := make([]fr.Element, size)
		copy(out, v)
		return out
	}
	c.QM = grow(c.QM)
	c.QL = grow(c.QL)
	c.QR = grow(c.QR)
	c.QO = grow(c.QO)
	c.Q4 = grow(c.Q4)
	c.QC = grow(c.QC)
	c.QArith = grow(c.QArith)
	c.QRange = grow(c.QRange)
	c.QLogic = grow(c.QLogic)
	c.QFixedGroupAdd = grow(c.QFixedGroupAdd)
	c.QVariableGroupAdd = grow(c.QVariableGroupAdd)
	c.PI = grow(c.PI)
}

// selectorVectors returns the composer's eleven selector vectors, in
// the fixed order every other preprocessing/quotient/linearisation
// function iterates them in.
func selectorVectors(c *composer.Composer) [11][]fr.Element {
	return [11][]fr.Element{
		c.QM, c.QL, c.QR, c.QO, c.Q4, c.QC,
		c.QArith, c.QRange, c.QLogic,
		c.QFixedGroupAdd, c.QVariableGroupAdd,
	}
}

// preprocessShared pads the composer to a power-of-two domain, converts its
// Lagrange-basis selectors and sigma permutations to canonical (coefficient)
// form, and returns the domain together with those fifteen polynomials.
// Grounded on preprocess_shared: both PreprocessProver and PreprocessVerifier
// call this and diverge only in what they do with the result afterward.
func preprocessShared(c *composer.Composer) (*fft.Domain, SelectorPolynomials, error) {
	n := c.CircuitSize()
	sel := selectorVectors(c)
	if err := checkPolySameLen(n, sel[0], sel[1], sel[2], sel[3], sel[4], sel[5],
		sel[6], sel[7], sel[8], sel[9], sel[10], c.PI); err != nil {
		return nil, SelectorPolynomials{}, err
	}
	if err := c.ValidatePublicInputPositions(); err != nil {
		return nil, SelectorPolynomials{}, err
	}

	if uint64(n) > 1<<32 {
		return nil, SelectorPolynomials{}, perr.ErrInvalidEvalDomainSize
	}
	domain := fft.NewDomain(uint64(n))
	if domain.Cardinality < 2 {
		return nil, SelectorPolynomials{}, perr.ErrInvalidEvalDomainSize
	}
	pad(c, int(domain.Cardinality))

	sigmaL, sigmaR, sigmaO, sigmaF := c.Perm.ComputeSigmaPolynomials(int(domain.Cardinality), domain)

	polys := SelectorPolynomials{
		QM:                polyutil.IFFT(domain, c.QM),
		QL:                polyutil.IFFT(domain, c.QL),
		QR:                polyutil.IFFT(domain, c.QR),
		QO:                polyutil.IFFT(domain, c.QO),
		Q4:                polyutil.IFFT(domain, c.Q4),
		QC:                polyutil.IFFT(domain, c.QC),
		QArith:            polyutil.IFFT(domain, c.QArith),
		QRange:            polyutil.IFFT(domain, c.QRange),
		QLogic:            polyutil.IFFT(domain, c.QLogic),
		QFixedGroupAdd:    polyutil.IFFT(domain, c.QFixedGroupAdd),
		QVariableGroupAdd: polyutil.IFFT(domain, c.QVariableGroupAdd),
		SigmaL:            sigmaL,
		SigmaR:            sigmaR,
		SigmaO:            sigmaO,
		SigmaF:            sigmaF,
	}
	return domain, polys, nil
}

// commitSelectors commits to every polynomial in polys through acc, whose
// default CPU implementation fans the fifteen independent MSMs out across
// cores with errgroup the same way the teacher's own preprocessing does.
func commitSelectors(polys SelectorPolynomials, pk kzg.ProvingKey, acc accelerator.Accelerator) ([11]kzg.Digest, [4]kzg.Digest, error) {
	all := [15][]fr.Element{
		polys.QM, polys.QL, polys.QR, polys.QO, polys.Q4, polys.QC,
		polys.QArith, polys.QRange, polys.QLogic,
		polys.QFixedGroupAdd, polys.QVariableGroupAdd,
		polys.SigmaL, polys.SigmaR, polys.SigmaO, polys.SigmaF,
	}

	commits, err := acc.CommitBatch(all[:], pk)
	if err != nil {
		return [11]kzg.Digest{}, [4]kzg.Digest{}, err
	}

	var selCommits [11]kzg.Digest
	var sigmaCommits [4]kzg.Digest
	copy(selCommits[:], commits[:11])
	copy(sigmaCommits[:], commits[11:])
	return selCommits, sigmaCommits, nil
}

// computeVanishingPolyOverCoset returns X^polyDegree - 1 evaluated at every
// point of domain4's multiplicative coset, the divisor the quotient
// identity is checked against on the extended domain.
func computeVanishingPolyOverCoset(domain4 *fft.Domain, polyDegree uint64) []fr.Element {
	var cosetGen, genPow, one fr.Element
	one.SetOne()
	cosetGen.Exp(domain4.FrMultiplicativeGen, big.NewInt(int64(polyDegree)))
	genPow.Exp(domain4.Generator, big.NewInt(int64(polyDegree)))

	out := make([]fr.Element, domain4.Cardinality)
	var acc fr.Element
	acc.SetOne()
	for i := range out {
		var v fr.Element
		v.Mul(&cosetGen, &acc)
		v.Sub(&v, &one)
		out[i] = v
		acc.Mul(&acc, &genPow)
	}
	return out
}

// linearPolyOverCoset returns L1(X) (the Lagrange basis polynomial for the
// domain's first root of unity) evaluated over domain4's coset.
func linearPolyOverCoset(domain *fft.Domain, domain4 *fft.Domain) []fr.Element {
	e0 := make([]fr.Element, domain.Cardinality)
	e0[0].SetOne()
	l1Coeffs := polyutil.IFFT(domain, e0)
	return polyutil.CosetFFT(domain4, l1Coeffs)
}

// cosetFFTAll evaluates every polynomial in polys over domain4's coset,
// through acc, in the same field order. internal/polyutil.CosetFFT (the
// default CPU accelerator's implementation) and this batch shape are the
// same computation the prover's own round-3 coset evaluations use.
func cosetFFTAll(domain4 *fft.Domain, polys SelectorPolynomials, acc accelerator.Accelerator) SelectorPolynomials {
	in := [15][]fr.Element{
		polys.QM, polys.QL, polys.QR, polys.QO, polys.Q4, polys.QC,
		polys.QArith, polys.QRange, polys.QLogic,
		polys.QFixedGroupAdd, polys.QVariableGroupAdd,
		polys.SigmaL, polys.SigmaR, polys.SigmaO, polys.SigmaF,
	}
	out := acc.FFTBatch(domain4, in[:], true)
	return SelectorPolynomials{
		QM: out[0], QL: out[1], QR: out[2], QO: out[3], Q4: out[4], QC: out[5],
		QArith: out[6], QRange: out[7], QLogic: out[8],
		QFixedGroupAdd: out[9], QVariableGroupAdd: out[10],
		SigmaL: out[11], SigmaR: out[12], SigmaO: out[13], SigmaF: out[14],
	}
}

// PreprocessProver builds the ProverKey (and its embedded VerifierKey) for
// c: pads the circuit to a power-of-two domain, commits to every selector
// and sigma polynomial, evaluates all fifteen over the 4N coset the
// quotient polynomial is checked on, and seeds tr with the resulting
// commitments so the prover's first Fiat-Shamir challenge already binds the
// circuit description.
func PreprocessProver(c *composer.Composer, srs kzg.SRS, tr *transcript.Transcript, acc accelerator.Accelerator) (*ProverKey, error) {
	domain, polys, err := preprocessShared(c)
	if err != nil {
		zlog.Logger().Error().Err(err).Msg("preprocessing failed")
		return nil, err
	}
	zlog.Logger().Debug().Uint64("circuit_size", domain.Cardinality).Msg("domain sized")

	if len(srs.Pk.G1) < int(domain.Cardinality)+3 {
		err := perr.ErrPolynomialDegreeTooLarge
		zlog.Logger().Error().Err(err).Msg("preprocessing failed")
		return nil, err
	}
	commitKey := kzg.ProvingKey{G1: srs.Pk.G1[:int(domain.Cardinality)+3]}

	selCommits, sigmaCommits, err := commitSelectors(polys, commitKey, acc)
	if err != nil {
		return nil, err
	}

	var nInv fr.Element
	nInv.SetUint64(domain.Cardinality).Inverse(&nInv)

	vk := &VerifierKey{
		N:                   domain.Cardinality,
		NInv:                nInv,
		Generator:           domain.Generator,
		Kzg:                 srs.Vk,
		CQM:                 selCommits[0],
		CQL:                 selCommits[1],
		CQR:                 selCommits[2],
		CQO:                 selCommits[3],
		CQ4:                 selCommits[4],
		CQC:                 selCommits[5],
		CQArith:             selCommits[6],
		CQRange:             selCommits[7],
		CQLogic:             selCommits[8],
		CQFixedGroupAdd:     selCommits[9],
		CQVariableGroupAdd:  selCommits[10],
		CSigmaL:             sigmaCommits[0],
		CSigmaR:             sigmaCommits[1],
		CSigmaO:             sigmaCommits[2],
		CSigmaF:             sigmaCommits[3],
	}
	if err := SeedTranscript(tr, vk); err != nil {
		zlog.Logger().Error().Err(err).Msg("preprocessing failed")
		return nil, err
	}

	domain4 := fft.NewDomain(4 * domain.Cardinality)
	zlog.Logger().Debug().Uint64("circuit_size", domain.Cardinality).Msg("preprocessing complete")

	return &ProverKey{
		N:                  domain.Cardinality,
		Domain:             domain,
		Domain4:            domain4,
		Selectors:          polys,
		SelectorsCoset:     cosetFFTAll(domain4, polys, acc),
		LinearEvalsCoset:   linearPolyOverCoset(domain, domain4),
		VanishingPolyCoset: computeVanishingPolyOverCoset(domain4, domain.Cardinality),
		CommitKey:          commitKey,
		Vk:                 vk,
	}, nil
}

// PreprocessVerifier returns the VerifierKey for c: it runs PreprocessProver
// in full and returns the embedded pk.Vk, so the prover-only coset
// evaluation data is computed and then dropped.
func PreprocessVerifier(c *composer.Composer, srs kzg.SRS, tr *transcript.Transcript, acc accelerator.Accelerator) (*VerifierKey, error) {
	pk, err := PreprocessProver(c, srs, tr, acc)
	if err != nil {
		return nil, err
	}
	return pk.Vk, nil
}

// SeedTranscript absorbs the circuit's size and every commitment in vk into
// tr, establishing the shared prover/verifier transcript state before any
// proving round begins. gnark-crypto's Fiat-Shamir transcript requires every
// challenge name it will ever be asked to derive to be declared up front at
// construction (see NewTranscript); every Bind call here therefore targets
// "beta", the first of that declared set, the same way the prover's own
// round 1 binds the wire commitments to "beta" before squeezing it (spec.md
// §4.6's beta/gamma draw) — preprocessing just binds first.
func SeedTranscript(tr *transcript.Transcript, vk *VerifierKey) error {
	if err := tr.CircuitDomainSep("beta", vk.N); err != nil {
		return err
	}
	commitments := []kzg.Digest{
		vk.CQM, vk.CQL, vk.CQR, vk.CQO, vk.CQ4, vk.CQC, vk.CQArith,
		vk.CQRange, vk.CQLogic, vk.CQFixedGroupAdd, vk.CQVariableGroupAdd,
		vk.CSigmaL, vk.CSigmaR, vk.CSigmaO, vk.CSigmaF,
	}
	for i := range commitments {
		if err := tr.AppendCommitment("beta", &commitments[i]); err != nil {
			return err
		}
	}
	return nil
}
