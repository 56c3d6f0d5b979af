package permutation

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/plonkcore/plonk/internal/polyutil"
)

// WireValues bundles the four wire-value vectors (Lagrange/evaluation form,
// length n) needed to build the grand-product accumulator.
type WireValues struct {
	L, R, O, F []fr.Element
}

// ComputeAccumulatorEvaluations builds Z in Lagrange (evaluation) form per
// spec.md §4.4: Z[0] = 1; Z[j+1] = Z[j] * N_j / D_j, where N_j is the
// product over the four wires of (w_wire[j] + beta*k_wire*omega^j + gamma)
// and D_j is the same with k_wire*omega^j replaced by sigma_wire[j].
//
// The returned slice has length n. Property P5 (Z[n] == 1, i.e. applying one
// more step from Z[n-1] using the wrap-around j=n-1 term returns to 1) is
// checked separately by AccumulatorClosure, since it is a completeness
// property of the whole domain, not a value Z itself needs to hold at index
// n (which is out of range).
func ComputeAccumulatorEvaluations(domain *fft.Domain, wires WireValues, beta, gamma fr.Element, sigmaEvals [4][]fr.Element) []fr.Element {
	n := int(domain.Cardinality)
	z := make([]fr.Element, n)
	z[0].SetOne()

	wireVecs := [4][]fr.Element{wires.L, wires.R, wires.O, wires.F}

	omega := domain.Generator
	var omegaJ fr.Element
	omegaJ.SetOne()

	for j := 0; j < n-1; j++ {
		num, den := numDen(wireVecs, sigmaEvals, omegaJ, beta, gamma, j)
		var frac fr.Element
		frac.Inverse(&den)
		frac.Mul(&frac, &num)
		z[j+1].Mul(&z[j], &frac)
		omegaJ.Mul(&omegaJ, &omega)
	}
	return z
}

// AccumulatorClosure computes the one extra N_{n-1}/D_{n-1} step starting
// from Z[n-1] and returns Z[n] (which must equal 1, property P5).
func AccumulatorClosure(domain *fft.Domain, z []fr.Element, wires WireValues, beta, gamma fr.Element, sigmaEvals [4][]fr.Element) fr.Element {
	n := int(domain.Cardinality)
	wireVecs := [4][]fr.Element{wires.L, wires.R, wires.O, wires.F}

	var omegaJ fr.Element
	omegaJ.Exp(domain.Generator, big.NewInt(int64(n-1)))

	num, den := numDen(wireVecs, sigmaEvals, omegaJ, beta, gamma, n-1)
	var frac, out fr.Element
	frac.Inverse(&den)
	frac.Mul(&frac, &num)
	out.Mul(&z[n-1], &frac)
	return out
}

func numDen(wireVecs [4][]fr.Element, sigmaEvals [4][]fr.Element, omegaJ, beta, gamma fr.Element, j int) (num, den fr.Element) {
	ks := [4]fr.Element{CosetConstant(WireLeft), CosetConstant(WireRight), CosetConstant(WireOutput), CosetConstant(WireFourth)}
	num.SetOne()
	den.SetOne()
	for w := 0; w < 4; w++ {
		var kOmega, betaTerm, nj fr.Element
		kOmega.Mul(&ks[w], &omegaJ)
		betaTerm.Mul(&beta, &kOmega)
		nj.Add(&wireVecs[w][j], &betaTerm)
		nj.Add(&nj, &gamma)
		num.Mul(&num, &nj)

		var betaSig, dj fr.Element
		betaSig.Mul(&beta, &sigmaEvals[w][j])
		dj.Add(&wireVecs[w][j], &betaSig)
		dj.Add(&dj, &gamma)
		den.Mul(&den, &dj)
	}
	return num, den
}

// ComputePermutationPoly returns Z in coefficient form via inverse FFT, as
// spec.md §4.4 requires.
func ComputePermutationPoly(domain *fft.Domain, wires WireValues, beta, gamma fr.Element, sigmaEvals [4][]fr.Element) []fr.Element {
	evals := ComputeAccumulatorEvaluations(domain, wires, beta, gamma, sigmaEvals)
	return polyutil.IFFT(domain, evals)
}
