// Package polyutil centralizes the gnark-crypto FFT call conventions
// (bit-reversal + decimation pairing) used throughout the permutation and
// preprocessing/quotient code, so every caller goes through the same four
// functions instead of re-deriving the DIT/DIF/BitReverse dance at each call
// site.
package polyutil

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

// IFFT converts evaluations over domain (natural order) to coefficients.
func IFFT(domain *fft.Domain, evals []fr.Element) []fr.Element {
	coeffs := make([]fr.Element, len(evals))
	copy(coeffs, evals)
	domain.FFTInverse(coeffs, fft.DIF)
	fft.BitReverse(coeffs)
	return coeffs
}

// FFT converts coefficients to evaluations over domain (natural order).
func FFT(domain *fft.Domain, coeffs []fr.Element) []fr.Element {
	evals := make([]fr.Element, len(coeffs))
	copy(evals, coeffs)
	fft.BitReverse(evals)
	domain.FFT(evals, fft.DIT)
	return evals
}

// CosetIFFT converts coset evaluations to coefficients.
func CosetIFFT(domain *fft.Domain, evals []fr.Element) []fr.Element {
	coeffs := make([]fr.Element, len(evals))
	copy(coeffs, evals)
	domain.FFTInverse(coeffs, fft.DIF, fft.OnCoset())
	fft.BitReverse(coeffs)
	return coeffs
}

// CosetFFT converts coefficients to coset evaluations, padding/truncating
// coeffs to domain's cardinality first.
func CosetFFT(domain *fft.Domain, coeffs []fr.Element) []fr.Element {
	evals := make([]fr.Element, domain.Cardinality)
	copy(evals, coeffs)
	fft.BitReverse(evals)
	domain.FFT(evals, fft.DIT, fft.OnCoset())
	return evals
}

// EvalPolynomial evaluates a coefficient-form polynomial at x via Horner's
// method.
func EvalPolynomial(coeffs []fr.Element, x fr.Element) fr.Element {
	var result fr.Element
	for i := len(coeffs) - 1; i >= 0; i-- {
		result.Mul(&result, &x)
		result.Add(&result, &coeffs[i])
	}
	return result
}

// DivideByLinear returns q(X) = (p(X) - p(point)) / (X - point) via Ruffini's
// rule, the building block every KZG opening proof is: the quotient
// polynomial committed to as the proof, since p(X)-p(point) has point as a
// root. The remainder (which should be p(point)) is discarded, not checked,
// since callers already know p(point) from the evaluation they are opening.
func DivideByLinear(coeffs []fr.Element, point fr.Element) []fr.Element {
	n := len(coeffs)
	if n == 0 {
		return nil
	}
	quotient := make([]fr.Element, n-1)
	carry := coeffs[n-1]
	for i := n - 2; i >= 0; i-- {
		quotient[i] = carry
		var t fr.Element
		t.Mul(&carry, &point)
		carry = coeffs[i]
		carry.Add(&carry, &t)
	}
	return quotient
}
