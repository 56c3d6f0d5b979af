// Package accelerator abstracts the MSM/FFT primitives the prover's hot path
// needs, so a GPU-backed implementation (see icicle.go, built only with the
// "icicle" tag) can be swapped in without changing backend/plonk/bls12381's
// call shape. The default CPU implementation here just delegates to
// gnark-crypto directly, fanned out across cores with errgroup the same way
// setup.go's commitSelectors already does for the independent KZG commits.
package accelerator

import (
	"runtime"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	"golang.org/x/sync/errgroup"
)

// Accelerator performs the two primitives whose cost dominates preprocessing
// and proving: committing polynomials (a multi-scalar multiplication against
// the SRS) and evaluating polynomials over a domain (an FFT). A non-default
// implementation (e.g. icicle.go's GPU backend) only needs to implement
// these two methods.
type Accelerator interface {
	CommitBatch(polys [][]fr.Element, pk kzg.ProvingKey) ([]kzg.Digest, error)
	FFTBatch(domain *fft.Domain, coeffs [][]fr.Element, coset bool) [][]fr.Element
}

// CPU is the default Accelerator: plain gnark-crypto calls, parallelized
// across polynomials with errgroup (never within a single FFT/MSM, which
// gnark-crypto itself already parallelizes internally).
type CPU struct{}

// New returns the default CPU-backed Accelerator.
func New() Accelerator {
	return CPU{}
}

func (CPU) CommitBatch(polys [][]fr.Element, pk kzg.ProvingKey) ([]kzg.Digest, error) {
	out := make([]kzg.Digest, len(polys))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range polys {
		i := i
		g.Go(func() error {
			c, err := kzg.Commit(polys[i], pk)
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (CPU) FFTBatch(domain *fft.Domain, coeffs [][]fr.Element, coset bool) [][]fr.Element {
	out := make([][]fr.Element, len(coeffs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range coeffs {
		i := i
		g.Go(func() error {
			evals := make([]fr.Element, domain.Cardinality)
			copy(evals, coeffs[i])
			fft.BitReverse(evals)
			if coset {
				domain.FFT(evals, fft.DIT, fft.OnCoset())
			} else {
				domain.FFT(evals, fft.DIT)
			}
			out[i] = evals
			return nil
		})
	}
	_ = g.Wait()
	return out
}
