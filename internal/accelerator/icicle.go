//go:build icicle

package accelerator

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	"github.com/ingonyama-zk/iciclegnark/goicicle"
)

// GPU delegates CommitBatch's MSMs and FFTBatch's FFTs to icicle's
// GPU-resident implementations, mirroring the teacher's own opt-in GPU MSM
// path for backend/plonk. Only compiled with -tags icicle; the default build
// never references goicicle, so a machine without a GPU toolchain installed
// can still build every other package in this module.
type GPU struct{}

// NewGPU returns an icicle-backed Accelerator. Callers choose it explicitly
// via circuit.WithAccelerator(accelerator.NewGPU()) when built with the
// icicle tag; nothing in this module selects it automatically.
func NewGPU() Accelerator {
	return GPU{}
}

func (GPU) CommitBatch(polys [][]fr.Element, pk kzg.ProvingKey) ([]kzg.Digest, error) {
	return goicicle.MSMBatchBLS12381(polys, pk.G1)
}

func (GPU) FFTBatch(domain *fft.Domain, coeffs [][]fr.Element, coset bool) [][]fr.Element {
	return goicicle.NTTBatchBLS12381(domain, coeffs, coset)
}
