package circuit_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	"github.com/stretchr/testify/require"

	"github.com/plonkcore/plonk/circuit"
	"github.com/plonkcore/plonk/composer"
)

func fe(v uint64) fr.Element {
	var out fr.Element
	out.SetUint64(v)
	return out
}

// sumCircuit constrains result = a + b, a+b bound as a public input and a
// separately range-checked, the minimal shape exercising both the
// arithmetic and range gates.
type sumCircuit struct {
	a, b uint64
}

func (c sumCircuit) PaddedCircuitSize() int { return 16 }

func (c sumCircuit) Define(comp *composer.Composer) error {
	a := comp.AddInput(fe(c.a))
	b := comp.AddInput(fe(c.b))
	sum := comp.Add(a, b)
	comp.ConstrainPublicInput(sum, fe(c.a+c.b))
	return comp.RangeGate(a, 8)
}

func testSRS(t *testing.T, size uint64) kzg.SRS {
	t.Helper()
	srs, err := kzg.NewSRS(size, big.NewInt(424242))
	require.NoError(t, err)
	return *srs
}

// TestCompileProveVerifyRoundTrips exercises property P1 (completeness):
// a correctly satisfied circuit's proof must verify.
func TestCompileProveVerifyRoundTrips(t *testing.T) {
	circ := sumCircuit{a: 20, b: 5}
	srs := testSRS(t, 64)

	pk, vd, err := circuit.Compile(circ, srs)
	require.NoError(t, err)

	proof, err := circuit.GenProof(circ, pk)
	require.NoError(t, err)

	err = circuit.VerifyProof(vd, proof, []circuit.PublicInputValue{circuit.Scalar(fe(25))})
	require.NoError(t, err)
}

// TestVerifyRejectsWrongPublicInputValue exercises scenario 2 (spec.md §8):
// a circuit proved against one public input value must not verify against
// a different one, even though compile/prove themselves do not look at the
// claimed value at all.
func TestVerifyRejectsWrongPublicInputValue(t *testing.T) {
	circ := sumCircuit{a: 20, b: 5}
	srs := testSRS(t, 64)

	pk, vd, err := circuit.Compile(circ, srs)
	require.NoError(t, err)

	proof, err := circuit.GenProof(circ, pk)
	require.NoError(t, err)

	err = circuit.VerifyProof(vd, proof, []circuit.PublicInputValue{circuit.Scalar(fe(26))})
	require.Error(t, err)
}

// TestVerifyRejectsPublicInputCountMismatch exercises property P8: a
// verifier given the wrong number of public input values (here, none at
// all) must reject rather than silently pass.
func TestVerifyRejectsPublicInputCountMismatch(t *testing.T) {
	circ := sumCircuit{a: 20, b: 5}
	srs := testSRS(t, 64)

	pk, vd, err := circuit.Compile(circ, srs)
	require.NoError(t, err)

	proof, err := circuit.GenProof(circ, pk)
	require.NoError(t, err)

	err = circuit.VerifyProof(vd, proof, nil)
	require.Error(t, err)
}

// TestVerifyRejectsTamperedEvaluation exercises property P2 (soundness
// probe): flipping a claimed evaluation in a Proof must cause rejection,
// since it is bound into the Fiat-Shamir transcript, the gate identities and
// the batched zeta opening's claimed value, none of which the tamper can
// keep consistent with the honestly-computed commitments.
func TestVerifyRejectsTamperedEvaluation(t *testing.T) {
	circ := sumCircuit{a: 20, b: 5}
	srs := testSRS(t, 64)

	pk, vd, err := circuit.Compile(circ, srs)
	require.NoError(t, err)

	proof, err := circuit.GenProof(circ, pk)
	require.NoError(t, err)

	tampered := *proof
	var one fr.Element
	one.SetOne()
	tampered.Evaluations.AEval.Add(&tampered.Evaluations.AEval, &one)

	err = circuit.VerifyProof(vd, &tampered, []circuit.PublicInputValue{circuit.Scalar(fe(25))})
	require.Error(t, err)
}

// TestVerifyRejectsTamperedCommitment exercises property P2's other half:
// flipping a wire commitment (rather than an evaluation) must also cause
// rejection, since the verifier reconstructs its batched commitment from the
// proof's own ACommit/BCommit/CCommit/DCommit and checks it against the
// claimed evaluations via the same opening proof.
func TestVerifyRejectsTamperedCommitment(t *testing.T) {
	circ := sumCircuit{a: 20, b: 5}
	srs := testSRS(t, 64)

	pk, vd, err := circuit.Compile(circ, srs)
	require.NoError(t, err)

	proof, err := circuit.GenProof(circ, pk)
	require.NoError(t, err)

	tampered := *proof
	tampered.ACommit = tampered.BCommit

	err = circuit.VerifyProof(vd, &tampered, []circuit.PublicInputValue{circuit.Scalar(fe(25))})
	require.Error(t, err)
}

// TestCompileRejectsOddRangeBitCount exercises property P6's odd-bit-count
// case at the circuit API boundary: Define returning perr.ErrOddRangeBitCount
// must propagate out of Compile as an error, never a panic.
func TestCompileRejectsOddRangeBitCount(t *testing.T) {
	circ := oddRangeCircuit{}
	srs := testSRS(t, 64)

	_, _, err := circuit.Compile(circ, srs)
	require.Error(t, err)
}

type oddRangeCircuit struct{}

func (oddRangeCircuit) PaddedCircuitSize() int { return 16 }

func (oddRangeCircuit) Define(comp *composer.Composer) error {
	a := comp.AddInput(fe(3))
	return comp.RangeGate(a, 7)
}
