package composer

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/exp/slices"

	"github.com/plonkcore/plonk/perr"
	"github.com/plonkcore/plonk/permutation"
)

// Composer accumulates one circuit instance's gate rows: the witness
// assignment, the four wire vectors, the eleven selector vectors, and the
// per-row public input contribution. A fresh Composer is built once per
// Compile/Prove call by replaying the circuit's gadget function (see the
// circuit package), mirroring the original StandardComposer.
type Composer struct {
	Perm *permutation.Permutation

	// Variables holds every allocated variable's assigned field value.
	Variables map[Variable]fr.Element

	// ZeroVar is the canonical variable always assigned 0, used to pad
	// unused wire slots (range gate padding, unused fourth wire, etc).
	ZeroVar Variable

	WL, WR, WO, W4 []Variable

	QM, QL, QR, QO, Q4, QC             []fr.Element
	QArith, QRange, QLogic             []fr.Element
	QFixedGroupAdd, QVariableGroupAdd  []fr.Element
	// PI carries, per gate row, the negated public-input contribution to
	// the arithmetic identity; rows with no public input leave it zero.
	PI []fr.Element

	// PIPositions records, in the order they were bound, the gate indices
	// carrying a public input (spec.md §3's public_input_positions). The
	// circuit package threads this list into VerifierData so a verifier can
	// reconstruct PI(zeta) without ever seeing the composer itself.
	PIPositions []int

	n int
}

// New returns an empty Composer with capacity pre-sized for expectedGates
// rows, mirroring the teacher's capacity-hinted slice/map allocations.
func New(expectedGates int) *Composer {
	c := &Composer{
		Perm:      permutation.WithCapacity(expectedGates * 4),
		Variables: make(map[Variable]fr.Element, expectedGates*4),
	}
	c.WL = make([]Variable, 0, expectedGates)
	c.WR = make([]Variable, 0, expectedGates)
	c.WO = make([]Variable, 0, expectedGates)
	c.W4 = make([]Variable, 0, expectedGates)
	c.QM = make([]fr.Element, 0, expectedGates)
	c.QL = make([]fr.Element, 0, expectedGates)
	c.QR = make([]fr.Element, 0, expectedGates)
	c.QO = make([]fr.Element, 0, expectedGates)
	c.Q4 = make([]fr.Element, 0, expectedGates)
	c.QC = make([]fr.Element, 0, expectedGates)
	c.QArith = make([]fr.Element, 0, expectedGates)
	c.QRange = make([]fr.Element, 0, expectedGates)
	c.QLogic = make([]fr.Element, 0, expectedGates)
	c.QFixedGroupAdd = make([]fr.Element, 0, expectedGates)
	c.QVariableGroupAdd = make([]fr.Element, 0, expectedGates)
	c.PI = make([]fr.Element, 0, expectedGates)

	c.ZeroVar = c.AddInput(fr.Element{})
	c.ConstrainToConstant(c.ZeroVar, fr.Element{})
	return c
}

// CircuitSize returns the number of gate rows emitted so far.
func (c *Composer) CircuitSize() int {
	return c.n
}

// PublicInputPositions returns the gate indices, in binding order, that
// carry a public input (spec.md §3 invariant I6: pairwise distinct and,
// after padding, < n).
func (c *Composer) PublicInputPositions() []int {
	out := make([]int, len(c.PIPositions))
	copy(out, c.PIPositions)
	return out
}

// ValidatePublicInputPositions checks invariant I6 (spec.md §3): every
// recorded public-input position must be pairwise distinct and lie within
// the current gate count. ConstrainPublicInput only ever appends the
// current gate index, so a duplicate can only arise if a caller bound the
// same row twice; sorting a copy with slices.Sort/slices.Compact is the
// cheapest way to detect that without a separate set on every call.
func (c *Composer) ValidatePublicInputPositions() error {
	sorted := append([]int(nil), c.PIPositions...)
	slices.Sort(sorted)
	if len(slices.Compact(sorted)) != len(sorted) {
		return perr.ErrDuplicatePublicInputPosition
	}
	for _, pos := range c.PIPositions {
		if pos < 0 || pos >= c.n {
			return perr.ErrMismatchedPolyLen
		}
	}
	return nil
}

// AddInput allocates a new Variable assigned to value.
func (c *Composer) AddInput(value fr.Element) Variable {
	v := c.Perm.NewVariable()
	c.Variables[v] = value
	return v
}

// gateParams bundles one row's selector coefficients so appendGate stays a
// single call site for every gadget.
type gateParams struct {
	QM, QL, QR, QO, Q4, QC             fr.Element
	QArith, QRange, QLogic             fr.Element
	QFixedGroupAdd, QVariableGroupAdd  fr.Element
	PI                                 fr.Element
}

// appendGate pushes one gate row: the four wire variables, the selector
// coefficients, the public-input contribution, registers the permutation
// occurrences, and advances the gate counter.
func (c *Composer) appendGate(a, b, o, d Variable, p gateParams) {
	gate := c.n

	c.WL = append(c.WL, a)
	c.WR = append(c.WR, b)
	c.WO = append(c.WO, o)
	c.W4 = append(c.W4, d)

	c.QM = append(c.QM, p.QM)
	c.QL = append(c.QL, p.QL)
	c.QR = append(c.QR, p.QR)
	c.QO = append(c.QO, p.QO)
	c.Q4 = append(c.Q4, p.Q4)
	c.QC = append(c.QC, p.QC)
	c.QArith = append(c.QArith, p.QArith)
	c.QRange = append(c.QRange, p.QRange)
	c.QLogic = append(c.QLogic, p.QLogic)
	c.QFixedGroupAdd = append(c.QFixedGroupAdd, p.QFixedGroupAdd)
	c.QVariableGroupAdd = append(c.QVariableGroupAdd, p.QVariableGroupAdd)
	c.PI = append(c.PI, p.PI)

	c.Perm.AddVariablesToMap(a, b, o, d, gate)
	c.n++
}
