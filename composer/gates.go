package composer

import "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

func fe(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func negOne() fr.Element {
	var e fr.Element
	e.SetOne()
	e.Neg(&e)
	return e
}

// Add returns a new Variable constrained to equal a+b, via the arithmetic
// identity qL*a + qR*b + qO*c = 0 with qL=qR=1, qO=-1.
func (c *Composer) Add(a, b Variable) Variable {
	va := c.Variables[a]
	vb := c.Variables[b]
	var sum fr.Element
	sum.Add(&va, &vb)
	out := c.AddInput(sum)

	c.appendGate(a, b, out, c.ZeroVar, gateParams{
		QL:     fe(1),
		QR:     fe(1),
		QO:     negOne(),
		QArith: fe(1),
	})
	return out
}

// Mul returns a new Variable constrained to equal a*b, via qM*a*b + qO*c = 0
// with qM=1, qO=-1.
func (c *Composer) Mul(a, b Variable) Variable {
	va := c.Variables[a]
	vb := c.Variables[b]
	var prod fr.Element
	prod.Mul(&va, &vb)
	out := c.AddInput(prod)

	c.appendGate(a, b, out, c.ZeroVar, gateParams{
		QM:     fe(1),
		QO:     negOne(),
		QArith: fe(1),
	})
	return out
}

// PolyGate emits one row of the general arithmetic identity
// qM*a*b + qL*a + qR*b + qO*c + q4*d + qC = 0 with caller-supplied
// coefficients, for gadgets that do not fit the Add/Mul shorthands.
func (c *Composer) PolyGate(a, b, o, d Variable, qm, ql, qr, qo, q4, qc fr.Element) {
	c.appendGate(a, b, o, d, gateParams{
		QM: qm, QL: ql, QR: qr, QO: qo, Q4: q4, QC: qc,
		QArith: fe(1),
	})
}

// BigAddGate emits a row of qL*a + qR*b + qO*c + q4*d + qC = 0 (qM=0) over
// caller-supplied variables whose values the caller has already computed to
// satisfy the identity; it returns nothing. FixedBaseScalarMul uses it for
// its final row.
func (c *Composer) BigAddGate(a, b, o, d Variable, ql, qr, qo, q4, qc fr.Element) {
	c.appendGate(a, b, o, d, gateParams{
		QL: ql, QR: qr, QO: qo, Q4: q4, QC: qc,
		QArith: fe(1),
	})
}

// AssertEqual constrains a and b to hold the same value: qL*a - qR*b = 0.
func (c *Composer) AssertEqual(a, b Variable) {
	c.appendGate(a, b, c.ZeroVar, c.ZeroVar, gateParams{
		QL:     fe(1),
		QR:     negOne(),
		QArith: fe(1),
	})
}

// ConstrainToConstant constrains a to equal the fixed, circuit-time-known
// constant value: qL*a + qC = 0 with qC = -constant.
func (c *Composer) ConstrainToConstant(a Variable, constant fr.Element) {
	var negConstant fr.Element
	negConstant.Neg(&constant)
	c.appendGate(a, c.ZeroVar, c.ZeroVar, c.ZeroVar, gateParams{
		QL:     fe(1),
		QC:     negConstant,
		QArith: fe(1),
	})
}

// ConstrainPublicInput binds a to the witness-time-known public input
// value: qL*a + PI = 0 with PI = -value. Unlike ConstrainToConstant, the
// value is supplied per proof (it is part of the instance, not the circuit
// description) and so flows through the PI vector instead of QC. The row
// index is recorded in PIPositions (spec.md §4.1's "recording a pi on a
// row") so the circuit package can hand the verifier the position list
// independently of this composer instance.
func (c *Composer) ConstrainPublicInput(a Variable, value fr.Element) {
	var negValue fr.Element
	negValue.Neg(&value)
	c.PIPositions = append(c.PIPositions, c.n)
	c.appendGate(a, c.ZeroVar, c.ZeroVar, c.ZeroVar, gateParams{
		QL:     fe(1),
		QArith: fe(1),
		PI:     negValue,
	})
}
