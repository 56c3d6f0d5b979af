package composer

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
)

// PointAdditionGate constrains result = a + b on the embedded
// twisted-Edwards curve, for two witness-dependent (variable-base) points.
// It ports the original two-row wiring: row i carries x1, y1, x2, y2 with
// q_variable_group_add set, and row i+1 carries x3, y3 and the x1*y2 cross
// term the gate identity needs (the "_next" wires the curve_addition
// widget reads), so the quotient/linearisation check spans both rows.
func (c *Composer) PointAdditionGate(a, b Point) Point {
	curve := twistededwards.GetEdwardsCurve()

	x1 := c.Variables[a.X]
	y1 := c.Variables[a.Y]
	x2 := c.Variables[b.X]
	y2 := c.Variables[b.Y]

	var x1y2, y1x2, y1y2, x1x2 fr.Element
	x1y2.Mul(&x1, &y2)
	y1x2.Mul(&y1, &x2)
	y1y2.Mul(&y1, &y2)
	x1x2.Mul(&x1, &x2)

	var dTerm, x3, y3, one fr.Element
	one.SetOne()
	dTerm.Mul(&x1y2, &y1x2)
	dTerm.Mul(&dTerm, &curve.D)

	// x3 = (x1*y2 + y1*x2) / (1 + d*x1*y2*y1*x2)
	var xNum, xDen fr.Element
	xNum.Add(&x1y2, &y1x2)
	xDen.Add(&one, &dTerm)
	x3.Div(&xNum, &xDen)

	// y3 = (y1*y2 + x1*x2) / (1 - d*x1*y2*y1*x2)
	var yNum, yDen fr.Element
	yNum.Add(&y1y2, &x1x2)
	yDen.Sub(&one, &dTerm)
	y3.Div(&yNum, &yDen)

	x3Var := c.AddInput(x3)
	y3Var := c.AddInput(y3)
	x1y2Var := c.AddInput(x1y2)

	c.appendGate(a.X, a.Y, b.X, b.Y, gateParams{QVariableGroupAdd: fe(1)})
	c.appendGate(x3Var, y3Var, c.ZeroVar, x1y2Var, gateParams{})

	return Point{X: x3Var, Y: y3Var}
}

// AssertEqualPoint constrains two points to be equal, coordinate by
// coordinate.
func (c *Composer) AssertEqualPoint(a, b Point) {
	c.AssertEqual(a.X, b.X)
	c.AssertEqual(a.Y, b.Y)
}

// AssertEqualPublicPoint constrains point to equal the fixed, circuit-time
// known public point value.
func (c *Composer) AssertEqualPublicPoint(point Point, x, y fr.Element) {
	c.ConstrainToConstant(point.X, x)
	c.ConstrainToConstant(point.Y, y)
}
