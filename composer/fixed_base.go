package composer

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
)

// wnaf2 returns the width-2 non-adjacent form of k, one digit (-1, 0 or 1)
// per bit position, least-significant first, padded with trailing zero
// digits up to numBits.
func wnaf2(k *big.Int, numBits int) []int {
	digits := make([]int, 0, numBits)
	n := new(big.Int).Set(k)
	two := big.NewInt(2)
	four := big.NewInt(4)

	for n.Sign() != 0 {
		if n.Bit(0) == 1 {
			mod4 := new(big.Int).Mod(n, four).Int64()
			var d int64
			if mod4 == 3 {
				d = -1
			} else {
				d = 1
			}
			digits = append(digits, int(d))
			n.Sub(n, big.NewInt(d))
		} else {
			digits = append(digits, 0)
		}
		n.Div(n, two)
	}
	for len(digits) < numBits {
		digits = append(digits, 0)
	}
	return digits
}

// fixedBasePointMultiples returns [2^(numBits-1)*base, ..., 4*base, 2*base, base]
// in affine form, via repeated doubling then reversal, so that multiples[i]
// pairs with the i-th step of FixedBaseScalarMul's MSB-first wnaf traversal
// (see original_source/src/constraint_system/ecc/scalar_mul/fixed_base.rs,
// which builds the same LSB-first array and calls point_multiples.reverse()
// before the MSB-first loop for the same reason).
func fixedBasePointMultiples(base twistededwards.PointAffine, numBits int) []twistededwards.PointAffine {
	multiples := make([]twistededwards.PointAffine, numBits)
	multiples[0] = base
	for i := 1; i < numBits; i++ {
		multiples[i].Double(&multiples[i-1])
	}
	for l, r := 0, numBits-1; l < r; l, r = l+1, r-1 {
		multiples[l], multiples[r] = multiples[r], multiples[l]
	}
	return multiples
}

// FixedBaseScalarMul constrains result = scalar * base, where base is a
// fixed, circuit-time-known generator (never a witness-dependent point).
// It ports the original wnaf-based accumulator gadget: at each of numBits
// steps the scalar accumulator doubles-and-adds a wnaf digit while the
// point accumulator adds the matching +-2^i*base term, with the per-step
// constants (x_beta, y_beta, x_beta*y_beta) baked directly into that row's
// selectors since they depend only on the fixed base and bit index, never
// on the witness.
func (c *Composer) FixedBaseScalarMul(scalar Variable, base twistededwards.PointAffine) Point {
	const numBits = 255 // bls12-381 Fr modulus bit length, rounded up

	multiples := fixedBasePointMultiples(base, numBits)

	scalarValue := c.Variables[scalar]
	var scalarBig big.Int
	scalarValue.ToBigIntRegular(&scalarBig)
	wnaf := wnaf2(&scalarBig, numBits)

	scalarAcc := make([]fr.Element, numBits+1)
	pointAcc := make([]twistededwards.PointAffine, numBits+1)
	xyAlphas := make([]fr.Element, numBits+1)
	pointAcc[0].X.SetZero()
	pointAcc[0].Y.SetOne()

	var two fr.Element
	two.SetUint64(2)

	for i := 0; i < numBits; i++ {
		digit := wnaf[numBits-1-i]
		var scalarToAdd fr.Element
		var pointToAdd twistededwards.PointAffine
		pointToAdd.X.SetZero()
		pointToAdd.Y.SetOne()

		switch digit {
		case 1:
			scalarToAdd.SetOne()
			pointToAdd = multiples[i]
		case -1:
			scalarToAdd.SetOne()
			scalarToAdd.Neg(&scalarToAdd)
			pointToAdd = multiples[i]
			pointToAdd.Neg(&pointToAdd)
		}

		scalarAcc[i+1].Mul(&scalarAcc[i], &two)
		scalarAcc[i+1].Add(&scalarAcc[i+1], &scalarToAdd)

		pointAcc[i+1].Add(&pointAcc[i], &pointToAdd)

		xyAlphas[i+1].Mul(&pointToAdd.X, &pointToAdd.Y)
	}

	var accX, accY, accumulatedBit Variable
	for i := 0; i <= numBits; i++ {
		accX = c.AddInput(pointAcc[i].X)
		accY = c.AddInput(pointAcc[i].Y)
		accumulatedBit = c.AddInput(scalarAcc[i])

		if i == 0 {
			var zero, one fr.Element
			one.SetOne()
			c.ConstrainToConstant(accX, zero)
			c.ConstrainToConstant(accY, one)
			c.ConstrainToConstant(accumulatedBit, zero)
		}
		if i == numBits {
			break
		}

		xyAlpha := c.AddInput(xyAlphas[i+1])
		xBeta := multiples[i].X
		yBeta := multiples[i].Y
		var xyBeta fr.Element
		xyBeta.Mul(&xBeta, &yBeta)

		// fixed-base wnaf round: the constants derived from this step's
		// fixed multiple live in qL/qR/qC, flagged by qFixedGroupAdd.
		c.appendGate(accX, accY, xyAlpha, accumulatedBit, gateParams{
			QL:             xBeta,
			QR:             yBeta,
			QC:             xyBeta,
			QFixedGroupAdd: fe(1),
		})
	}

	lastX := accX
	lastY := accY
	c.BigAddGate(lastX, lastY, c.ZeroVar, accumulatedBit, fr.Element{}, fr.Element{}, fr.Element{}, fr.Element{}, fr.Element{})
	c.AssertEqual(accumulatedBit, scalar)

	return Point{X: lastX, Y: lastY}
}
