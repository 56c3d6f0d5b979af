// Package composer builds a width-4 PLONK arithmetization: it owns the
// witness assignment, the eleven selector polynomial vectors, and the gadget
// library (arithmetic, range, fixed-base and variable-base curve gates) that
// translate a circuit description into gate rows ready for preprocessing.
package composer

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/plonkcore/plonk/permutation"
)

// Variable re-exports permutation.Variable: the composer and the
// permutation package must agree on variable identity, and centralizing the
// type in permutation avoids an import cycle (composer depends on
// permutation, never the reverse).
type Variable = permutation.Variable

// Point is a variable pair representing a point on the embedded
// twisted-Edwards curve: X and Y are each a Variable carrying one
// coordinate.
type Point struct {
	X, Y Variable
}
