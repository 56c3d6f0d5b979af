// Package permutation implements the copy-constraint (permutation) argument
// of the width-4 PLONK arithmetization: the variable/wire map, the sigma
// permutations derived from it, and the grand-product accumulator Z(X).
package permutation

import "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

// Variable identifies a wire value inside a composer. Index 0 is reserved by
// convention for the canonical zero variable.
type Variable int

// Wire names one of the four slots a gate row can place a variable in.
type Wire uint8

const (
	WireLeft Wire = iota
	WireRight
	WireOutput
	WireFourth
)

func (w Wire) String() string {
	switch w {
	case WireLeft:
		return "L"
	case WireRight:
		return "R"
	case WireOutput:
		return "O"
	case WireFourth:
		return "4"
	default:
		return "?"
	}
}

// WireSlot is a single occurrence of a Variable: wire kind plus gate index.
type WireSlot struct {
	Wire Wire
	Gate int
}

// Coset constants used to encode a WireSlot into a field element: k_wire *
// omega^gate. k_L is implicitly 1; k1, k2, k3 must be pairwise distinct
// non-quadratic-residue cosets of the evaluation domain's subgroup, fixed
// across prover and verifier. Reference values per spec.md §6.
var (
	K1 fr.Element
	K2 fr.Element
	K3 fr.Element
)

func init() {
	K1.SetUint64(7)
	K2.SetUint64(13)
	K3.SetUint64(17)
}

// CosetConstant returns the k_wire multiplier for w (1 for WireLeft).
func CosetConstant(w Wire) fr.Element {
	var k fr.Element
	switch w {
	case WireLeft:
		k.SetOne()
	case WireRight:
		k = K1
	case WireOutput:
		k = K2
	case WireFourth:
		k = K3
	}
	return k
}
