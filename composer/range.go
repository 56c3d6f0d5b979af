package composer

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/plonkcore/plonk/perr"
)

// witnessBits decomposes witness's assigned value into a little-endian
// bitset sized to at least numBits, so the quad-accumulation loop below can
// index bits without re-deriving a big.Int slice per pair.
func (c *Composer) witnessBits(witness Variable, numBits int) *bitset.BitSet {
	v := c.Variables[witness]
	var asBig big.Int
	v.ToBigIntRegular(&asBig)

	bs := bitset.New(uint(numBits))
	for i := 0; i < numBits; i++ {
		if asBig.Bit(i) == 1 {
			bs.Set(uint(i))
		}
	}
	return bs
}

// RangeGate constrains witness to lie in [0, 2^numBits). It ports the
// quad-accumulator decomposition from the original range gate: each gate
// row absorbs four 2-bit quads (one per wire), and accumulator_{i+1} = 4 *
// accumulator_i + quad_i, so the final accumulator must equal witness
// itself. numBits must be even; an odd width has no quad representation for
// its leftover bit, so this returns ErrOddRangeBitCount instead of the
// panic the original implementation used.
func (c *Composer) RangeGate(witness Variable, numBits int) error {
	if numBits%2 != 0 {
		return perr.ErrOddRangeBitCount
	}

	bits := c.witnessBits(witness, numBits)

	numGates := numBits >> 3
	if numBits%8 != 0 {
		numGates++
	}
	numQuads := numGates * 4
	pad := 1 + (((numQuads << 1) - numBits) >> 1)
	usedGates := numGates + 1

	// wl/wr/wo/w4 hold the wire assignment for the usedGates rows this
	// gadget will emit, filled in the same reversed per-gate order as the
	// original (quad index 0 of a gate lands on w4, 1 on wo, 2 on wr, 3
	// on wl).
	wl := make([]Variable, 0, usedGates)
	wr := make([]Variable, 0, usedGates)
	wo := make([]Variable, 0, usedGates)
	w4 := make([]Variable, 0, usedGates)

	addWire := func(i int, v Variable) {
		switch i % 4 {
		case 0:
			w4 = append(w4, v)
		case 1:
			wo = append(wo, v)
		case 2:
			wr = append(wr, v)
		case 3:
			wl = append(wl, v)
		}
	}

	for i := 0; i < pad; i++ {
		addWire(i, c.ZeroVar)
	}

	var accumulator fr.Element
	var four fr.Element
	four.SetUint64(4)

	accumulators := make([]Variable, 0, numQuads-pad+1)
	for i := pad; i <= numQuads; i++ {
		bitIndex := (numQuads - i) << 1
		var q0, q1 uint64
		if bits.Test(uint(bitIndex)) {
			q0 = 1
		}
		if bits.Test(uint(bitIndex + 1)) {
			q1 = 1
		}
		quad := q0 + 2*q1

		accumulator.Mul(&accumulator, &four)
		var quadFe fr.Element
		quadFe.SetUint64(quad)
		accumulator.Add(&accumulator, &quadFe)

		accumulatorVar := c.AddInput(accumulator)
		accumulators = append(accumulators, accumulatorVar)
		addWire(i, accumulatorVar)
	}

	// w_l/w_r/w_o picked up one extra zero row at the tail in the original
	// (the gate that only carries the genesis/last quad on w_4 has no
	// left/right/output contribution); pad them to usedGates to match.
	for len(wl) < usedGates {
		wl = append(wl, c.ZeroVar)
	}
	for len(wr) < usedGates {
		wr = append(wr, c.ZeroVar)
	}
	for len(wo) < usedGates {
		wo = append(wo, c.ZeroVar)
	}

	one := fe(1)
	var zero fr.Element
	for g := 0; g < usedGates; g++ {
		qr := one
		if g == usedGates-1 {
			qr = zero
		}
		c.appendGate(wl[g], wr[g], wo[g], w4[g], gateParams{
			QRange: qr,
		})
	}

	lastAccumulator := accumulators[len(accumulators)-1]
	c.AssertEqual(lastAccumulator, witness)
	return nil
}
