package composer

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/plonkcore/plonk/perr"
)

// LogicGate constrains result = a AND b (if isXor is false) or a XOR b (if
// isXor is true), for two numBits-wide witnesses, using the same
// quad-accumulator structure as RangeGate: each gate row absorbs one 2-bit
// chunk of both operands and of the running bitwise-combined result,
// flagged by q_logic instead of q_range. q_c on the last row distinguishes
// AND (1) from XOR (0), the convention the range gate's sibling logic gate
// uses to let one selector polynomial serve both operations.
func (c *Composer) LogicGate(a, b Variable, numBits int, isXor bool) (Variable, error) {
	if numBits%2 != 0 {
		return 0, perr.ErrOddRangeBitCount
	}

	aBits := c.witnessBits(a, numBits)
	bBits := c.witnessBits(b, numBits)

	numQuads := numBits / 2
	usedGates := numQuads + 1

	var aAcc, bAcc, cAcc fr.Element
	var four fr.Element
	four.SetUint64(4)

	aAccs := make([]Variable, 0, usedGates)
	bAccs := make([]Variable, 0, usedGates)
	cAccs := make([]Variable, 0, usedGates)
	aAccs = append(aAccs, c.AddInput(aAcc))
	bAccs = append(bAccs, c.AddInput(bAcc))
	cAccs = append(cAccs, c.AddInput(cAcc))

	for i := numQuads - 1; i >= 0; i-- {
		aq := quadAt(aBits, i)
		bq := quadAt(bBits, i)
		var cq uint64
		if isXor {
			cq = aq ^ bq
		} else {
			cq = aq & bq
		}

		var aqFe, bqFe, cqFe fr.Element
		aqFe.SetUint64(aq)
		bqFe.SetUint64(bq)
		cqFe.SetUint64(cq)

		aAcc.Mul(&aAcc, &four)
		aAcc.Add(&aAcc, &aqFe)
		bAcc.Mul(&bAcc, &four)
		bAcc.Add(&bAcc, &bqFe)
		cAcc.Mul(&cAcc, &four)
		cAcc.Add(&cAcc, &cqFe)

		aAccs = append(aAccs, c.AddInput(aAcc))
		bAccs = append(bAccs, c.AddInput(bAcc))
		cAccs = append(cAccs, c.AddInput(cAcc))
	}

	discriminator := fr.Element{}
	if !isXor {
		discriminator.SetOne()
	}

	for g := 0; g < usedGates; g++ {
		qc := fr.Element{}
		qlogic := fe(1)
		if g == usedGates-1 {
			qlogic = fr.Element{}
			qc = discriminator
		}
		c.appendGate(aAccs[g], bAccs[g], c.ZeroVar, cAccs[g], gateParams{
			QLogic: qlogic,
			QC:     qc,
		})
	}

	result := cAccs[len(cAccs)-1]
	return result, nil
}

func quadAt(bits interface{ Test(uint) bool }, quadIndex int) uint64 {
	lo := bits.Test(uint(quadIndex * 2))
	hi := bits.Test(uint(quadIndex*2 + 1))
	var v uint64
	if lo {
		v |= 1
	}
	if hi {
		v |= 2
	}
	return v
}
