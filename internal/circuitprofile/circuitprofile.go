// Package circuitprofile builds a pprof profile of a compiled circuit, one
// sample per gate kind, so `go tool pprof` can show where a circuit's rows
// went the same way it shows where a program's CPU time went. Mirrors
// gnark's own constraint-profiling tooling, built on the same
// google/pprof/profile data model rather than a bespoke report format.
package circuitprofile

import (
	"bytes"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/google/pprof/profile"
	"github.com/icza/bitio"

	"github.com/plonkcore/plonk/composer"
)

func countNonZero(v []fr.Element) int64 {
	var n int64
	for i := range v {
		if !v[i].IsZero() {
			n++
		}
	}
	return n
}

// countRows returns, for each gate kind, the number of rows where the
// selector it is gated on is nonzero.
func countRows(c *composer.Composer) map[string]int64 {
	return map[string]int64{
		"arithmetic": countNonZero(c.QArith),
		"range":      countNonZero(c.QRange),
		"logic":      countNonZero(c.QLogic),
		"fixed_base": countNonZero(c.QFixedGroupAdd),
		"var_base":   countNonZero(c.QVariableGroupAdd),
	}
}

// gateKindOrder is the fixed report order Profile emits samples in.
var gateKindOrder = []string{"arithmetic", "range", "logic", "fixed_base", "var_base"}

// Profile builds a pprof Profile with one sample per gate kind, its value
// the number of rows gated on that selector. The profile's sample type is
// "rows", so `go tool pprof -top` reads naturally as "rows spent in each
// gate kind".
func Profile(c *composer.Composer) (*profile.Profile, error) {
	counts := countRows(c)

	p := &profile.Profile{
		SampleType: []*profile.ValueType{{Type: "rows", Unit: "count"}},
	}

	for i, kind := range gateKindOrder {
		id := uint64(i + 1)
		fn := &profile.Function{ID: id, Name: kind, SystemName: kind}
		loc := &profile.Location{ID: id, Line: []profile.Line{{Function: fn}}}
		p.Function = append(p.Function, fn)
		p.Location = append(p.Location, loc)
		p.Sample = append(p.Sample, &profile.Sample{
			Location: []*profile.Location{loc},
			Value:    []int64{counts[kind]},
		})
	}

	if err := p.CheckValid(); err != nil {
		return nil, err
	}
	return p, nil
}

// rowKind numbers the five mutually exclusive gate families a row can be
// gated on, in the same order gateKindOrder reports them, plus "none" for a
// padding row where every selector is zero.
type rowKind uint8

const (
	rowKindNone rowKind = iota
	rowKindArithmetic
	rowKindRange
	rowKindLogic
	rowKindFixedBase
	rowKindVarBase
)

func classifyRow(c *composer.Composer, i int) rowKind {
	switch {
	case !c.QArith[i].IsZero():
		return rowKindArithmetic
	case !c.QRange[i].IsZero():
		return rowKindRange
	case !c.QLogic[i].IsZero():
		return rowKindLogic
	case !c.QFixedGroupAdd[i].IsZero():
		return rowKindFixedBase
	case !c.QVariableGroupAdd[i].IsZero():
		return rowKindVarBase
	default:
		return rowKindNone
	}
}

// EncodeRowKinds packs c's per-row gate-kind classification into a 3-bit-
// per-row bitstream (six kinds fit in 3 bits), the same bit-packed debug
// dump shape gnark's own circuit-profiling tools use to keep a per-row trace
// small enough to log alongside a profile without it dominating the output.
func EncodeRowKinds(c *composer.Composer) ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for i := 0; i < c.CircuitSize(); i++ {
		if err := w.WriteBits(uint64(classifyRow(c, i)), 3); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeRowKinds unpacks a bitstream produced by EncodeRowKinds back into
// one rowKind per row.
func DecodeRowKinds(raw []byte, numRows int) ([]rowKind, error) {
	r := bitio.NewReader(bytes.NewReader(raw))
	out := make([]rowKind, numRows)
	for i := 0; i < numRows; i++ {
		bits, err := r.ReadBits(3)
		if err != nil {
			if err == io.EOF {
				return nil, err
			}
			return nil, err
		}
		out[i] = rowKind(bits)
	}
	return out, nil
}
