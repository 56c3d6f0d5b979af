package permutation

import "fmt"

// Permutation owns the variable -> occurrences map described in spec.md §3:
// every time a gate row is emitted, the composer must register the
// variables it placed on each wire here so the sigma permutations (and
// hence the copy-constraint argument) can see every occurrence.
type Permutation struct {
	// VariableMap maps a Variable to every WireSlot where it appears.
	VariableMap map[Variable][]WireSlot

	nextVar Variable
}

// New returns an empty Permutation.
func New() *Permutation {
	return WithCapacity(0)
}

// WithCapacity returns an empty Permutation pre-sized for expectedSize
// variables, mirroring the teacher's own capacity-hinted map construction.
func WithCapacity(expectedSize int) *Permutation {
	return &Permutation{
		VariableMap: make(map[Variable][]WireSlot, expectedSize),
	}
}

// NewVariable allocates and registers a fresh Variable.
func (p *Permutation) NewVariable() Variable {
	v := p.nextVar
	p.nextVar++
	p.VariableMap[v] = make([]WireSlot, 0, 16)
	return v
}

func (p *Permutation) validVariables(vars ...Variable) bool {
	for _, v := range vars {
		if _, ok := p.VariableMap[v]; !ok {
			return false
		}
	}
	return true
}

// AddVariablesToMap registers one gate row's four wire occurrences in a
// single call, as spec.md §4.1 requires every gate emission to do.
func (p *Permutation) AddVariablesToMap(a, b, c, d Variable, gateIndex int) {
	p.AddVariableToMap(a, WireSlot{WireLeft, gateIndex})
	p.AddVariableToMap(b, WireSlot{WireRight, gateIndex})
	p.AddVariableToMap(c, WireSlot{WireOutput, gateIndex})
	p.AddVariableToMap(d, WireSlot{WireFourth, gateIndex})
}

// AddVariableToMap registers a single occurrence. It panics if the variable
// was never allocated via NewVariable: that can only happen from a composer
// bug (invariant I2), never from user-controlled witness data.
func (p *Permutation) AddVariableToMap(v Variable, slot WireSlot) {
	if !p.validVariables(v) {
		panic(fmt.Sprintf("permutation: variable %d was never allocated", v))
	}
	p.VariableMap[v] = append(p.VariableMap[v], slot)
}

// ComputeSigmaPermutations derives sigma_L, sigma_R, sigma_O, sigma_F for a
// circuit of n gates: every variable's occurrence list is rotated by one
// (slot_i -> slot_{(i+1) mod k}); slots belonging to variables with no
// registered occurrences (padding rows) map to themselves (property P3).
func (p *Permutation) ComputeSigmaPermutations(n int) [4][]WireSlot {
	var sigma [4][]WireSlot
	for w := Wire(0); w < 4; w++ {
		sigma[w] = make([]WireSlot, n)
		for i := 0; i < n; i++ {
			sigma[w][i] = WireSlot{w, i}
		}
	}

	for _, slots := range p.VariableMap {
		k := len(slots)
		if k == 0 {
			continue
		}
		for i, s := range slots {
			next := slots[(i+1)%k]
			sigma[s.Wire][s.Gate] = next
		}
	}
	return sigma
}
