package permutation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plonkcore/plonk/permutation"
)

func TestNewVariableAllocatesDistinctIndices(t *testing.T) {
	assert := require.New(t)

	p := permutation.New()
	a := p.NewVariable()
	b := p.NewVariable()
	assert.NotEqual(a, b)
	assert.Contains(p.VariableMap, a)
	assert.Contains(p.VariableMap, b)
}

func TestAddVariableToMapPanicsOnUnknownVariable(t *testing.T) {
	p := permutation.New()
	assert := require.New(t)
	assert.Panics(func() {
		p.AddVariableToMap(permutation.Variable(42), permutation.WireSlot{Wire: permutation.WireLeft, Gate: 0})
	})
}

// TestComputeSigmaPermutationsIsIdentityOnSingletonVariable checks that a
// variable touched by exactly one gate row maps to itself (property P3's
// base case: a singleton occurrence list rotates to itself).
func TestComputeSigmaPermutationsIsIdentityOnSingletonVariable(t *testing.T) {
	assert := require.New(t)

	p := permutation.New()
	v := p.NewVariable()
	p.AddVariableToMap(v, permutation.WireSlot{Wire: permutation.WireLeft, Gate: 2})

	sigma := p.ComputeSigmaPermutations(8)
	assert.Equal(permutation.WireSlot{Wire: permutation.WireLeft, Gate: 2}, sigma[permutation.WireLeft][2])
}

// TestComputeSigmaPermutationsRotatesSharedVariable checks property P3: a
// variable occurring at k wire slots produces a single cycle of length k
// across sigma, so following the sigma chain from any one of its occurrences
// visits every other occurrence exactly once before returning.
func TestComputeSigmaPermutationsRotatesSharedVariable(t *testing.T) {
	assert := require.New(t)

	p := permutation.New()
	v := p.NewVariable()
	occurrences := []permutation.WireSlot{
		{Wire: permutation.WireLeft, Gate: 0},
		{Wire: permutation.WireRight, Gate: 1},
		{Wire: permutation.WireOutput, Gate: 2},
		{Wire: permutation.WireFourth, Gate: 3},
	}
	for _, slot := range occurrences {
		p.AddVariableToMap(v, slot)
	}

	sigma := p.ComputeSigmaPermutations(4)

	cur := occurrences[0]
	visited := map[permutation.WireSlot]bool{}
	for i := 0; i < len(occurrences); i++ {
		assert.False(visited[cur], "cycle revisited a slot before covering all occurrences")
		visited[cur] = true
		cur = sigma[cur.Wire][cur.Gate]
	}
	assert.Equal(occurrences[0], cur, "cycle must close back on the starting slot")
	assert.Len(visited, len(occurrences))
}
