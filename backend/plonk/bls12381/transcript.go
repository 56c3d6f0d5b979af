package bls12381

import (
	"github.com/plonkcore/plonk/transcript"
)

// CanonicalChallengeNames lists, in draw order, every challenge spec.md's
// five-round prover protocol derives from the Fiat-Shamir transcript:
// beta/gamma for the permutation argument (round 2), alpha plus the four
// custom-gate separation challenges (round 3), zeta (round 4), and v, the
// KZG batching challenge (round 5). gnark-crypto's fiat-shamir transcript
// requires the full set to be declared at construction time so it can chain
// each challenge's output into the next one's hash input.
var CanonicalChallengeNames = []string{
	"beta", "gamma", "alpha",
	"range", "logic", "fixed_base", "var_base",
	"zeta", "v",
}

// NewTranscript returns a fresh Transcript declared over
// CanonicalChallengeNames and domain-separated by label (typically a
// circuit identifier), so transcripts for unrelated circuits can never
// collide even if both happen to bind the same sequence of values.
func NewTranscript(label string) *transcript.Transcript {
	tr := transcript.New(CanonicalChallengeNames...)
	_ = tr.AppendMessage("beta", []byte(label))
	return tr
}
