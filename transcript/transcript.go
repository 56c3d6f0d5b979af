// Package transcript implements the Fiat-Shamir transcript used to turn the
// interactive PLONK protocol into a non-interactive proof: the prover and
// verifier each replay the same sequence of labeled appends and derive the
// same challenges from them, so neither side can choose a challenge after
// seeing what it affects.
package transcript

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

// Transcript wraps gnark-crypto's hash-based Fiat-Shamir transcript with the
// labeled append/challenge vocabulary the PLONK prover and verifier share:
// append a commitment or scalar under a label, then derive a challenge bound
// to everything appended under (and before) that label.
type Transcript struct {
	inner *fiatshamir.Transcript
}

// New builds a Transcript that will eventually be asked to derive a
// challenge for each of labels, in order. gnark-crypto's Fiat-Shamir
// transcript needs to know the full label set up front so it can chain each
// challenge into the hash state of the next.
func New(labels ...string) *Transcript {
	return &Transcript{inner: fiatshamir.NewTranscript(fiatshamir.SHA256, labels...)}
}

// AppendCommitment binds a KZG commitment to label.
func (t *Transcript) AppendCommitment(label string, c *kzg.Digest) error {
	b := c.Marshal()
	return t.inner.Bind(label, b)
}

// AppendScalar binds a field element to label.
func (t *Transcript) AppendScalar(label string, s *fr.Element) error {
	b := s.Marshal()
	return t.inner.Bind(label, b)
}

// AppendMessage binds an arbitrary byte string to label, for data that is
// not itself a commitment or scalar (circuit size, domain separators).
func (t *Transcript) AppendMessage(label string, msg []byte) error {
	return t.inner.Bind(label, msg)
}

// ChallengeScalar derives the challenge bound to label (and everything
// appended at or before it) and reduces it into the scalar field.
func (t *Transcript) ChallengeScalar(label string) (fr.Element, error) {
	b, err := t.inner.ComputeChallenge(label)
	if err != nil {
		return fr.Element{}, err
	}
	var out fr.Element
	out.SetBytes(b)
	return out, nil
}

// CircuitDomainSep appends a domain separator fixing the circuit's gate
// count, so transcripts for circuits of different sizes can never collide.
func (t *Transcript) CircuitDomainSep(label string, n uint64) error {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(n >> (8 * (7 - i)))
	}
	return t.inner.Bind(label, buf[:])
}
