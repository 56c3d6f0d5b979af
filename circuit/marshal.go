package circuit

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/plonkcore/plonk/backend/plonk/bls12381"
	"github.com/plonkcore/plonk/perr"
)

// verifierDataDoc is the canonical, framing-agnostic representation of a
// VerifierData: the VerifierKey's own CBOR encoding embedded as an opaque
// blob (so VerifierKey keeps owning its wire format), plus the public input
// positions as a plain varint-delta-encoded byte stream. Positions are
// recorded in strictly increasing gate-index order (ConstrainPublicInput
// only ever appends the composer's current, monotonically growing gate
// count), so the deltas this package writes are always small non-negative
// integers even for circuits with thousands of public inputs.
type verifierDataDoc struct {
	Version   string
	Vk        []byte
	Positions []byte
}

// encodePositions delta-encodes pos (already known to be strictly
// increasing, per ConstrainPublicInput's binding order) as a stream of
// LEB128 varints, the cheapest packing for a long, mostly-small-gap integer
// sequence without pulling in a dedicated integer-compression library for a
// single call site.
func encodePositions(pos []int) []byte {
	var buf bytes.Buffer
	var varintBuf [binary.MaxVarintLen64]byte
	prev := 0
	for _, p := range pos {
		n := binary.PutUvarint(varintBuf[:], uint64(p-prev))
		buf.Write(varintBuf[:n])
		prev = p
	}
	return buf.Bytes()
}

func decodePositions(raw []byte, count int) ([]int, error) {
	out := make([]int, 0, count)
	r := bytes.NewReader(raw)
	prev := 0
	for r.Len() > 0 {
		delta, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, perr.ErrNotEnoughBytes
		}
		prev += int(delta)
		out = append(out, prev)
	}
	return out, nil
}

// WriteTo writes vd's canonical CBOR encoding to w (spec.md §6
// Serialization).
func (vd *VerifierData) WriteTo(w io.Writer) (int64, error) {
	var vkBuf bytes.Buffer
	if _, err := vd.Vk.WriteTo(&vkBuf); err != nil {
		return 0, err
	}
	enc, err := cbor.Marshal(verifierDataDoc{
		Version:   bls12381.FormatVersion.String(),
		Vk:        vkBuf.Bytes(),
		Positions: encodePositions(vd.PublicInputPositions),
	})
	if err != nil {
		return 0, err
	}
	n, err := w.Write(enc)
	return int64(n), err
}

// ReadVerifierData decodes a VerifierData previously written by WriteTo.
// The public input count is not itself serialized: decodePositions reads
// varints until the position stream is exhausted, so the count is
// len(PublicInputPositions) once decoded.
func ReadVerifierData(r io.Reader) (*VerifierData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc verifierDataDoc
	if err := cbor.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	vk, err := bls12381.ReadVerifierKey(bytes.NewReader(doc.Vk))
	if err != nil {
		return nil, err
	}
	positions, err := decodePositions(doc.Positions, 0)
	if err != nil {
		return nil, err
	}
	return &VerifierData{Vk: vk, PublicInputPositions: positions}, nil
}

// Fingerprint returns a blake2b-256 digest identifying this circuit
// instance's verifier-side description: the serialized VerifierKey and
// position list. Two VerifierData values produced from the same circuit
// (even across processes, since Compile is deterministic in everything but
// the KZG commitment randomness the SRS itself fixes) hash identically;
// callers can use this to tag a cached ProverKey/VerifierData pair without
// comparing the full serialized bytes.
func (vd *VerifierData) Fingerprint() ([32]byte, error) {
	var buf bytes.Buffer
	if _, err := vd.WriteTo(&buf); err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(buf.Bytes()), nil
}
