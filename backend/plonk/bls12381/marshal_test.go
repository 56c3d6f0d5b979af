package bls12381_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/plonkcore/plonk/backend/plonk/bls12381"
	"github.com/plonkcore/plonk/internal/accelerator"
)

// TestVerifierKeyRoundTripsByteIdentical exercises property P9 (spec.md
// §8): serializing a VerifierKey and reading it back must reproduce every
// field exactly, and serializing the decoded copy again must reproduce the
// original bytes.
func TestVerifierKeyRoundTripsByteIdentical(t *testing.T) {
	c := buildSmallComposer(t)
	srs := newTestSRS(t, 32)

	vk, err := bls12381.PreprocessVerifier(c, srs, bls12381.NewTranscript("roundtrip"), accelerator.New())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = vk.WriteTo(&buf)
	require.NoError(t, err)

	decoded, err := bls12381.ReadVerifierKey(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	if diff := cmp.Diff(vk, decoded); diff != "" {
		t.Fatalf("VerifierKey round trip mismatch (-want +got):\n%s", diff)
	}

	var buf2 bytes.Buffer
	_, err = decoded.WriteTo(&buf2)
	require.NoError(t, err)
	require.True(t, bytes.Equal(buf.Bytes(), buf2.Bytes()), "re-encoding a decoded VerifierKey must be byte-identical")
}

func TestProverKeyRoundTrips(t *testing.T) {
	c := buildSmallComposer(t)
	srs := newTestSRS(t, 32)

	pk, err := bls12381.PreprocessProver(c, srs, bls12381.NewTranscript("roundtrip"), accelerator.New())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = pk.WriteTo(&buf)
	require.NoError(t, err)

	decoded, err := bls12381.ReadProverKey(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	// fft.Domain carries unexported, lazily-computed twiddle caches that
	// cmp can't traverse, so compare the fields WriteTo actually commits
	// to the wire rather than the whole struct.
	require.Equal(t, pk.N, decoded.N)
	require.Equal(t, pk.Domain.Cardinality, decoded.Domain.Cardinality)
	require.Equal(t, pk.Domain4.Cardinality, decoded.Domain4.Cardinality)
	if diff := cmp.Diff(pk.Selectors, decoded.Selectors); diff != "" {
		t.Fatalf("ProverKey.Selectors round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(pk.Vk, decoded.Vk); diff != "" {
		t.Fatalf("ProverKey.Vk round trip mismatch (-want +got):\n%s", diff)
	}
}
