// Package perr collects the sentinel errors returned across the prover,
// verifier, preprocessing and composer packages, in the same
// errors.New/errors.Is style gnark-crypto uses for its own kzg and fft
// packages.
package perr

import "errors"

var (
	// ErrInvalidEvalDomainSize is returned when the circuit size requires an
	// evaluation domain larger than the scalar field's two-adicity supports.
	// Preprocessing also returns it when the domain would have fewer than
	// two points.
	ErrInvalidEvalDomainSize = errors.New("plonk: required evaluation domain exceeds the field's two-adicity")

	// ErrMismatchedPolyLen is returned during preprocessing when the
	// composer's selector and public-input vectors do not all have one entry
	// per gate, and by ValidatePublicInputPositions when a recorded
	// public-input position lies outside the gate count.
	ErrMismatchedPolyLen = errors.New("plonk: gate-row vectors have mismatched lengths")

	// ErrCircuitAlreadyPreprocessed names the failure of preprocessing the
	// same composer twice. No function in this module returns it:
	// PreprocessProver keeps no record of whether a composer has already
	// been preprocessed.
	ErrCircuitAlreadyPreprocessed = errors.New("plonk: circuit has already been preprocessed")

	// ErrProofVerificationFailed is returned by Verify when the final
	// pairing check (or any batched KZG opening it depends on) fails.
	ErrProofVerificationFailed = errors.New("plonk: proof verification failed")

	// ErrCircuitInputsNotFound names a missing witness value for a wire the
	// circuit assigned. No function in this module returns it.
	ErrCircuitInputsNotFound = errors.New("plonk: circuit inputs not found")

	// ErrInvalidPublicInputBytes names a serialized public input value that
	// cannot be decoded back into its tagged variant. No function in this
	// module returns it.
	ErrInvalidPublicInputBytes = errors.New("plonk: invalid public input bytes")

	// ErrOddRangeBitCount is returned by RangeGate when asked to constrain a
	// bit width that is not a multiple of two: the gate's quadruple
	// (2-bit-per-step) decomposition has no representation for a dangling
	// single bit.
	ErrOddRangeBitCount = errors.New("plonk: range gate bit width must be even")

	// ErrDegreeIsZero names a request for an SRS of degree zero. No function
	// in this module returns it.
	ErrDegreeIsZero = errors.New("plonk: degree is zero")

	// ErrTruncatedDegreeTooLarge names trimming an SRS to a degree larger
	// than the one it was generated for. No function in this module
	// returns it.
	ErrTruncatedDegreeTooLarge = errors.New("plonk: cannot trim SRS past its maximum degree")

	// ErrPolynomialDegreeTooLarge is returned when committing to a
	// polynomial whose degree exceeds what the proving key's SRS supports.
	ErrPolynomialDegreeTooLarge = errors.New("plonk: polynomial degree too large for this proving key")

	// ErrNotEnoughBytes is returned by marshal/unmarshal when a byte slice
	// ends before a field or record is fully read.
	ErrNotEnoughBytes = errors.New("plonk: not enough bytes to decode")

	// ErrPointMalformed is returned when a serialized curve point fails its
	// subgroup or coordinate check on decode.
	ErrPointMalformed = errors.New("plonk: malformed curve point")

	// ErrScalarMalformed is returned when a serialized scalar does not
	// reduce to a canonical field element.
	ErrScalarMalformed = errors.New("plonk: malformed scalar")

	// ErrUnsupportedGateKind names a gate selector combination a composer
	// does not know how to evaluate. No function in this module returns it.
	ErrUnsupportedGateKind = errors.New("plonk: unsupported gate kind")

	// ErrPublicInputPositionMismatch is returned when the number of public
	// input values supplied to VerifyProof does not match the number of
	// positions recorded in VerifierData (property P8).
	ErrPublicInputPositionMismatch = errors.New("plonk: public input values do not match recorded positions")

	// ErrUnsupportedFormatVersion is returned when decoding a serialized
	// ProverKey/VerifierKey/VerifierData/Proof whose embedded format version
	// has a different major version than this build understands.
	ErrUnsupportedFormatVersion = errors.New("plonk: unsupported artifact format version")

	// ErrDuplicatePublicInputPosition is returned when a composer's recorded
	// public-input positions are not pairwise distinct (spec.md §3
	// invariant I6).
	ErrDuplicatePublicInputPosition = errors.New("plonk: duplicate public input position")
)
