// Package circuit implements the callback-shaped circuit API (spec.md §6):
// a caller supplies a Circuit, and Compile/GenProof/VerifyProof drive the
// composer, preprocessor and prover/verifier packages underneath without
// the caller ever touching a *composer.Composer directly.
package circuit

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"

	"github.com/plonkcore/plonk/backend/plonk/bls12381"
	"github.com/plonkcore/plonk/composer"
	"github.com/plonkcore/plonk/internal/accelerator"
	"github.com/plonkcore/plonk/perr"
)

// Circuit is the callback a caller implements: Define replays the circuit's
// gates against a fresh composer (exactly once per Compile/GenProof call,
// since the composer carries no state across calls), and PaddedCircuitSize
// gives the composer a capacity hint (spec.md §6's padded_circuit_size).
type Circuit interface {
	Define(c *composer.Composer) error
	PaddedCircuitSize() int
}

// PublicInputValue is the tagged union spec.md §6 calls for: a public input
// is either a single scalar or an embedded-curve point, the latter
// contributing two field elements (x, y in that order) to the PI vector.
type PublicInputValue struct {
	isPoint bool
	scalar  fr.Element
	x, y    fr.Element
}

// Scalar builds a single-field-element public input.
func Scalar(v fr.Element) PublicInputValue {
	return PublicInputValue{scalar: v}
}

// Point builds a two-field-element (embedded-curve point) public input.
func Point(x, y fr.Element) PublicInputValue {
	return PublicInputValue{isPoint: true, x: x, y: y}
}

// Elements returns the field elements this value contributes to the PI
// vector, in binding order.
func (p PublicInputValue) Elements() []fr.Element {
	if p.isPoint {
		return []fr.Element{p.x, p.y}
	}
	return []fr.Element{p.scalar}
}

// VerifierData bundles everything a verifier needs that isn't the proof
// itself: the VerifierKey and the gate positions carrying a public input,
// exactly spec.md §6's `VerifierData = (VerifierKey, public_input_positions)`.
type VerifierData struct {
	Vk                   *bls12381.VerifierKey
	PublicInputPositions []int
}

// Options configures Compile/GenProof/VerifyProof. The zero value is usable:
// TranscriptLabel defaults to "plonkcore" and Accelerator to the CPU
// implementation.
type Options struct {
	TranscriptLabel string
	Accelerator     accelerator.Accelerator
}

// Option mutates an Options in place, following the functional-options
// pattern the teacher's backend.ProverOption uses.
type Option func(*Options)

// WithTranscriptLabel overrides the domain-separation label bound into the
// Fiat-Shamir transcript before any round begins. The prover and verifier
// must agree on this label for a given circuit instance.
func WithTranscriptLabel(label string) Option {
	return func(o *Options) { o.TranscriptLabel = label }
}

// WithAccelerator swaps in a non-default Accelerator (e.g. a GPU backend
// built with the icicle tag) for the MSM/FFT work Compile and GenProof do.
func WithAccelerator(a accelerator.Accelerator) Option {
	return func(o *Options) { o.Accelerator = a }
}

func defaultOptions() Options {
	return Options{TranscriptLabel: "plonkcore", Accelerator: accelerator.New()}
}

func applyOptions(opts []Option) Options {
	cfg := defaultOptions()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// buildComposer replays circuit's gates into a fresh composer sized by its
// PaddedCircuitSize hint.
func buildComposer(circ Circuit) (*composer.Composer, error) {
	c := composer.New(circ.PaddedCircuitSize())
	if err := circ.Define(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Compile replays circ once to preprocess it against srs, returning the
// ProverKey and the VerifierData a verifier needs later (spec.md §6's
// `compile`).
func Compile(circ Circuit, srs kzg.SRS, opts ...Option) (*bls12381.ProverKey, *VerifierData, error) {
	cfg := applyOptions(opts)

	c, err := buildComposer(circ)
	if err != nil {
		return nil, nil, err
	}

	tr := bls12381.NewTranscript(cfg.TranscriptLabel)
	pk, err := bls12381.PreprocessProver(c, srs, tr, cfg.Accelerator)
	if err != nil {
		return nil, nil, err
	}

	return pk, &VerifierData{
		Vk:                   pk.Vk,
		PublicInputPositions: c.PublicInputPositions(),
	}, nil
}

// GenProof replays circ again (a fresh composer, same gates, since pk was
// preprocessed from the identical circuit description) and runs the prover
// protocol, returning a Proof (spec.md §6's `gen_proof`).
func GenProof(circ Circuit, pk *bls12381.ProverKey, opts ...Option) (*bls12381.Proof, error) {
	cfg := applyOptions(opts)

	c, err := buildComposer(circ)
	if err != nil {
		return nil, err
	}

	tr := bls12381.NewTranscript(cfg.TranscriptLabel)
	if err := bls12381.SeedTranscript(tr, pk.Vk); err != nil {
		return nil, err
	}
	return bls12381.Prove(pk, c, tr, cfg.Accelerator)
}

// VerifyProof checks proof against vd and the supplied public input values,
// in the order vd.PublicInputPositions was recorded (spec.md §6's
// `verify_proof`). Returns perr.ErrPublicInputPositionMismatch if the value
// count does not match the recorded position count (property P8).
func VerifyProof(vd *VerifierData, proof *bls12381.Proof, publicInputs []PublicInputValue, opts ...Option) error {
	cfg := applyOptions(opts)

	values := make([]fr.Element, 0, len(vd.PublicInputPositions))
	for _, pi := range publicInputs {
		values = append(values, pi.Elements()...)
	}
	if len(values) != len(vd.PublicInputPositions) {
		return perr.ErrPublicInputPositionMismatch
	}

	tr := bls12381.NewTranscript(cfg.TranscriptLabel)
	if err := bls12381.SeedTranscript(tr, vd.Vk); err != nil {
		return err
	}

	return bls12381.Verify(vd.Vk, proof, bls12381.PublicInputs{
		Positions: vd.PublicInputPositions,
		Values:    values,
	}, tr)
}
