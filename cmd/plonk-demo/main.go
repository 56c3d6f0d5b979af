// Command plonk-demo runs end-to-end scenario 1 from spec.md §8: an
// arithmetic + range + fixed-base scalar-mul circuit, compiled, proved and
// verified against a freshly generated SRS, logging each stage with
// internal/zlog the way a caller would in a real integration rather than
// via t.Log.
package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
	"github.com/rs/zerolog"

	"github.com/plonkcore/plonk/circuit"
	"github.com/plonkcore/plonk/composer"
	"github.com/plonkcore/plonk/internal/zlog"
)

// demoCircuit binds a=20, b=5 as witnesses and constrains their sum,
// product and a fixed-base scalar multiple of the witness e as public
// inputs, plus a range check on a — the "arithmetic + range + scalar-mul"
// circuit spec.md §8 scenario 1 names.
type demoCircuit struct {
	a, b, e uint64
}

func (d demoCircuit) PaddedCircuitSize() int { return 1024 }

func fe(v uint64) fr.Element {
	var out fr.Element
	out.SetUint64(v)
	return out
}

func (d demoCircuit) Define(c *composer.Composer) error {
	a := c.AddInput(fe(d.a))
	b := c.AddInput(fe(d.b))
	e := c.AddInput(fe(d.e))

	sum := c.Add(a, b)
	c.ConstrainPublicInput(sum, fe(d.a+d.b))

	product := c.Mul(a, b)
	c.ConstrainPublicInput(product, fe(d.a*d.b))

	if err := c.RangeGate(a, 8); err != nil {
		return err
	}

	base := twistededwards.GetEdwardsCurve().Base
	result := c.FixedBaseScalarMul(e, base)

	var scalarBig big.Int
	fe(d.e).ToBigIntRegular(&scalarBig)
	var expected twistededwards.PointAffine
	expected.ScalarMultiplication(&base, &scalarBig)

	c.ConstrainPublicInput(result.X, expected.X)
	c.ConstrainPublicInput(result.Y, expected.Y)

	return nil
}

// publicInputs returns d's public input values in binding order: sum,
// product, then the scalar-mul result's two coordinates.
func (d demoCircuit) publicInputs() []circuit.PublicInputValue {
	var expected twistededwards.PointAffine
	var scalarBig big.Int
	fe(d.e).ToBigIntRegular(&scalarBig)
	base := twistededwards.GetEdwardsCurve().Base
	expected.ScalarMultiplication(&base, &scalarBig)

	return []circuit.PublicInputValue{
		circuit.Scalar(fe(d.a + d.b)),
		circuit.Scalar(fe(d.a * d.b)),
		circuit.Point(expected.X, expected.Y),
	}
}

// newDemoSRS generates a fresh KZG SRS with a randomly sampled toxic-waste
// scalar. Production code must never reuse a known alpha the way tests do.
func newDemoSRS(size uint64) (*kzg.SRS, error) {
	alpha, err := rand.Int(rand.Reader, fr.Modulus())
	if err != nil {
		return nil, err
	}
	return kzg.NewSRS(size, alpha)
}

func run() error {
	log := zlog.Logger()

	circ := demoCircuit{a: 20, b: 5, e: 2}

	srs, err := newDemoSRS(1024)
	if err != nil {
		return fmt.Errorf("generate SRS: %w", err)
	}
	log.Info().Msg("generated KZG SRS")

	pk, vd, err := circuit.Compile(circ, *srs)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	log.Info().
		Uint64("domain_size", pk.N).
		Int("public_inputs", len(vd.PublicInputPositions)).
		Msg("compiled circuit")

	proof, err := circuit.GenProof(circ, pk)
	if err != nil {
		return fmt.Errorf("gen proof: %w", err)
	}
	log.Info().Msg("generated proof")

	if err := circuit.VerifyProof(vd, proof, circ.publicInputs()); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	log.Info().Msg("proof verified")

	return nil
}

func main() {
	zlog.EnableConsole(zerolog.InfoLevel)

	if err := run(); err != nil {
		zlog.Logger().Error().Err(err).Msg("demo failed")
		os.Exit(1)
	}
}
