// Command gen regenerates backend/plonk/bls12381/keys_gen.go: the
// "preprocessed polynomial accessor" boilerplate (selector/sigma commitment
// accessors and the VerifyingKey/Size accessors) the same way the teacher's own generated setup code
// carries a "Code generated by gnark DO NOT EDIT" header produced by
// bavard templates. Run with `go run ./internal/gen` from the repo root.
package main

import (
	"log"

	"github.com/consensys/bavard"
)

const keysGenTemplate = `
import "github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"

// VerifyingKey returns pk.Vk as an untyped value.
func (pk *ProverKey) VerifyingKey() interface{} {
	return pk.Vk
}

// SelectorCommitments returns the eleven selector commitments in the fixed
// order quotient.go and linearisation.go both iterate them in.
func (vk *VerifierKey) SelectorCommitments() [11]kzg.Digest {
	return [11]kzg.Digest{
		vk.CQM, vk.CQL, vk.CQR, vk.CQO, vk.CQ4, vk.CQC,
		vk.CQArith, vk.CQRange, vk.CQLogic,
		vk.CQFixedGroupAdd, vk.CQVariableGroupAdd,
	}
}

// SigmaCommitments returns the four sigma commitments, in wire order
// (L, R, O, F).
func (vk *VerifierKey) SigmaCommitments() [4]kzg.Digest {
	return [4]kzg.Digest{vk.CSigmaL, vk.CSigmaR, vk.CSigmaO, vk.CSigmaF}
}

// Size returns the circuit's padded gate count.
func (vk *VerifierKey) Size() uint64 {
	return vk.N
}
`

func main() {
	const outPath = "backend/plonk/bls12381/keys_gen.go"

	bv := bavard.NewBatchGenerator("internal/gen", "bls12381")
	if err := bv.Generate(outPath, "bls12381", keysGenTemplate, nil); err != nil {
		log.Fatalf("generating %s: %v", outPath, err)
	}
}
