package bls12381

import (
	"bytes"
	"io"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/plonkcore/plonk/internal/accelerator"
	"github.com/plonkcore/plonk/perr"
)

// FormatVersion is the artifact format version embedded in the header of
// every serialized VerifierKey/Proof (and, via VerifierData, every
// serialized circuit.VerifierData). Bumped on any wire-incompatible change
// to the structs below; ReadVerifierKey, ReadProverKey and ReadProof reject
// anything whose major version doesn't match, the way gnark itself guards against loading a proving key
// built by an incompatible release.
var FormatVersion = semver.MustParse("1.0.0")

func checkVersion(raw string) error {
	v, err := semver.Parse(raw)
	if err != nil {
		return err
	}
	if v.Major != FormatVersion.Major {
		return perr.ErrUnsupportedFormatVersion
	}
	return nil
}

// selectorSlices is the flat, order-fixed list of the fifteen canonical-form
// polynomials a ProverKey carries, used both to serialize them and (via
// commitSelectors/cosetFFTAll) to rebuild everything PreprocessProver
// derives from them on load.
func selectorSlices(s SelectorPolynomials) [15][]fr.Element {
	return [15][]fr.Element{
		s.QM, s.QL, s.QR, s.QO, s.Q4, s.QC,
		s.QArith, s.QRange, s.QLogic,
		s.QFixedGroupAdd, s.QVariableGroupAdd,
		s.SigmaL, s.SigmaR, s.SigmaO, s.SigmaF,
	}
}

func selectorsFromSlices(s [15][]fr.Element) SelectorPolynomials {
	return SelectorPolynomials{
		QM: s[0], QL: s[1], QR: s[2], QO: s[3], Q4: s[4], QC: s[5],
		QArith: s[6], QRange: s[7], QLogic: s[8],
		QFixedGroupAdd: s[9], QVariableGroupAdd: s[10],
		SigmaL: s[11], SigmaR: s[12], SigmaO: s[13], SigmaF: s[14],
	}
}

// verifierKeyWire is the canonical, framing-agnostic representation of a
// VerifierKey: scalars and curve points reduced to their fixed-size byte
// encodings so cbor's deterministic mode gives two runs of this module a
// byte-identical encoding of the same key (property P9).
type verifierKeyWire struct {
	N           uint64
	Generator   []byte
	Kzg         []byte
	Commitments [][]byte
}

func (vk *VerifierKey) toWire() (verifierKeyWire, error) {
	gen := vk.Generator.Bytes()

	var kzgBuf bytes.Buffer
	if _, err := vk.Kzg.WriteTo(&kzgBuf); err != nil {
		return verifierKeyWire{}, err
	}

	commitments := []kzg.Digest{
		vk.CQM, vk.CQL, vk.CQR, vk.CQO, vk.CQ4, vk.CQC, vk.CQArith,
		vk.CQRange, vk.CQLogic, vk.CQFixedGroupAdd, vk.CQVariableGroupAdd,
		vk.CSigmaL, vk.CSigmaR, vk.CSigmaO, vk.CSigmaF,
	}
	raw := make([][]byte, len(commitments))
	for i := range commitments {
		b := commitments[i].Bytes()
		raw[i] = b[:]
	}

	return verifierKeyWire{
		N:           vk.N,
		Generator:   gen[:],
		Kzg:         kzgBuf.Bytes(),
		Commitments: raw,
	}, nil
}

func (w verifierKeyWire) toVerifierKey() (*VerifierKey, error) {
	if len(w.Commitments) != 15 {
		return nil, perr.ErrNotEnoughBytes
	}

	var gen fr.Element
	gen.SetBytes(w.Generator)
	var nInv fr.Element
	nInv.SetUint64(w.N).Inverse(&nInv)

	var vkzg kzg.VerifyingKey
	if _, err := vkzg.ReadFrom(bytes.NewReader(w.Kzg)); err != nil {
		return nil, err
	}

	var cm [15]kzg.Digest
	for i, raw := range w.Commitments {
		if _, err := cm[i].SetBytes(raw); err != nil {
			return nil, perr.ErrPointMalformed
		}
	}

	return &VerifierKey{
		N: w.N, NInv: nInv, Generator: gen, Kzg: vkzg,
		CQM: cm[0], CQL: cm[1], CQR: cm[2], CQO: cm[3], CQ4: cm[4], CQC: cm[5],
		CQArith: cm[6], CQRange: cm[7], CQLogic: cm[8],
		CQFixedGroupAdd: cm[9], CQVariableGroupAdd: cm[10],
		CSigmaL: cm[11], CSigmaR: cm[12], CSigmaO: cm[13], CSigmaF: cm[14],
	}, nil
}

type verifierKeyDoc struct {
	Version string
	Key     verifierKeyWire
}

// WriteTo writes vk's canonical CBOR encoding to w.
func (vk *VerifierKey) WriteTo(w io.Writer) (int64, error) {
	wire, err := vk.toWire()
	if err != nil {
		return 0, err
	}
	enc, err := cbor.Marshal(verifierKeyDoc{Version: FormatVersion.String(), Key: wire})
	if err != nil {
		return 0, err
	}
	n, err := w.Write(enc)
	return int64(n), err
}

// ReadVerifierKey decodes a VerifierKey previously written by WriteTo.
func ReadVerifierKey(r io.Reader) (*VerifierKey, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc verifierKeyDoc
	if err := cbor.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	return doc.Key.toVerifierKey()
}

// proverKeyDoc persists only what PreprocessProver cannot cheaply recompute:
// the fifteen canonical-form polynomials, the trimmed commitment key and the
// embedded VerifierKey. Domain4, the coset evaluation tables and the
// vanishing/L1 coset caches are rebuilt from N on load, the same functions
// PreprocessProver itself calls, so they never need their own wire format.
type proverKeyDoc struct {
	Version     string
	N           uint64
	Selectors   [15][]byte
	CommitKeyG1 [][]byte
	Vk          verifierKeyWire
}

func encodeScalars(polys [15][]fr.Element) ([15][]byte, error) {
	var out [15][]byte
	for i, p := range polys {
		var buf bytes.Buffer
		enc := curve.NewEncoder(&buf)
		if err := enc.Encode(p); err != nil {
			return out, err
		}
		out[i] = buf.Bytes()
	}
	return out, nil
}

func decodeScalars(raw [15][]byte) ([15][]fr.Element, error) {
	var out [15][]fr.Element
	for i, b := range raw {
		dec := curve.NewDecoder(bytes.NewReader(b))
		if err := dec.Decode(&out[i]); err != nil {
			return out, err
		}
	}
	return out, nil
}

// WriteTo writes pk's canonical CBOR encoding to w.
func (pk *ProverKey) WriteTo(w io.Writer) (int64, error) {
	sel, err := encodeScalars(selectorSlices(pk.Selectors))
	if err != nil {
		return 0, err
	}
	g1 := make([][]byte, len(pk.CommitKey.G1))
	for i := range pk.CommitKey.G1 {
		b := pk.CommitKey.G1[i].Bytes()
		g1[i] = b[:]
	}
	vkWire, err := pk.Vk.toWire()
	if err != nil {
		return 0, err
	}

	enc, err := cbor.Marshal(proverKeyDoc{
		Version: FormatVersion.String(), N: pk.N,
		Selectors: sel, CommitKeyG1: g1, Vk: vkWire,
	})
	if err != nil {
		return 0, err
	}
	n, err := w.Write(enc)
	return int64(n), err
}

// ReadProverKey decodes a ProverKey previously written by WriteTo,
// recomputing the coset evaluation tables preprocessing keeps in memory
// rather than on disk.
func ReadProverKey(r io.Reader) (*ProverKey, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc proverKeyDoc
	if err := cbor.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}

	selSlices, err := decodeScalars(doc.Selectors)
	if err != nil {
		return nil, err
	}
	selectors := selectorsFromSlices(selSlices)

	vk, err := doc.Vk.toVerifierKey()
	if err != nil {
		return nil, err
	}

	g1 := make([]curve.G1Affine, len(doc.CommitKeyG1))
	for i, b := range doc.CommitKeyG1 {
		if _, err := g1[i].SetBytes(b); err != nil {
			return nil, perr.ErrPointMalformed
		}
	}

	domain := fft.NewDomain(doc.N)
	domain4 := fft.NewDomain(4 * doc.N)

	return &ProverKey{
		N: doc.N, Domain: domain, Domain4: domain4,
		Selectors:          selectors,
		SelectorsCoset:     cosetFFTAll(domain4, selectors, accelerator.New()),
		LinearEvalsCoset:   linearPolyOverCoset(domain, domain4),
		VanishingPolyCoset: computeVanishingPolyOverCoset(domain4, domain.Cardinality),
		CommitKey:          kzg.ProvingKey{G1: g1},
		Vk:                 vk,
	}, nil
}

// proofDoc is the canonical CBOR framing of a Proof: eleven commitments and
// seventeen scalar evaluations, in the exact field order ProofEvaluations
// and Proof declare them.
type proofDoc struct {
	Version     string
	Commitments [11][]byte
	Evals       [17][]byte
}

func (p *Proof) toWire() proofDoc {
	commitments := [11]kzg.Digest{
		p.ACommit, p.BCommit, p.CCommit, p.DCommit, p.ZCommit,
		p.T1Commit, p.T2Commit, p.T3Commit, p.T4Commit,
		p.WZCommit, p.WZWCommit,
	}
	var raw [11][]byte
	for i := range commitments {
		b := commitments[i].Bytes()
		raw[i] = b[:]
	}

	e := p.Evaluations
	scalars := [17]fr.Element{
		e.AEval, e.BEval, e.CEval, e.DEval,
		e.ANextEval, e.BNextEval, e.DNextEval,
		e.QArithEval, e.QCEval, e.QLEval, e.QREval,
		e.LeftSigmaEval, e.RightSigmaEval, e.OutSigmaEval, e.FourthSigmaEval,
		e.LinearisationPolynomialEval, e.PermutationEval,
	}
	var rawScalars [17][]byte
	for i := range scalars {
		b := scalars[i].Bytes()
		rawScalars[i] = b[:]
	}

	return proofDoc{Commitments: raw, Evals: rawScalars}
}

func (d proofDoc) toProof() (*Proof, error) {
	var cm [11]kzg.Digest
	for i, b := range d.Commitments {
		if _, err := cm[i].SetBytes(b); err != nil {
			return nil, perr.ErrPointMalformed
		}
	}
	var sc [17]fr.Element
	for i, b := range d.Evals {
		if len(b) == 0 {
			return nil, perr.ErrScalarMalformed
		}
		sc[i].SetBytes(b)
	}

	return &Proof{
		ACommit: cm[0], BCommit: cm[1], CCommit: cm[2], DCommit: cm[3],
		ZCommit:  cm[4],
		T1Commit: cm[5], T2Commit: cm[6], T3Commit: cm[7], T4Commit: cm[8],
		WZCommit: cm[9], WZWCommit: cm[10],
		Evaluations: ProofEvaluations{
			AEval: sc[0], BEval: sc[1], CEval: sc[2], DEval: sc[3],
			ANextEval: sc[4], BNextEval: sc[5], DNextEval: sc[6],
			QArithEval: sc[7], QCEval: sc[8], QLEval: sc[9], QREval: sc[10],
			LeftSigmaEval: sc[11], RightSigmaEval: sc[12],
			OutSigmaEval: sc[13], FourthSigmaEval: sc[14],
			LinearisationPolynomialEval: sc[15], PermutationEval: sc[16],
		},
	}, nil
}

// WriteTo writes p's canonical CBOR encoding to w.
func (p *Proof) WriteTo(w io.Writer) (int64, error) {
	doc := p.toWire()
	doc.Version = FormatVersion.String()
	enc, err := cbor.Marshal(doc)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(enc)
	return int64(n), err
}

// ReadProof decodes a Proof previously written by WriteTo.
func ReadProof(r io.Reader) (*Proof, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc proofDoc
	if err := cbor.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	return doc.toProof()
}
