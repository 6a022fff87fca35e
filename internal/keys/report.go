package keys

import (
	"crypto/ed25519"
	"encoding/binary"
	"errors"
	"fmt"

	"tcncore/internal/models"
)

const (
	signatureSize    = ed25519.SignatureSize
	reportHeaderSize = 32 + 32 + 2 + 2 + 1
	maxMemoSize      = 255
)

var ErrInvalidSignature = errors.New("report signature verification failed")

// SignedReport is the wire form of a report: the signed content
// followed by the ed25519 signature. Opaque until verified.
type SignedReport struct {
	raw []byte
}

func ParseSignedReport(raw []byte) (SignedReport, error) {
	if len(raw) < reportHeaderSize+signatureSize {
		return SignedReport{}, fmt.Errorf("signed report too short: %d bytes", len(raw))
	}
	memoLen := int(raw[68])
	if len(raw) != reportHeaderSize+memoLen+signatureSize {
		return SignedReport{}, fmt.Errorf("signed report length mismatch: %d bytes for memo length %d", len(raw), memoLen)
	}
	return SignedReport{raw: append([]byte(nil), raw...)}, nil
}

func (sr SignedReport) Bytes() []byte {
	return append([]byte(nil), sr.raw...)
}

func (sr SignedReport) Signature() []byte {
	return append([]byte(nil), sr.raw[len(sr.raw)-signatureSize:]...)
}

// Verify checks the signature against the embedded verification key
// and exposes the report content.
func (sr SignedReport) Verify() (Report, error) {
	content := sr.raw[:len(sr.raw)-signatureSize]
	sig := sr.raw[len(sr.raw)-signatureSize:]

	var r Report
	copy(r.rvk[:], content[:32])
	copy(r.startChain[:], content[32:64])
	r.Start = binary.LittleEndian.Uint16(content[64:66])
	r.End = binary.LittleEndian.Uint16(content[66:68])
	r.Memo = append([]byte(nil), content[69:]...)
	r.signature = append([]byte(nil), sig...)

	if r.Start < 1 || r.End < r.Start {
		return Report{}, fmt.Errorf("invalid report index range [%d, %d]", r.Start, r.End)
	}
	if !ed25519.Verify(r.rvk[:], content, sig) {
		return Report{}, ErrInvalidSignature
	}
	return r, nil
}

// Report is a verified report: the memo payload plus everything needed
// to re-derive the TCNs it covers.
type Report struct {
	rvk        [32]byte
	startChain [32]byte // chain value at index Start-1
	Start      uint16
	End        uint16
	Memo       []byte
	signature  []byte
}

func (r Report) Signature() []byte {
	return append([]byte(nil), r.signature...)
}

// TemporaryContactNumbers re-derives the TCN sequence covered by the
// report, indices Start through End inclusive.
func (r Report) TemporaryContactNumbers() []models.TemporaryContactNumber {
	tck := TemporaryContactKey{Index: r.Start - 1, rvk: r.rvk, chain: r.startChain}
	tcns := make([]models.TemporaryContactNumber, 0, int(r.End)-int(r.Start)+1)
	for i := r.Start; i <= r.End; i++ {
		next, ok := tck.Ratchet()
		if !ok {
			break
		}
		tck = *next
		tcns = append(tcns, tck.TemporaryContactNumber())
	}
	return tcns
}

// CreateReport signs a memo covering the TCN index window
// [start, end]. The pre-window chain link is embedded so verifiers can
// re-derive exactly that window and nothing earlier.
func (rak ReportAuthorizationKey) CreateReport(memo []byte, start, end uint16) (SignedReport, error) {
	if len(memo) > maxMemoSize {
		return SignedReport{}, fmt.Errorf("memo too long: %d bytes", len(memo))
	}
	if start < 1 || end < start {
		return SignedReport{}, fmt.Errorf("invalid report index range [%d, %d]", start, end)
	}

	tck := rak.tckRoot()
	for i := uint16(0); i < start-1; i++ {
		next, ok := tck.Ratchet()
		if !ok {
			return SignedReport{}, fmt.Errorf("ratchet exhausted before index %d", start)
		}
		tck = *next
	}

	rvk := rak.verificationKey()
	content := make([]byte, 0, reportHeaderSize+len(memo))
	content = append(content, rvk[:]...)
	content = append(content, tck.chain[:]...)
	content = binary.LittleEndian.AppendUint16(content, start)
	content = binary.LittleEndian.AppendUint16(content, end)
	content = append(content, byte(len(memo)))
	content = append(content, memo...)

	sig := ed25519.Sign(rak.privateKey(), content)
	return SignedReport{raw: append(content, sig...)}, nil
}
