package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"

	"tcncore/internal/models"
)

// Domain separators for the key-derivation chain.
var (
	tckDomain = []byte("H_TCK")
	tcnDomain = []byte("H_TCN")
)

const (
	rakSize     = 32
	tckBlobSize = 2 + 32 + 32 // index || rvk || chain value
)

// ReportAuthorizationKey is the long-lived signing key a device uses to
// authorize its reports. The ed25519 seed doubles as the root of the
// temporary-contact-key chain.
type ReportAuthorizationKey [rakSize]byte

func NewReportAuthorizationKey() (ReportAuthorizationKey, error) {
	var rak ReportAuthorizationKey
	if _, err := rand.Read(rak[:]); err != nil {
		return rak, fmt.Errorf("generating report authorization key: %w", err)
	}
	return rak, nil
}

func ReportAuthorizationKeyFromBytes(raw []byte) (ReportAuthorizationKey, error) {
	var rak ReportAuthorizationKey
	if len(raw) != rakSize {
		return rak, fmt.Errorf("invalid authorization key length: %d", len(raw))
	}
	copy(rak[:], raw)
	return rak, nil
}

func (rak ReportAuthorizationKey) privateKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(rak[:])
}

func (rak ReportAuthorizationKey) verificationKey() [32]byte {
	var rvk [32]byte
	copy(rvk[:], rak.privateKey().Public().(ed25519.PublicKey))
	return rvk
}

// tckRoot is tck_0, the chain root. It never emits a TCN.
func (rak ReportAuthorizationKey) tckRoot() TemporaryContactKey {
	buf := make([]byte, 0, len(tckDomain)+rakSize)
	buf = append(buf, tckDomain...)
	buf = append(buf, rak[:]...)
	return TemporaryContactKey{
		Index: 0,
		rvk:   rak.verificationKey(),
		chain: sha256.Sum256(buf),
	}
}

// InitialTemporaryContactKey is tck_1, the first key that may emit a
// TCN (index 0 exists only as the chain root).
func (rak ReportAuthorizationKey) InitialTemporaryContactKey() TemporaryContactKey {
	next, _ := rak.tckRoot().Ratchet()
	return *next
}

// TemporaryContactKey is one link of the ratchet chain. Index is the
// TCN period it emits; the chain value is never transmitted except as
// the pre-window link inside a signed report.
type TemporaryContactKey struct {
	Index uint16
	rvk   [32]byte
	chain [32]byte
}

func chainStep(rvk [32]byte, chain [32]byte) [32]byte {
	buf := make([]byte, 0, len(tckDomain)+64)
	buf = append(buf, tckDomain...)
	buf = append(buf, rvk[:]...)
	buf = append(buf, chain[:]...)
	return sha256.Sum256(buf)
}

// Ratchet advances the chain one period. Returns nil at exhaustion,
// leaving rotation to the caller.
func (tck TemporaryContactKey) Ratchet() (*TemporaryContactKey, bool) {
	if tck.Index == math.MaxUint16 {
		return nil, false
	}
	return &TemporaryContactKey{
		Index: tck.Index + 1,
		rvk:   tck.rvk,
		chain: chainStep(tck.rvk, tck.chain),
	}, true
}

// TemporaryContactNumber derives the TCN this key broadcasts. Only
// valid for Index >= 1.
func (tck TemporaryContactKey) TemporaryContactNumber() models.TemporaryContactNumber {
	buf := make([]byte, 0, len(tcnDomain)+2+32)
	buf = append(buf, tcnDomain...)
	buf = binary.LittleEndian.AppendUint16(buf, tck.Index)
	buf = append(buf, tck.chain[:]...)
	sum := sha256.Sum256(buf)

	var tcn models.TemporaryContactNumber
	copy(tcn[:], sum[:16])
	return tcn
}

func (tck TemporaryContactKey) MarshalBinary() []byte {
	out := make([]byte, 0, tckBlobSize)
	out = binary.LittleEndian.AppendUint16(out, tck.Index)
	out = append(out, tck.rvk[:]...)
	out = append(out, tck.chain[:]...)
	return out
}

func TemporaryContactKeyFromBytes(raw []byte) (TemporaryContactKey, error) {
	var tck TemporaryContactKey
	if len(raw) != tckBlobSize {
		return tck, fmt.Errorf("invalid temporary contact key length: %d", len(raw))
	}
	tck.Index = binary.LittleEndian.Uint16(raw)
	copy(tck.rvk[:], raw[2:34])
	copy(tck.chain[:], raw[34:66])
	return tck, nil
}
