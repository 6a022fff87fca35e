package models

import (
	"encoding/hex"
	"fmt"
)

// TemporaryContactNumber is the rotating 16-byte identifier broadcast
// over proximity radio. Opaque beyond equality and hashing.
type TemporaryContactNumber [16]byte

func TcnFromHex(s string) (TemporaryContactNumber, error) {
	var tcn TemporaryContactNumber
	raw, err := hex.DecodeString(s)
	if err != nil {
		return tcn, fmt.Errorf("invalid tcn hex: %w", err)
	}
	if len(raw) != len(tcn) {
		return tcn, fmt.Errorf("invalid tcn length: %d bytes", len(raw))
	}
	copy(tcn[:], raw)
	return tcn, nil
}

func (t TemporaryContactNumber) Hex() string {
	return hex.EncodeToString(t[:])
}
