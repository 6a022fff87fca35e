package memo

import (
	"fmt"

	"tcncore/internal/models"
)

// Field widths in bits. The memo schema is identified by field order
// and width alone, so these are contract constants: a width mismatch
// inside the codec is a programmer error and panics.
const (
	versionWidth  = 16
	timeWidth     = 64
	severityWidth = 4
	flagWidth     = 1
)

// Sentinel for an absent optional timestamp.
const absentTime = ^uint64(0)

func uint16Bits(v uint16) BitSequence {
	var b BitSequence
	for i := 0; i < versionWidth; i++ {
		b.AppendBit(v&(1<<i) != 0)
	}
	return b
}

func uint64Bits(v uint64) BitSequence {
	var b BitSequence
	for i := 0; i < timeWidth; i++ {
		b.AppendBit(v&(1<<i) != 0)
	}
	return b
}

// nibbleBits encodes a small enum into 4 bits, zero-padded.
func nibbleBits(v uint8) BitSequence {
	if v > 0xf {
		panic(fmt.Sprintf("value %d does not fit in a nibble", v))
	}
	var b BitSequence
	for i := 0; i < severityWidth; i++ {
		b.AppendBit(v&(1<<i) != 0)
	}
	return b
}

func boolBits(v bool) BitSequence {
	var b BitSequence
	b.AppendBit(v)
	return b
}

func bitsToUint16(b BitSequence) uint16 {
	if b.Len() != versionWidth {
		panic(fmt.Sprintf("uint16 mapper: got %d bits", b.Len()))
	}
	var v uint16
	for i, bit := range b.bits {
		if bit {
			v |= 1 << i
		}
	}
	return v
}

func bitsToUint64(b BitSequence) uint64 {
	if b.Len() != timeWidth {
		panic(fmt.Sprintf("uint64 mapper: got %d bits", b.Len()))
	}
	var v uint64
	for i, bit := range b.bits {
		if bit {
			v |= 1 << i
		}
	}
	return v
}

func bitsToNibble(b BitSequence) uint8 {
	if b.Len() != severityWidth {
		panic(fmt.Sprintf("nibble mapper: got %d bits", b.Len()))
	}
	var v uint8
	for i, bit := range b.bits {
		if bit {
			v |= 1 << i
		}
	}
	return v
}

func bitsToBool(b BitSequence) bool {
	if b.Len() != flagWidth {
		panic(fmt.Sprintf("bool mapper: got %d bits", b.Len()))
	}
	return b.bits[0]
}

func feverSeverityFromRaw(raw uint8) (models.FeverSeverity, error) {
	switch raw {
	case uint8(models.FeverNone), uint8(models.FeverMild), uint8(models.FeverSerious):
		return models.FeverSeverity(raw), nil
	default:
		return 0, fmt.Errorf("unknown fever severity: %d", raw)
	}
}

func coughSeverityFromRaw(raw uint8) (models.CoughSeverity, error) {
	switch raw {
	case uint8(models.CoughNone), uint8(models.CoughExisting), uint8(models.CoughWet), uint8(models.CoughDry):
		return models.CoughSeverity(raw), nil
	default:
		return 0, fmt.Errorf("unknown cough severity: %d", raw)
	}
}
