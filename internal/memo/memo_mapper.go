package memo

import (
	"fmt"

	"tcncore/internal/models"
)

// memoVersion is encoded but not branched on during decode: the schema
// is treated as fixed, future changes must stay strictly additive.
const memoVersion uint16 = 1

// Mapper converts a PublicSymptoms record to and from the bit-packed
// memo payload carried inside a signed report. Field order: version,
// report time, earliest symptom time (sentinel for absent), cough
// severity, fever severity, then the seven boolean flags.
type Mapper struct{}

func NewMapper() Mapper {
	return Mapper{}
}

func (m Mapper) ToMemo(s models.PublicSymptoms) []byte {
	earliest := absentTime
	if s.EarliestSymptomTime != nil {
		earliest = uint64(*s.EarliestSymptomTime)
	}

	var bits BitSequence
	bits.Append(uint16Bits(memoVersion))
	bits.Append(uint64Bits(uint64(s.ReportTime)))
	bits.Append(uint64Bits(earliest))
	bits.Append(nibbleBits(uint8(s.CoughSeverity)))
	bits.Append(nibbleBits(uint8(s.FeverSeverity)))
	bits.Append(boolBits(s.Breathlessness))
	bits.Append(boolBits(s.MuscleAches))
	bits.Append(boolBits(s.LossSmellOrTaste))
	bits.Append(boolBits(s.Diarrhea))
	bits.Append(boolBits(s.RunnyNose))
	bits.Append(boolBits(s.Other))
	bits.Append(boolBits(s.NoSymptoms))
	return bits.Bytes()
}

// ToSymptoms decodes a memo payload. Truncated buffers and unknown
// severity values are data errors: reports arrive from the network, a
// bad one must not take down the matching pipeline.
func (m Mapper) ToSymptoms(data []byte) (models.PublicSymptoms, error) {
	r := NewBitReader(BitsFromBytes(data))

	var s models.PublicSymptoms
	if _, err := m.takeUint16(r); err != nil { // version, unchecked
		return s, err
	}

	reportTime, err := m.takeUint64(r)
	if err != nil {
		return s, err
	}
	s.ReportTime = models.UnixTime(reportTime)

	earliest, err := m.takeUint64(r)
	if err != nil {
		return s, err
	}
	if earliest != absentTime {
		t := models.UnixTime(earliest)
		s.EarliestSymptomTime = &t
	}

	coughRaw, err := m.takeNibble(r)
	if err != nil {
		return s, err
	}
	if s.CoughSeverity, err = coughSeverityFromRaw(coughRaw); err != nil {
		return s, err
	}

	feverRaw, err := m.takeNibble(r)
	if err != nil {
		return s, err
	}
	if s.FeverSeverity, err = feverSeverityFromRaw(feverRaw); err != nil {
		return s, err
	}

	flags := []*bool{
		&s.Breathlessness, &s.MuscleAches, &s.LossSmellOrTaste,
		&s.Diarrhea, &s.RunnyNose, &s.Other, &s.NoSymptoms,
	}
	for _, flag := range flags {
		bits, err := r.Take(flagWidth)
		if err != nil {
			return s, err
		}
		*flag = bitsToBool(bits)
	}
	return s, nil
}

func (m Mapper) takeUint16(r *BitReader) (uint16, error) {
	bits, err := r.Take(versionWidth)
	if err != nil {
		return 0, fmt.Errorf("memo version: %w", err)
	}
	return bitsToUint16(bits), nil
}

func (m Mapper) takeUint64(r *BitReader) (uint64, error) {
	bits, err := r.Take(timeWidth)
	if err != nil {
		return 0, err
	}
	return bitsToUint64(bits), nil
}

func (m Mapper) takeNibble(r *BitReader) (uint8, error) {
	bits, err := r.Take(severityWidth)
	if err != nil {
		return 0, err
	}
	return bitsToNibble(bits), nil
}
