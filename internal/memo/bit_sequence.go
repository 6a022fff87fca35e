package memo

import "fmt"

// BitSequence is an ordered sequence of bits assembled field by field.
// Bytes packing is least-significant-bit-first within each byte, with
// the final byte zero-padded. The layout is fixed-schema: no tags, no
// lengths, fields identified by order and width only.
type BitSequence struct {
	bits []bool
}

func (b *BitSequence) AppendBit(bit bool) {
	b.bits = append(b.bits, bit)
}

func (b *BitSequence) Append(other BitSequence) {
	b.bits = append(b.bits, other.bits...)
}

func (b BitSequence) Len() int {
	return len(b.bits)
}

func (b BitSequence) Bytes() []byte {
	out := make([]byte, (len(b.bits)+7)/8)
	for i, bit := range b.bits {
		if bit {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}

func BitsFromBytes(data []byte) BitSequence {
	bits := make([]bool, len(data)*8)
	for i := range bits {
		bits[i] = data[i/8]&(1<<(i%8)) != 0
	}
	return BitSequence{bits: bits}
}

// BitReader consumes a BitSequence field by field, advancing a running
// cursor. Running out of bits is a data error, not a contract error.
type BitReader struct {
	bits []bool
	pos  int
}

func NewBitReader(b BitSequence) *BitReader {
	return &BitReader{bits: b.bits}
}

func (r *BitReader) Take(width int) (BitSequence, error) {
	if r.pos+width > len(r.bits) {
		return BitSequence{}, fmt.Errorf("memo too short: need %d bits at offset %d, have %d", width, r.pos, len(r.bits))
	}
	out := BitSequence{bits: r.bits[r.pos : r.pos+width]}
	r.pos += width
	return out, nil
}
