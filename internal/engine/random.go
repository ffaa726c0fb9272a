package engine

import "math/rand/v2"

// RandomSource provides random bytes for the CXNN instruction.
type RandomSource interface {
	Byte() uint8
}

// NewRandomSource returns a source backed by the math/rand generator.
func NewRandomSource() RandomSource {
	return mathSource{}
}

type mathSource struct{}

func (mathSource) Byte() uint8 {
	return uint8(rand.Uint32())
}

// SequenceSource returns its bytes in order and wraps around at the end.
// An empty sequence always returns zero.
type SequenceSource struct {
	bytes []uint8
	next  int
}

// NewSequenceSource returns a deterministic source for the given bytes.
func NewSequenceSource(bytes ...uint8) *SequenceSource {
	return &SequenceSource{bytes: bytes}
}

// Byte returns the next byte of the sequence.
func (s *SequenceSource) Byte() uint8 {
	if len(s.bytes) == 0 {
		return 0
	}
	b := s.bytes[s.next]
	s.next = (s.next + 1) % len(s.bytes)
	return b
}
