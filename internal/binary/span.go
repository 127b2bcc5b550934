package binary

import (
	"github.com/simonhull/wavmeta/internal/types"
)

// Span reads little-endian fields out of an in-memory chunk payload with
// deferred error checking.
//
// Once a read runs past the end of the payload, the span records a
// *types.MalformedRecordError and every later read returns the zero value.
// Check Err once after the last field:
//
//	s := binary.NewSpan(payload, "smpl")
//	manufacturer := binary.Next[uint32](s, "manufacturer")
//	product := binary.Next[uint32](s, "product")
//	if err := s.Err(); err != nil {
//		return nil, err
//	}
type Span struct {
	b      []byte
	record string
	offset int
	err    error
}

// NewSpan creates a Span over b. record names the structure for errors.
func NewSpan(b []byte, record string) *Span {
	return &Span{b: b, record: record}
}

// Next reads a value of type T and advances the span.
func Next[T uint8 | uint16 | uint32 | uint64](s *Span, what string) T {
	var zero T
	n := sizeOf[T]()
	if !s.require(n, what) {
		return zero
	}
	v := decode[T](s.b[s.offset:])
	s.offset += n
	return v
}

// I16 reads a signed 16-bit value.
func (s *Span) I16(what string) int16 {
	return int16(Next[uint16](s, what))
}

// Bytes returns the next n bytes without copying.
func (s *Span) Bytes(n int, what string) []byte {
	if !s.require(n, what) {
		return nil
	}
	b := s.b[s.offset : s.offset+n]
	s.offset += n
	return b
}

// FourCC reads a 4-byte identifier.
func (s *Span) FourCC(what string) [4]byte {
	var id [4]byte
	copy(id[:], s.Bytes(4, what))
	return id
}

// Skip advances the span by n bytes.
func (s *Span) Skip(n int, what string) {
	if s.require(n, what) {
		s.offset += n
	}
}

// Rest returns everything after the current position.
func (s *Span) Rest() []byte {
	if s.err != nil {
		return nil
	}
	return s.b[s.offset:]
}

// Offset returns the current position within the payload.
func (s *Span) Offset() int {
	return s.offset
}

// Err returns the first error encountered, or nil.
func (s *Span) Err() error {
	return s.err
}

func (s *Span) require(n int, what string) bool {
	if s.err != nil {
		return false
	}
	if n < 0 || s.offset+n > len(s.b) {
		s.err = &types.MalformedRecordError{
			Record: s.record,
			Need:   s.offset + n,
			Have:   len(s.b),
			Reason: "truncated " + what,
		}
		return false
	}
	return true
}
