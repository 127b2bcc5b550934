// Package dolby decodes the Dolby metadata chunk (dbmd) described in EBU
// Tech 3285 Supplement 6.
//
// A dbmd payload is a version quartet followed by checksummed segments:
//
//	version   4 bytes, most significant part first
//	segment   type u8, length u16 LE, payload, checksum u8
//	...
//	end       type 0, no length, payload or checksum
//
// A checksum mismatch does not stop decoding; the segment is kept with
// Valid set to false.
package dolby

import (
	"fmt"

	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/types"
)

const record = "dbmd"

// SegmentType identifies a metadata segment. The type space is open;
// values without a decoder are kept as Opaque.
type SegmentType uint8

// Segment types
const (
	SegmentEnd               SegmentType = 0x0
	SegmentDolbyE            SegmentType = 0x1
	SegmentDolbyDigital      SegmentType = 0x3
	SegmentDigitalPlus       SegmentType = 0x7
	SegmentAudioInfo         SegmentType = 0x8
	SegmentAtmos             SegmentType = 0x9
	SegmentAtmosSupplemental SegmentType = 0xa
)

var segmentTypeNames = map[SegmentType]string{
	SegmentEnd:               "end",
	SegmentDolbyE:            "dolby_e",
	SegmentDolbyDigital:      "dolby_digital",
	SegmentDigitalPlus:       "dolby_digital_plus",
	SegmentAudioInfo:         "audio_info",
	SegmentAtmos:             "dolby_atmos",
	SegmentAtmosSupplemental: "dolby_atmos_supplemental",
}

func (t SegmentType) String() string {
	if name, ok := segmentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("segment_%d", uint8(t))
}

// Version is the metadata version quartet, e.g. 1.0.0.6.
type Version [4]uint8

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v[0], v[1], v[2], v[3])
}

// Body is the decoded payload of a segment: *DigitalPlus, *Atmos or
// Opaque.
type Body interface {
	segmentBody()
}

// Opaque is the raw payload of a segment without a decoder, or of a
// recognized segment whose checksum failed and whose payload could not be
// decoded.
type Opaque []byte

func (Opaque) segmentBody() {}

// Segment is one decoded metadata segment.
type Segment struct {
	Body  Body
	Type  SegmentType
	Valid bool // checksum matched
}

// Metadata is a decoded dbmd chunk. The end marker is not part of
// Segments.
type Metadata struct {
	Segments []Segment
	Version  Version
}

// DigitalPlus returns the Dolby Digital Plus segments in file order.
func (m *Metadata) DigitalPlus() []*DigitalPlus {
	var out []*DigitalPlus
	for _, s := range m.Segments {
		if b, ok := s.Body.(*DigitalPlus); ok {
			out = append(out, b)
		}
	}
	return out
}

// Atmos returns the Dolby Atmos segments in file order.
func (m *Metadata) Atmos() []*Atmos {
	var out []*Atmos
	for _, s := range m.Segments {
		if b, ok := s.Body.(*Atmos); ok {
			out = append(out, b)
		}
	}
	return out
}

// decoders maps segment types to payload decoders.
var decoders = map[SegmentType]func([]byte) (Body, error){
	SegmentDigitalPlus: func(b []byte) (Body, error) { return DecodeDigitalPlus(b) },
	SegmentAtmos:       func(b []byte) (Body, error) { return DecodeAtmos(b) },
}

// Checksum returns the checksum byte for a segment payload: the two's
// complement of the payload length plus every payload byte, modulo 256.
func Checksum(payload []byte) byte {
	sum := byte(len(payload))
	for _, b := range payload {
		sum += b
	}
	return -sum
}

// Decode decodes a dbmd chunk payload.
//
// Running out of bytes inside a segment is an error. Running out exactly
// between segments ends the list as if an end marker were present.
func Decode(payload []byte) (*Metadata, error) {
	s := binary.NewSpan(payload, record)

	m := &Metadata{}
	copy(m.Version[:], s.Bytes(4, "version"))
	if err := s.Err(); err != nil {
		return nil, err
	}

	for s.Offset() < len(payload) {
		typ := SegmentType(binary.Next[uint8](s, "segment type"))
		if typ == SegmentEnd {
			break
		}

		length := binary.Next[uint16](s, "segment length")
		body := s.Bytes(int(length), fmt.Sprintf("%s segment", typ))
		checksum := binary.Next[uint8](s, "segment checksum")
		if err := s.Err(); err != nil {
			return nil, err
		}

		seg := Segment{Type: typ, Valid: Checksum(body) == checksum}
		seg.Body = Opaque(body)
		if decode, ok := decoders[typ]; ok {
			decoded, err := decode(body)
			switch {
			case err == nil:
				seg.Body = decoded
			case seg.Valid:
				return nil, fmt.Errorf("%s segment at offset %d: %w", typ, s.Offset()-int(length)-1, err)
			}
		}
		m.Segments = append(m.Segments, seg)
	}

	return m, nil
}

// payloadSize checks a fixed-size segment payload.
func payloadSize(b []byte, want int, segment string) error {
	if len(b) != want {
		return &types.MalformedRecordError{
			Record: segment,
			Reason: fmt.Sprintf("payload is %d bytes, expected %d", len(b), want),
			Need:   want,
			Have:   len(b),
		}
	}
	return nil
}
