// Package wave decodes the fixed-layout records carried in WAVE chunks:
// fmt, bext, cue/adtl, smpl, LIST/INFO and chna.
//
// Every decoder works on a payload already read into memory. None of them
// seeks or reads from the file.
package wave

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/types"
)

// Format tags
const (
	FormatPCM        = 0x0001
	FormatIEEEFloat  = 0x0003
	FormatALaw       = 0x0006
	FormatMuLaw      = 0x0007
	FormatExtensible = 0xFFFE
)

const fmtCoreSize = 16

// extensible layout after the core: cbSize, valid bits, channel mask, GUID
const fmtExtensibleSize = fmtCoreSize + 2 + 2 + 4 + 16

// AudioFormat is the decoded fmt chunk.
type AudioFormat struct {
	// SubFormat is set for WAVE_FORMAT_EXTENSIBLE only.
	SubFormat uuid.UUID

	SampleRate    uint32
	ByteRate      uint32
	ChannelMask   uint32
	AudioFormat   uint16
	ChannelCount  uint16
	BlockAlign    uint16
	BitsPerSample uint16

	// ExtraSize is cbSize, the byte count of the extension, when present.
	ExtraSize uint16

	// ValidBitsPerSample is set for WAVE_FORMAT_EXTENSIBLE only.
	ValidBitsPerSample uint16
}

// Extensible reports whether the format carries the extensible block.
func (f *AudioFormat) Extensible() bool {
	return f.AudioFormat == FormatExtensible
}

// Tag returns the effective format tag: for extensible formats, the first
// two bytes of the sub-format GUID.
func (f *AudioFormat) Tag() uint16 {
	if f.Extensible() {
		// KSDATAFORMAT_SUBTYPE GUIDs embed the tag in Data1
		return uint16(f.SubFormat[3]) | uint16(f.SubFormat[2])<<8
	}
	return f.AudioFormat
}

// Name returns a short name for the effective format tag.
func (f *AudioFormat) Name() string {
	switch f.Tag() {
	case FormatPCM:
		return "PCM"
	case FormatIEEEFloat:
		return "IEEE float"
	case FormatALaw:
		return "A-law"
	case FormatMuLaw:
		return "mu-law"
	default:
		return fmt.Sprintf("0x%04X", f.Tag())
	}
}

// DecodeFormat decodes a fmt chunk payload.
func DecodeFormat(payload []byte) (*AudioFormat, error) {
	s := binary.NewSpan(payload, "fmt ")

	f := &AudioFormat{
		AudioFormat:   binary.Next[uint16](s, "format tag"),
		ChannelCount:  binary.Next[uint16](s, "channel count"),
		SampleRate:    binary.Next[uint32](s, "sample rate"),
		ByteRate:      binary.Next[uint32](s, "byte rate"),
		BlockAlign:    binary.Next[uint16](s, "block align"),
		BitsPerSample: binary.Next[uint16](s, "bits per sample"),
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	// Plain PCM writers often stop after the core
	if len(payload) < fmtCoreSize+2 {
		return f, nil
	}
	f.ExtraSize = binary.Next[uint16](s, "cbSize")

	if f.AudioFormat != FormatExtensible {
		return f, nil
	}
	if len(payload) < fmtExtensibleSize {
		return nil, &types.MalformedRecordError{
			Record: "fmt ",
			Reason: "extensible format without extension block",
			Need:   fmtExtensibleSize,
			Have:   len(payload),
		}
	}

	f.ValidBitsPerSample = binary.Next[uint16](s, "valid bits per sample")
	f.ChannelMask = binary.Next[uint32](s, "channel mask")
	f.SubFormat = guid(s.Bytes(16, "sub format"))

	return f, s.Err()
}

// guid converts a Microsoft GUID, whose first three groups are stored
// little-endian, to RFC 4122 byte order.
func guid(b []byte) uuid.UUID {
	var u uuid.UUID
	if len(b) < 16 {
		return u
	}
	u[0], u[1], u[2], u[3] = b[3], b[2], b[1], b[0]
	u[4], u[5] = b[5], b[4]
	u[6], u[7] = b[7], b[6]
	copy(u[8:], b[8:16])
	return u
}

// DataStats describes the data chunk without reading it.
type DataStats struct {
	// ByteCount is the data chunk length.
	ByteCount uint64

	// FrameCount is ByteCount divided by the fmt block alignment.
	FrameCount uint64

	// SampleCount is the ds64 sample count, zero for plain RIFF files.
	SampleCount uint64
}

// DescribeData computes data statistics from the data chunk length and
// the decoded format.
func DescribeData(length uint64, f *AudioFormat, sampleCount uint64) (*DataStats, error) {
	if f.BlockAlign == 0 {
		return nil, &types.MalformedRecordError{
			Record: "fmt ",
			Reason: "block align is zero",
		}
	}
	return &DataStats{
		ByteCount:   length,
		FrameCount:  length / uint64(f.BlockAlign),
		SampleCount: sampleCount,
	}, nil
}
