package wave

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/types"
	"github.com/simonhull/wavmeta/internal/wavtest"
)

// KSDATAFORMAT_SUBTYPE_PCM as stored on disk
var pcmSubFormat = []byte{
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

func extensiblePayload(channels uint16, mask uint32) []byte {
	return wavtest.Payload(func(sw *binary.SafeWriter) {
		_ = binary.Write[uint16](sw, FormatExtensible)
		_ = binary.Write(sw, channels)
		_ = binary.Write[uint32](sw, 48000)
		_ = binary.Write(sw, 48000*3*uint32(channels))
		_ = binary.Write(sw, 3*channels)
		_ = binary.Write[uint16](sw, 24)
		_ = binary.Write[uint16](sw, 22)
		_ = binary.Write[uint16](sw, 24)
		_ = binary.Write(sw, mask)
		_ = sw.WriteBytes(pcmSubFormat)
	})
}

func TestDecodeFormat_PCM(t *testing.T) {
	f, err := DecodeFormat(wavtest.PCMFormat(2, 48000, 16))
	if err != nil {
		t.Fatalf("DecodeFormat() error = %v", err)
	}

	want := AudioFormat{
		AudioFormat:   FormatPCM,
		ChannelCount:  2,
		SampleRate:    48000,
		ByteRate:      192000,
		BlockAlign:    4,
		BitsPerSample: 16,
	}
	if *f != want {
		t.Errorf("DecodeFormat() = %+v, want %+v", *f, want)
	}
	if f.Extensible() {
		t.Error("plain PCM reported as extensible")
	}
	if f.Name() != "PCM" {
		t.Errorf("Name() = %q, want PCM", f.Name())
	}
}

func TestDecodeFormat_Extensible(t *testing.T) {
	f, err := DecodeFormat(extensiblePayload(6, 0x3F))
	if err != nil {
		t.Fatalf("DecodeFormat() error = %v", err)
	}

	if !f.Extensible() {
		t.Fatal("Extensible() = false")
	}
	if f.ExtraSize != 22 || f.ValidBitsPerSample != 24 || f.ChannelMask != 0x3F {
		t.Errorf("extension = cbSize %d, valid bits %d, mask %#x", f.ExtraSize, f.ValidBitsPerSample, f.ChannelMask)
	}

	want := uuid.MustParse("00000001-0000-0010-8000-00aa00389b71")
	if f.SubFormat != want {
		t.Errorf("SubFormat = %s, want %s", f.SubFormat, want)
	}
	if f.Tag() != FormatPCM || f.Name() != "PCM" {
		t.Errorf("Tag() = %#x, Name() = %q, want PCM", f.Tag(), f.Name())
	}
}

func TestDecodeFormat_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"empty", nil},
		{"short core", wavtest.PCMFormat(2, 48000, 16)[:10]},
		{"extensible without extension", extensiblePayload(2, 3)[:18]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFormat(tt.payload)
			var malformed *types.MalformedRecordError
			if !errors.As(err, &malformed) {
				t.Fatalf("DecodeFormat() error = %v, want *MalformedRecordError", err)
			}
			if malformed.Record != "fmt " {
				t.Errorf("Record = %q, want %q", malformed.Record, "fmt ")
			}
		})
	}
}

func TestDecodeFormat_UnknownTag(t *testing.T) {
	payload := wavtest.PCMFormat(1, 8000, 8)
	payload[0] = 0x55 // MPEG layer 3

	f, err := DecodeFormat(payload)
	if err != nil {
		t.Fatalf("DecodeFormat() error = %v", err)
	}
	if f.Name() != "0x0055" {
		t.Errorf("Name() = %q, want 0x0055", f.Name())
	}
}

func TestDescribeData(t *testing.T) {
	f := &AudioFormat{BlockAlign: 4}

	tests := []struct {
		length, samples uint64
		wantFrames      uint64
	}{
		{0, 0, 0},
		{4, 0, 1},
		{192000, 0, 48000},
		{5_000_000_000, 1_250_000_000, 1_250_000_000},
	}

	for _, tt := range tests {
		d, err := DescribeData(tt.length, f, tt.samples)
		if err != nil {
			t.Fatalf("DescribeData(%d) error = %v", tt.length, err)
		}
		if d.ByteCount != tt.length || d.FrameCount != tt.wantFrames || d.SampleCount != tt.samples {
			t.Errorf("DescribeData(%d) = %+v, want %d frames", tt.length, *d, tt.wantFrames)
		}
	}
}

func TestDescribeData_ZeroBlockAlign(t *testing.T) {
	_, err := DescribeData(100, &AudioFormat{}, 0)
	var malformed *types.MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("DescribeData() error = %v, want *MalformedRecordError", err)
	}
}
