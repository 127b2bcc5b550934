package wave

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/types"
	"github.com/simonhull/wavmeta/internal/wavtest"
)

func smplPayload(loops []SampleLoop, vendor []byte) []byte {
	return wavtest.Payload(func(sw *binary.SafeWriter) {
		_ = binary.Write[uint32](sw, 0x01000047) // manufacturer
		_ = binary.Write[uint32](sw, 0x0042)     // product
		_ = binary.Write[uint32](sw, 20833)      // 48 kHz
		_ = binary.Write[uint32](sw, 60)
		_ = binary.Write[uint32](sw, 0x80000000)
		_ = binary.Write[uint32](sw, 25)
		_ = sw.WriteBytes([]byte{0xFF, 2, 3, 4}) // -1h 02m 03s 04f
		_ = binary.Write(sw, uint32(len(loops)))
		_ = binary.Write(sw, uint32(len(vendor)))
		for _, l := range loops {
			_ = binary.Write(sw, l.CuePointID)
			_ = binary.Write(sw, l.Type)
			_ = binary.Write(sw, l.Start)
			_ = binary.Write(sw, l.End)
			_ = binary.Write(sw, l.Fraction)
			_ = binary.Write(sw, l.PlayCount)
		}
		_ = sw.WriteBytes(vendor)
	})
}

func TestDecodeSampler(t *testing.T) {
	loops := []SampleLoop{
		{CuePointID: 1, Type: LoopForward, Start: 0, End: 47999},
		{CuePointID: 2, Type: LoopAlternating, Start: 1000, End: 2000, Fraction: 0x80000000, PlayCount: 4},
	}
	vendor := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	s, err := DecodeSampler(smplPayload(loops, vendor))
	if err != nil {
		t.Fatalf("DecodeSampler() error = %v", err)
	}

	want := &Sampler{
		Loops:             loops,
		VendorData:        vendor,
		Manufacturer:      0x01000047,
		Product:           0x42,
		SamplePeriod:      20833,
		MIDIUnityNote:     60,
		MIDIPitchFraction: 0x80000000,
		SMPTEFormat:       25,
		SMPTEOffset:       SMPTEOffset{Hours: -1, Minutes: 2, Seconds: 3, Frames: 4},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("DecodeSampler() mismatch (-want +got):\n%s", diff)
	}
	if got := s.SMPTEOffset.String(); got != "-1:02:03:04" {
		t.Errorf("SMPTEOffset.String() = %q", got)
	}
}

func TestDecodeSampler_NoLoops(t *testing.T) {
	s, err := DecodeSampler(smplPayload(nil, nil))
	if err != nil {
		t.Fatalf("DecodeSampler() error = %v", err)
	}
	if len(s.Loops) != 0 || s.VendorData != nil {
		t.Errorf("expected no loops and no vendor data, got %d loops, %v", len(s.Loops), s.VendorData)
	}
}

func TestDecodeSampler_Malformed(t *testing.T) {
	one := []SampleLoop{{CuePointID: 1}}

	tests := []struct {
		name     string
		payload  []byte
		wantNeed int
	}{
		{"short header", smplPayload(nil, nil)[:20], 24},
		{"missing loop", smplPayload(one, nil)[:smplHeaderSize+10], smplHeaderSize + smplLoopSize},
		{"missing vendor data", smplPayload(one, []byte{1, 2, 3})[:smplHeaderSize+smplLoopSize+1], smplHeaderSize + smplLoopSize + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSampler(tt.payload)
			var malformed *types.MalformedRecordError
			if !errors.As(err, &malformed) {
				t.Fatalf("DecodeSampler() error = %v, want *MalformedRecordError", err)
			}
			if malformed.Record != "smpl" || malformed.Need != tt.wantNeed {
				t.Errorf("error = %+v, want need %d", malformed, tt.wantNeed)
			}
		})
	}
}

func TestSampleLoop_TypeName(t *testing.T) {
	tests := []struct {
		typ  uint32
		want string
	}{
		{0, "forward"},
		{1, "forward/backward"},
		{2, "backward"},
		{3, "reserved"},
		{31, "reserved"},
		{32, "vendor"},
		{0xFFFFFFFF, "vendor"},
	}

	for _, tt := range tests {
		if got := (SampleLoop{Type: tt.typ}).TypeName(); got != tt.want {
			t.Errorf("TypeName(%d) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
