package wave

import (
	"fmt"

	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/types"
)

const (
	smplHeaderSize = 36
	smplLoopSize   = 24
)

// Loop types
const (
	LoopForward      = 0
	LoopAlternating  = 1
	LoopBackward     = 2
	loopReservedLast = 31
)

// SMPTEOffset is the time offset of the first sample, hh:mm:ss:ff.
type SMPTEOffset struct {
	Hours   int8 // -23..23
	Minutes uint8
	Seconds uint8
	Frames  uint8
}

func (o SMPTEOffset) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", o.Hours, o.Minutes, o.Seconds, o.Frames)
}

// SampleLoop is one loop of the smpl chunk.
type SampleLoop struct {
	CuePointID uint32
	Type       uint32
	Start      uint32
	End        uint32
	Fraction   uint32
	PlayCount  uint32 // 0 is infinite
}

// TypeName describes the loop type.
func (l SampleLoop) TypeName() string {
	switch {
	case l.Type == LoopForward:
		return "forward"
	case l.Type == LoopAlternating:
		return "forward/backward"
	case l.Type == LoopBackward:
		return "backward"
	case l.Type <= loopReservedLast:
		return "reserved"
	default:
		return "vendor"
	}
}

// Sampler is the decoded smpl chunk.
type Sampler struct {
	Loops      []SampleLoop
	VendorData []byte

	Manufacturer uint32
	Product      uint32

	// SamplePeriod is the duration of one sample in nanoseconds.
	SamplePeriod uint32

	MIDIUnityNote     uint32
	MIDIPitchFraction uint32
	SMPTEFormat       uint32 // 0, 24, 25, 29 or 30
	SMPTEOffset       SMPTEOffset
}

// DecodeSampler decodes a smpl chunk payload. The loop table and vendor
// data are located from the declared counts alone.
func DecodeSampler(payload []byte) (*Sampler, error) {
	s := binary.NewSpan(payload, "smpl")

	sm := &Sampler{
		Manufacturer:      binary.Next[uint32](s, "manufacturer"),
		Product:           binary.Next[uint32](s, "product"),
		SamplePeriod:      binary.Next[uint32](s, "sample period"),
		MIDIUnityNote:     binary.Next[uint32](s, "MIDI unity note"),
		MIDIPitchFraction: binary.Next[uint32](s, "MIDI pitch fraction"),
		SMPTEFormat:       binary.Next[uint32](s, "SMPTE format"),
	}
	sm.SMPTEOffset = SMPTEOffset{
		Hours:   int8(binary.Next[uint8](s, "SMPTE hours")),
		Minutes: binary.Next[uint8](s, "SMPTE minutes"),
		Seconds: binary.Next[uint8](s, "SMPTE seconds"),
		Frames:  binary.Next[uint8](s, "SMPTE frames"),
	}
	loopCount := binary.Next[uint32](s, "loop count")
	vendorLength := binary.Next[uint32](s, "sampler data length")
	if err := s.Err(); err != nil {
		return nil, err
	}

	need := uint64(smplHeaderSize) + uint64(loopCount)*smplLoopSize + uint64(vendorLength)
	if uint64(len(payload)) < need {
		return nil, &types.MalformedRecordError{
			Record: "smpl",
			Reason: fmt.Sprintf("%d loops and %d bytes of sampler data declared", loopCount, vendorLength),
			Need:   int(min(need, uint64(maxInt))),
			Have:   len(payload),
		}
	}

	sm.Loops = make([]SampleLoop, 0, loopCount)
	for range loopCount {
		sm.Loops = append(sm.Loops, SampleLoop{
			CuePointID: binary.Next[uint32](s, "loop cue point"),
			Type:       binary.Next[uint32](s, "loop type"),
			Start:      binary.Next[uint32](s, "loop start"),
			End:        binary.Next[uint32](s, "loop end"),
			Fraction:   binary.Next[uint32](s, "loop fraction"),
			PlayCount:  binary.Next[uint32](s, "loop play count"),
		})
	}
	if vendorLength > 0 {
		sm.VendorData = s.Bytes(int(vendorLength), "sampler data")
	}

	return sm, s.Err()
}
