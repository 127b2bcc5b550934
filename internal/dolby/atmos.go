package dolby

import (
	"github.com/simonhull/wavmeta/internal/text"
)

// Atmos segment layout
const (
	atmosSize       = 248
	atmosToolOffset = 32
	atmosToolSize   = 64
	atmosVersionAt  = atmosToolOffset + atmosToolSize
	atmosWarpAt     = atmosVersionAt + 3 + 80
)

const atmosRecord = "dolby_atmos"

// Atmos holds the object-audio authoring parameters of a Dolby Atmos
// segment.
type Atmos struct {
	// Tool is the name of the authoring tool.
	Tool string

	// ToolVersion is major, minor, micro.
	ToolVersion [3]uint8

	WarpMode WarpMode
}

func (*Atmos) segmentBody() {}

// DecodeAtmos decodes a 248-byte Dolby Atmos segment payload.
func DecodeAtmos(b []byte) (*Atmos, error) {
	if err := payloadSize(b, atmosSize, atmosRecord); err != nil {
		return nil, err
	}

	tool, err := text.Decode(b[atmosToolOffset:atmosVersionAt], text.UTF8, "atmos tool name")
	if err != nil {
		return nil, err
	}

	a := &Atmos{Tool: tool}
	copy(a.ToolVersion[:], b[atmosVersionAt:atmosVersionAt+3])

	if a.WarpMode, err = closed[WarpMode](warpModeNames, b[atmosWarpAt]&0x07, atmosRecord, "warp mode"); err != nil {
		return nil, err
	}
	return a, nil
}
