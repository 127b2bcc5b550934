package riff

import (
	"fmt"

	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/types"
)

// ds64 fixed header: riff size, data size, sample count, table length.
const ds64HeaderSize = 8 + 8 + 8 + 4

// ds64 table entry: identity and a 32-bit size.
const ds64EntrySize = 4 + 4

// EBU Tech 3306 writers spell the entry size as a low/high pair.
const ds64WideEntrySize = 4 + 4 + 4

// SizeTable holds the 64-bit sizes an RF64 or BW64 file declares in its
// ds64 chunk, keyed by chunk identity.
type SizeTable struct {
	sizes map[FourCC]uint64

	// RiffSize is the size of the top-level container.
	RiffSize uint64

	// DataSize is the size of the data chunk.
	DataSize uint64

	// SampleCount is the number of sample frames in the data chunk.
	SampleCount uint64
}

// Lookup returns the 64-bit size recorded for id. It is safe to call on a
// nil table.
func (t *SizeTable) Lookup(id FourCC) (uint64, bool) {
	if t == nil {
		return 0, false
	}
	size, ok := t.sizes[id]
	return size, ok
}

// Len returns the number of identities in the table.
func (t *SizeTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.sizes)
}

// DecodeSizeTable decodes a ds64 payload. Explicit table entries are
// read first; the data chunk and the container's own identity are then
// seeded from the fixed header, so the header sizes win over an entry for
// the same identity.
//
// Entries are an identity and a 32-bit size. A payload whose table is
// exactly count 12-byte entries long is read as identity, low and high
// size halves instead.
func DecodeSizeTable(payload []byte, container FourCC) (*SizeTable, error) {
	s := binary.NewSpan(payload, "ds64")
	t := &SizeTable{
		RiffSize:    binary.Next[uint64](s, "riff size"),
		DataSize:    binary.Next[uint64](s, "data size"),
		SampleCount: binary.Next[uint64](s, "sample count"),
	}
	count := binary.Next[uint32](s, "table length")
	if err := s.Err(); err != nil {
		return nil, err
	}

	table := uint64(len(payload) - ds64HeaderSize)
	need := uint64(ds64HeaderSize) + uint64(count)*ds64EntrySize
	if uint64(len(payload)) < need {
		return nil, &types.MalformedRecordError{
			Record: "ds64",
			Reason: fmt.Sprintf("table declares %d entries", count),
			Need:   int(min(need, uint64(maxInt))),
			Have:   len(payload),
		}
	}
	wide := count > 0 && table == uint64(count)*ds64WideEntrySize

	t.sizes = make(map[FourCC]uint64, int(count)+2)
	for range count {
		id := FourCC(s.FourCC("table id"))
		size := uint64(binary.Next[uint32](s, "table size"))
		if wide {
			size |= uint64(binary.Next[uint32](s, "table size high")) << 32
		}
		t.sizes[id] = size
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	t.sizes[IDData] = t.DataSize
	t.sizes[container] = t.RiffSize
	return t, nil
}

// readSizeTable resolves the size table for an RF64/BW64 container. The
// cursor sits just past the container header; it is restored on return
// so the caller parses the container's children from the signature on.
func (p *parser) readSizeTable(container FourCC, headerAt int64) (*SizeTable, error) {
	mark := p.r.Offset()
	defer p.r.Seek(mark)

	sig, err := p.r.ReadBytes(4, "form type")
	if err != nil {
		return nil, p.truncated(container, headerAt, 12)
	}
	if FourCC(sig) != IDWAVE {
		return nil, &types.UnsupportedFormatError{
			Path:   p.sr.Path(),
			Reason: fmt.Sprintf("%s form type is %q, not WAVE", container, sig),
		}
	}

	node, err := p.parseChunk()
	if err != nil {
		return nil, err
	}
	ds64, ok := node.(*Chunk)
	if !ok || ds64.ID != IDDS64 {
		return nil, &types.CorruptedFileError{
			Path:   p.sr.Path(),
			Offset: mark + 4,
			Reason: fmt.Sprintf("%s must start with a ds64 chunk, found %q", container, node.Identity()),
		}
	}

	payload, err := readPayload(p.sr, ds64)
	if err != nil {
		return nil, err
	}
	return DecodeSizeTable(payload, container)
}
