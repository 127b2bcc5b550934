package riff

import (
	"encoding/binary"
	"fmt"

	rbinary "github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/types"
)

const maxInt = int(^uint(0) >> 1)

// parser walks the chunk tree with a single cursor.
type parser struct {
	sr    *rbinary.SafeReader
	r     *rbinary.Reader
	sizes *SizeTable
}

// Parse reads the chunk tree of a WAVE file. The top-level chunk must be
// RIFF, RF64 or BW64 with the WAVE signature.
func Parse(sr *rbinary.SafeReader) (*Container, error) {
	var magic [12]byte
	n := sr.ReadPartial(magic[:], 0)
	if n >= 4 {
		switch FourCC(magic[:4]) {
		case IDRIFF, IDRF64, IDBW64:
		default:
			return nil, &types.UnsupportedFormatError{
				Path:   sr.Path(),
				Reason: fmt.Sprintf("top-level chunk is %q, not RIFF, RF64 or BW64", magic[:4]),
			}
		}
	}

	p := &parser{sr: sr, r: rbinary.NewReader(sr, 0)}
	node, err := p.parseChunk()
	if err != nil {
		return nil, err
	}

	root, ok := node.(*List)
	if !ok {
		return nil, &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: fmt.Sprintf("top-level chunk %q is not a container", node.Identity()),
		}
	}
	if root.Signature != IDWAVE {
		return nil, &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: fmt.Sprintf("form type is %q, not WAVE", root.Signature),
		}
	}

	return &Container{
		Root:   root,
		Format: formatOf(root.ID),
		Sizes:  p.sizes,
		sr:     sr,
	}, nil
}

func formatOf(id FourCC) types.Format {
	switch id {
	case IDRF64:
		return types.FormatRF64
	case IDBW64:
		return types.FormatBW64
	default:
		return types.FormatWAV
	}
}

// parseChunk parses one chunk at the cursor and leaves the cursor on the
// next chunk header.
func (p *parser) parseChunk() (Node, error) {
	headerAt := p.r.Offset()

	var header [8]byte
	if n := p.sr.ReadPartial(header[:], headerAt); n < len(header) {
		return nil, &types.TruncatedError{
			Path:   p.sr.Path(),
			ID:     string(header[:min(n, 4)]),
			Offset: headerAt,
			Need:   8,
			Have:   int64(n),
		}
	}

	id := FourCC(header[:4])
	length := uint64(binary.LittleEndian.Uint32(header[4:]))
	p.r.Seek(headerAt + 8)

	if length == sizeSentinel {
		if p.sizes == nil && (id == IDRF64 || id == IDBW64) {
			sizes, err := p.readSizeTable(id, headerAt)
			if err != nil {
				return nil, err
			}
			p.sizes = sizes
		}

		resolved, ok := p.sizes.Lookup(id)
		if !ok {
			return nil, &types.UnresolvedSizeError{
				Path:   p.sr.Path(),
				ID:     id.String(),
				Offset: headerAt,
			}
		}
		length = resolved
	}

	start := headerAt + 8
	if length > uint64(p.sr.Size()-start) {
		return nil, p.truncated(id, headerAt, length+8)
	}
	end := start + int64(length)

	if !IsContainer(id) {
		p.r.Seek(end + int64(length&1))
		return &Chunk{
			ID:     id,
			Start:  start,
			Length: length,
			Sizes:  p.sizes,
		}, nil
	}

	if length < 4 {
		return nil, &types.CorruptedFileError{
			Path:   p.sr.Path(),
			Offset: headerAt,
			Reason: fmt.Sprintf("%s chunk of %d bytes cannot hold a signature", id, length),
		}
	}

	sig, err := p.r.ReadBytes(4, "list signature")
	if err != nil {
		return nil, err
	}

	list := &List{
		ID:        id,
		Signature: FourCC(sig),
		Start:     start,
		Length:    length,
	}

	// A child needs at least a full header inside the declared length.
	for p.r.Offset()+8 <= end {
		child, err := p.parseChunk()
		if err != nil {
			return nil, err
		}
		list.Children = append(list.Children, child)
	}

	// Child lengths are not trusted to add up; the list's own length is.
	p.r.Seek(end + int64(length&1))
	return list, nil
}

func (p *parser) truncated(id FourCC, headerAt int64, need uint64) error {
	return &types.TruncatedError{
		Path:   p.sr.Path(),
		ID:     id.String(),
		Offset: headerAt,
		Need:   int64(min(need, uint64(1<<63-1))),
		Have:   p.sr.Size() - headerAt,
	}
}

// readPayload reads a leaf payload into memory.
func readPayload(sr *rbinary.SafeReader, c *Chunk) ([]byte, error) {
	if c.Length > uint64(maxInt) {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: c.Start,
			Reason: fmt.Sprintf("%s payload of %d bytes is too large to read", c.ID, c.Length),
		}
	}
	buf := make([]byte, c.Length)
	if err := sr.ReadAt(buf, c.Start, fmt.Sprintf("%s payload", c.ID)); err != nil {
		return nil, err
	}
	return buf, nil
}
