// Package riff parses the chunk tree of RIFF, RF64 and BW64 WAVE files.
//
// The parser records where each chunk lives and how long it is. It never
// reads a leaf payload; callers fetch payloads on demand through
// Container.Read.
package riff

import (
	goriff "github.com/go-audio/riff"
)

// FourCC is a four-byte chunk identity such as "fmt " or "LIST".
type FourCC [4]byte

// String returns the identity as text, including any trailing spaces.
func (id FourCC) String() string {
	return string(id[:])
}

// ID converts a string of up to four bytes to a FourCC, padding with
// spaces the way short identities ("fmt ", "cue ") are stored.
func ID(s string) FourCC {
	id := FourCC{' ', ' ', ' ', ' '}
	copy(id[:], s)
	return id
}

// Chunk identities the parser and decoders care about.
var (
	IDRIFF = FourCC(goriff.RiffID)
	IDRF64 = ID("RF64")
	IDBW64 = ID("BW64")
	IDLIST = ID("LIST")
	IDlist = ID("list")
	IDWAVE = FourCC(goriff.WavFormatID)
	IDDS64 = ID("ds64")
	IDFmt  = FourCC(goriff.FmtID)
	IDData = FourCC(goriff.DataFormatID)
	IDFact = ID("fact")
	IDBext = ID("bext")
	IDCue  = ID("cue")
	IDAdtl = ID("adtl")
	IDLabl = ID("labl")
	IDNote = ID("note")
	IDLtxt = ID("ltxt")
	IDSmpl = ID("smpl")
	IDInfo = ID("INFO")
	IDDbmd = ID("dbmd")
	IDChna = ID("chna")
	IDAxml = ID("axml")
	IDIXML = ID("iXML")
	IDID3  = ID("id3")
	IDID3U = ID("ID3")
)

// sizeSentinel is the 32-bit length that defers to the ds64 table.
const sizeSentinel = 0xFFFFFFFF

// IsContainer reports whether chunks with this identity carry a
// signature followed by child chunks.
func IsContainer(id FourCC) bool {
	switch id {
	case IDRIFF, IDLIST, IDRF64, IDBW64, IDlist:
		return true
	}
	return false
}

// Node is a parsed chunk: either a *Chunk leaf or a *List container.
type Node interface {
	Identity() FourCC
	isNode()
}

// Chunk describes a leaf chunk.
type Chunk struct {
	// Sizes is the RF64/BW64 size table in force when the chunk was
	// parsed, nil for plain RIFF files.
	Sizes *SizeTable

	// Start is the absolute offset of the first payload byte.
	Start int64

	// Length is the payload length, excluding the pad byte.
	Length uint64

	ID FourCC
}

// Identity returns the chunk identity.
func (c *Chunk) Identity() FourCC { return c.ID }

func (*Chunk) isNode() {}

// Padded returns the number of bytes the payload occupies in the file,
// including the pad byte that follows odd-length payloads.
func (c *Chunk) Padded() uint64 {
	return c.Length + c.Length&1
}

// List describes a container chunk (RIFF, RF64, BW64, LIST or list).
type List struct {
	Children []Node

	// Start is the absolute offset of the signature, the first payload
	// byte.
	Start int64

	// Length is the declared payload length, signature included.
	Length uint64

	ID        FourCC
	Signature FourCC
}

// Identity returns the container identity.
func (l *List) Identity() FourCC { return l.ID }

func (*List) isNode() {}

// Chunks returns the direct leaf children with the given identity, in
// file order.
func (l *List) Chunks(id FourCC) []*Chunk {
	var out []*Chunk
	for _, n := range l.Children {
		if c, ok := n.(*Chunk); ok && c.ID == id {
			out = append(out, c)
		}
	}
	return out
}
