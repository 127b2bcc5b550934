package riff

import (
	"iter"

	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/types"
)

// Container is a parsed WAVE file: the chunk tree plus the source it was
// read from.
type Container struct {
	sr *binary.SafeReader

	// Root is the top-level RIFF, RF64 or BW64 list.
	Root *List

	// Sizes is the ds64 table, nil unless the file uses 64-bit sizes.
	Sizes *SizeTable

	Format types.Format
}

// Path returns the path of the underlying source.
func (c *Container) Path() string {
	return c.sr.Path()
}

// Walk yields every node depth-first, in file order, with its nesting
// depth. The root has depth 0.
func (c *Container) Walk() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		walk(c.Root, 0, yield)
	}
}

func walk(n Node, depth int, yield func(int, Node) bool) bool {
	if !yield(depth, n) {
		return false
	}
	if l, ok := n.(*List); ok {
		for _, child := range l.Children {
			if !walk(child, depth+1, yield) {
				return false
			}
		}
	}
	return true
}

// Chunks yields every leaf chunk depth-first.
func (c *Container) Chunks() iter.Seq[*Chunk] {
	return func(yield func(*Chunk) bool) {
		for _, n := range c.Walk() {
			if ch, ok := n.(*Chunk); ok {
				if !yield(ch) {
					return
				}
			}
		}
	}
}

// Find returns the first leaf chunk with the given identity, or nil.
func (c *Container) Find(id FourCC) *Chunk {
	for ch := range c.Chunks() {
		if ch.ID == id {
			return ch
		}
	}
	return nil
}

// FindAll returns every leaf chunk with the given identity.
func (c *Container) FindAll(id FourCC) []*Chunk {
	var out []*Chunk
	for ch := range c.Chunks() {
		if ch.ID == id {
			out = append(out, ch)
		}
	}
	return out
}

// FindList returns the first LIST or list container with the given
// signature, or nil.
func (c *Container) FindList(signature FourCC) *List {
	for _, n := range c.Walk() {
		if l, ok := n.(*List); ok && l != c.Root && l.Signature == signature {
			return l
		}
	}
	return nil
}

// Read returns the payload of a leaf chunk, pad byte excluded.
func (c *Container) Read(ch *Chunk) ([]byte, error) {
	return readPayload(c.sr, ch)
}

// ReadFirst finds the first chunk with the given identity and reads its
// payload. It returns a nil chunk when the identity is absent.
func (c *Container) ReadFirst(id FourCC) (*Chunk, []byte, error) {
	ch := c.Find(id)
	if ch == nil {
		return nil, nil, nil
	}
	payload, err := c.Read(ch)
	if err != nil {
		return nil, nil, err
	}
	return ch, payload, nil
}
