// Package wavtest assembles WAVE chunk trees in memory for tests.
package wavtest

import (
	"bytes"
	"io"

	"github.com/simonhull/wavmeta/internal/binary"
)

// Sentinel is the 32-bit length that defers to the ds64 table.
const Sentinel = 0xFFFFFFFF

// Node is a chunk under construction.
type Node struct {
	length   *uint32
	id       string
	sig      string
	payload  []byte
	children []*Node
}

// Chunk creates a leaf chunk.
func Chunk(id string, payload []byte) *Node {
	return &Node{id: id, payload: payload}
}

// List creates a container chunk with the given signature.
func List(id, sig string, children ...*Node) *Node {
	return &Node{id: id, sig: sig, children: children}
}

// WithLength overrides the declared length, for sentinel and truncation
// fixtures.
func (n *Node) WithLength(length uint32) *Node {
	n.length = &length
	return n
}

// Bytes encodes the chunk, header and pad byte included.
func (n *Node) Bytes() []byte {
	buf := &bytes.Buffer{}
	sw := binary.NewSafeWriter(buf)
	n.write(sw)
	return buf.Bytes()
}

func (n *Node) body() []byte {
	if n.sig == "" {
		return n.payload
	}
	buf := &bytes.Buffer{}
	sw := binary.NewSafeWriter(buf)
	_ = sw.WriteFixed(n.sig, 4)
	for _, c := range n.children {
		c.write(sw)
	}
	return buf.Bytes()
}

func (n *Node) write(sw *binary.SafeWriter) {
	body := n.body()
	length := uint32(len(body))
	if n.length != nil {
		length = *n.length
	}

	_ = sw.WriteFixed(n.id, 4)
	_ = binary.Write(sw, length)
	_ = sw.WriteBytes(body)
	if len(body)%2 == 1 {
		_ = sw.Pad(1)
	}
}

// WAVE encodes a RIFF/WAVE file holding the given chunks.
func WAVE(children ...*Node) []byte {
	return List("RIFF", "WAVE", children...).Bytes()
}

// Payload builds a little-endian payload with a SafeWriter.
func Payload(fn func(sw *binary.SafeWriter)) []byte {
	buf := &bytes.Buffer{}
	fn(binary.NewSafeWriter(buf))
	return buf.Bytes()
}

// PCMFormat returns a 16-byte fmt payload for integer PCM.
func PCMFormat(channels uint16, sampleRate uint32, bitsPerSample uint16) []byte {
	blockAlign := channels * ((bitsPerSample + 7) / 8)
	return Payload(func(sw *binary.SafeWriter) {
		_ = binary.Write[uint16](sw, 1)
		_ = binary.Write(sw, channels)
		_ = binary.Write(sw, sampleRate)
		_ = binary.Write(sw, sampleRate*uint32(blockAlign))
		_ = binary.Write(sw, blockAlign)
		_ = binary.Write(sw, bitsPerSample)
	})
}

// SizeEntry is an explicit ds64 table row.
type SizeEntry struct {
	ID   string
	Size uint64
}

// DS64 returns a ds64 payload with 8-byte table entries: identity and a
// 32-bit size.
func DS64(riffSize, dataSize, sampleCount uint64, entries ...SizeEntry) []byte {
	return ds64(riffSize, dataSize, sampleCount, false, entries)
}

// DS64Wide returns a ds64 payload whose table entries carry the size as
// low and high 32-bit halves (EBU Tech 3306).
func DS64Wide(riffSize, dataSize, sampleCount uint64, entries ...SizeEntry) []byte {
	return ds64(riffSize, dataSize, sampleCount, true, entries)
}

func ds64(riffSize, dataSize, sampleCount uint64, wide bool, entries []SizeEntry) []byte {
	return Payload(func(sw *binary.SafeWriter) {
		_ = binary.Write(sw, riffSize)
		_ = binary.Write(sw, dataSize)
		_ = binary.Write(sw, sampleCount)
		_ = binary.Write(sw, uint32(len(entries)))
		for _, e := range entries {
			_ = sw.WriteFixed(e.ID, 4)
			_ = binary.Write(sw, uint32(e.Size))
			if wide {
				_ = binary.Write(sw, uint32(e.Size>>32))
			}
		}
	})
}

// Sparse is an io.ReaderAt that serves Head and reads zeros up to Size.
// It stands in for multi-gigabyte files whose payloads are never read.
type Sparse struct {
	Head []byte
	Size int64
}

// ReadAt implements io.ReaderAt.
func (s *Sparse) ReadAt(p []byte, off int64) (int, error) {
	n := 0
	for n < len(p) && off+int64(n) < s.Size {
		pos := off + int64(n)
		if pos < int64(len(s.Head)) {
			n += copy(p[n:], s.Head[pos:])
			continue
		}
		p[n] = 0
		n++
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
