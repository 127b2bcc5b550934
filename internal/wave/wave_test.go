package wave

import (
	"bytes"
	"testing"

	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/riff"
	"github.com/simonhull/wavmeta/internal/wavtest"
)

// parse builds a container over an in-memory file.
func parse(t *testing.T, data []byte) *riff.Container {
	t.Helper()
	c, err := riff.Parse(binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.wav"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return c
}

// cuePayload returns a cue chunk with one point per name. Each point sits
// at name*1000 samples into the data chunk.
func cuePayload(names ...uint32) []byte {
	return wavtest.Payload(func(sw *binary.SafeWriter) {
		_ = binary.Write(sw, uint32(len(names)))
		for _, n := range names {
			_ = binary.Write(sw, n)
			_ = binary.Write[uint32](sw, 0)
			_ = sw.WriteFixed("data", 4)
			_ = binary.Write[uint32](sw, 0)
			_ = binary.Write[uint32](sw, 0)
			_ = binary.Write(sw, n*1000)
		}
	})
}

func labelPayload(name uint32, text []byte) []byte {
	return wavtest.Payload(func(sw *binary.SafeWriter) {
		_ = binary.Write(sw, name)
		_ = sw.WriteBytes(text)
		_ = sw.Pad(1)
	})
}

type rangeSpec struct {
	purpose  string
	text     []byte
	name     uint32
	length   uint32
	country  uint16
	language uint16
	dialect  uint16
	codePage uint16
}

func rangePayload(r rangeSpec) []byte {
	return wavtest.Payload(func(sw *binary.SafeWriter) {
		_ = binary.Write(sw, r.name)
		_ = binary.Write(sw, r.length)
		_ = sw.WriteFixed(r.purpose, 4)
		_ = binary.Write(sw, r.country)
		_ = binary.Write(sw, r.language)
		_ = binary.Write(sw, r.dialect)
		_ = binary.Write(sw, r.codePage)
		_ = sw.WriteBytes(r.text)
	})
}
