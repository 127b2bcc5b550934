package binary

import (
	"encoding/binary"
	"io"
)

// SafeWriter wraps io.Writer with position tracking. It emits little-endian
// values and is used to assemble chunk trees in memory.
type SafeWriter struct {
	w      io.Writer
	offset int64
	err    error
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{w: w}
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// Err returns the first write error, if any.
func (sw *SafeWriter) Err() error {
	return sw.err
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	if sw.err != nil {
		return sw.err
	}
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	sw.err = err
	return err
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// WriteFixed writes s into a zero-padded field of exactly n bytes,
// truncating s when it is longer.
func (sw *SafeWriter) WriteFixed(s string, n int) error {
	buf := make([]byte, n)
	copy(buf, s)
	return sw.WriteBytes(buf)
}

// Pad writes n zero bytes.
func (sw *SafeWriter) Pad(n int) error {
	return sw.WriteBytes(make([]byte, n))
}

// Write writes a value of type T in little-endian byte order.
// T must be uint8, uint16, uint32, or uint64.
func Write[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	var buf []byte

	var zero T
	switch any(zero).(type) {
	case uint8:
		buf = []byte{byte(val)}
	case uint16:
		buf = binary.LittleEndian.AppendUint16(nil, uint16(val))
	case uint32:
		buf = binary.LittleEndian.AppendUint32(nil, uint32(val))
	case uint64:
		buf = binary.LittleEndian.AppendUint64(nil, uint64(val))
	}

	return sw.WriteBytes(buf)
}
