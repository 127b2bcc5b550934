package types

import "fmt"

// OutOfBoundsError is returned when attempting to read beyond file bounds.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// UnsupportedFormatError is returned when the file is not a RIFF, RF64 or
// BW64 container holding WAVE data.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when file structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// TruncatedError is returned when a chunk header or a declared chunk
// payload extends past the end of the source.
//
// ID holds whatever identity bytes could be read, which may be fewer
// than four when the header itself is cut short.
type TruncatedError struct {
	Path   string
	ID     string
	Offset int64 // offset of the chunk header
	Need   int64 // bytes the chunk requires from Offset
	Have   int64 // bytes actually available from Offset
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%s: truncated chunk %q at offset %d: need %d bytes, have %d",
		e.Path, e.ID, e.Offset, e.Need, e.Have)
}

// UnresolvedSizeError is returned when a chunk declares the 64-bit size
// sentinel but the size table has no entry for its identity.
type UnresolvedSizeError struct {
	Path   string
	ID     string
	Offset int64
}

func (e *UnresolvedSizeError) Error() string {
	return fmt.Sprintf("%s: chunk %q at offset %d has extended size but no ds64 entry",
		e.Path, e.ID, e.Offset)
}

// MalformedRecordError is returned when a fixed-layout record is shorter
// than its layout requires, or a field holds a value outside its closed
// set.
type MalformedRecordError struct {
	Record string
	Reason string
	Need   int
	Have   int
}

func (e *MalformedRecordError) Error() string {
	if e.Need > 0 {
		return fmt.Sprintf("malformed %s record: %s (need %d bytes, have %d)",
			e.Record, e.Reason, e.Need, e.Have)
	}
	return fmt.Sprintf("malformed %s record: %s", e.Record, e.Reason)
}

// TextDecodeError is returned when a text field cannot be decoded with the
// requested character encoding.
type TextDecodeError struct {
	Err      error
	Field    string
	Encoding string
}

func (e *TextDecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s as %s: %v", e.Field, e.Encoding, e.Err)
	}
	return fmt.Sprintf("decode %s as %s: invalid byte sequence", e.Field, e.Encoding)
}

func (e *TextDecodeError) Unwrap() error {
	return e.Err
}

// Warning represents a non-fatal issue encountered while walking a file.
//
// A present chunk that fails to decode does not stop the other scopes from
// being read. Walk reports it as a Warning unless strict parsing is on.
type Warning struct {
	// Scope where the warning occurred ("fmt", "bext", "dolby", ...)
	Stage string

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
