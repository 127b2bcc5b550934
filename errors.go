package wavmeta

import (
	"github.com/simonhull/wavmeta/internal/types"
)

// OutOfBoundsError reports a read past the end of the source.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError reports a source that is not RIFF, RF64 or BW64
// WAVE data.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError reports a structurally invalid file.
type CorruptedFileError = types.CorruptedFileError

// TruncatedError reports a chunk header or payload that runs past the end
// of the source.
type TruncatedError = types.TruncatedError

// UnresolvedSizeError reports a 64-bit size sentinel with no ds64 entry.
type UnresolvedSizeError = types.UnresolvedSizeError

// MalformedRecordError reports a fixed-layout record that is too short or
// holds a value outside its enumeration.
type MalformedRecordError = types.MalformedRecordError

// TextDecodeError reports text that cannot be decoded with the requested
// encoding.
type TextDecodeError = types.TextDecodeError

// Warning is a non-fatal issue reported by Walk.
type Warning = types.Warning
