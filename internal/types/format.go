// Package types provides the shared format identifiers, error types and
// field records used across the wavmeta packages.
package types

import (
	"io"
)

// Format represents the detected container flavour.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported container.
	FormatUnknown Format = iota // Unknown
	// FormatWAV represents a classic 32-bit RIFF/WAVE file.
	FormatWAV // WAV
	// FormatRF64 represents an EBU Tech 3306 RF64 file.
	FormatRF64 // RF64
	// FormatBW64 represents an ITU-R BS.2088 BW64 file.
	FormatBW64 // BW64
)

func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "WAV"
	case FormatRF64:
		return "RF64"
	case FormatBW64:
		return "BW64"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatWAV:
		return []string{".wav", ".bwf"}
	case FormatRF64:
		return []string{".wav", ".rf64"}
	case FormatBW64:
		return []string{".wav"}
	case FormatUnknown:
		return nil
	default:
		return nil
	}
}

// Extended reports whether the container may carry 64-bit sizes in ds64.
func (f Format) Extended() bool {
	return f == FormatRF64 || f == FormatBW64
}

// DetectFormat determines the container by examining the first 12 bytes:
// a RIFF, RF64 or BW64 identity followed by a length and the WAVE
// signature.
//
// Detection does not validate the chunk tree.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 12 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	header := make([]byte, 12)
	if n, err := r.ReadAt(header, 0); n < len(header) {
		reason := "failed to read file header"
		if err != nil {
			reason += ": " + err.Error()
		}
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: reason,
		}
	}

	if string(header[8:12]) != "WAVE" {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "missing WAVE signature",
		}
	}

	switch string(header[:4]) {
	case "RIFF":
		return FormatWAV, nil
	case "RF64":
		return FormatRF64, nil
	case "BW64":
		return FormatBW64, nil
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unsupported container " + quoteID(header[:4]),
	}
}

func quoteID(b []byte) string {
	out := make([]rune, 0, len(b)+2)
	out = append(out, '"')
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		out = append(out, rune(c))
	}
	return string(append(out, '"'))
}
