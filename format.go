package wavmeta

import (
	"io"

	"github.com/simonhull/wavmeta/internal/types"
)

// Format identifies the container flavour of a WAVE file.
type Format = types.Format

// Container formats.
const (
	FormatUnknown = types.FormatUnknown
	FormatWAV     = types.FormatWAV
	FormatRF64    = types.FormatRF64
	FormatBW64    = types.FormatBW64
)

// DetectFormat inspects the first 12 bytes of r and reports the container
// flavour without parsing the chunk tree.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
