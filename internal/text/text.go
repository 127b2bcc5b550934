// Package text decodes the fixed-width, zero-padded text fields found in
// WAVE metadata chunks.
package text

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/simonhull/wavmeta/internal/types"
)

// Common encoding names accepted by Decode.
const (
	ASCII  = "ascii"
	Latin1 = "latin_1"
	UTF8   = "utf-8"
)

var errNonASCII = fmt.Errorf("byte outside 7-bit range")

// aliases maps spellings used by broadcast tools to an encoding.
// A nil value means the name is handled without a decoder (ascii).
var aliases = map[string]encoding.Encoding{
	"ascii":      nil,
	"us-ascii":   nil,
	"latin_1":    charmap.ISO8859_1,
	"latin-1":    charmap.ISO8859_1,
	"latin1":     charmap.ISO8859_1,
	"iso8859_1":  charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
	"utf-8":      unicode.UTF8,
	"utf_8":      unicode.UTF8,
	"utf8":       unicode.UTF8,
	"mac_roman":  charmap.Macintosh,
	"macroman":   charmap.Macintosh,
}

// Lookup resolves an encoding name. Besides IANA names it understands the
// "cp<N>" form used by list text code pages: 1250-1258 map to the
// windows-125x charmaps and everything else to IBM<N>.
//
// A nil Encoding with a nil error means plain 7-bit ASCII.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if enc, ok := aliases[key]; ok {
		return enc, nil
	}

	if cp, ok := strings.CutPrefix(key, "cp"); ok {
		if n, err := strconv.Atoi(cp); err == nil {
			if n >= 1250 && n <= 1258 {
				key = "windows-" + cp
			} else {
				key = "ibm" + cp
			}
		}
	}

	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// Trim returns b up to, not including, the first zero byte.
func Trim(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// Decode trims b at its first zero byte and decodes the rest with the
// named encoding. field names the value for error reporting.
//
// Bytes the encoding cannot represent produce a *types.TextDecodeError.
func Decode(b []byte, name, field string) (string, error) {
	b = Trim(b)

	enc, err := Lookup(name)
	if err != nil {
		return "", &types.TextDecodeError{Field: field, Encoding: name, Err: err}
	}

	if enc == nil {
		for _, c := range b {
			if c >= utf8.RuneSelf {
				return "", &types.TextDecodeError{Field: field, Encoding: name, Err: errNonASCII}
			}
		}
		return string(b), nil
	}

	if enc == unicode.UTF8 {
		if !utf8.Valid(b) {
			return "", &types.TextDecodeError{Field: field, Encoding: name}
		}
		return string(b), nil
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", &types.TextDecodeError{Field: field, Encoding: name, Err: err}
	}
	// charmap decoders substitute U+FFFD for unmapped bytes
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", &types.TextDecodeError{Field: field, Encoding: name}
	}
	return string(out), nil
}
