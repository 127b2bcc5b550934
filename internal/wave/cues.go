package wave

import (
	"fmt"

	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/text"
	"github.com/simonhull/wavmeta/internal/types"
)

const cuePointSize = 24

const maxInt = int(^uint(0) >> 1)

// CuePoint is one entry of the cue chunk.
type CuePoint struct {
	// ChunkID names the chunk holding the cue, normally "data".
	ChunkID string

	// Name is the cue's identifier, referenced by labels, notes and
	// range labels.
	Name uint32

	Position     uint32
	ChunkStart   uint32
	BlockStart   uint32
	SampleOffset uint32
}

// Label is a labl entry: text attached to a cue point.
type Label struct {
	Text string
	Name uint32
}

// Note is a note entry. It has the same layout as Label.
type Note = Label

// RangeLabel is an ltxt entry: a labelled span starting at a cue point.
type RangeLabel struct {
	Purpose  string
	Text     string
	Name     uint32
	Length   uint32 // in sample frames
	Country  uint16
	Language uint16
	Dialect  uint16
	CodePage uint16
}

// CountryName resolves the country code, or "" when unknown.
func (r RangeLabel) CountryName() string {
	return countryName(r.Country)
}

// LanguageName resolves the language and dialect codes, or "" when
// unknown.
func (r RangeLabel) LanguageName() string {
	return languageName(r.Language, r.Dialect)
}

// Cues gathers cue points with their labels, notes and ranges.
type Cues struct {
	Points []CuePoint
	Labels []Label
	Notes  []Note
	Ranges []RangeLabel
}

// Label returns the text of the first labl entry for the cue name.
func (c *Cues) Label(name uint32) (string, bool) {
	for _, l := range c.Labels {
		if l.Name == name {
			return l.Text, true
		}
	}
	return "", false
}

// Note returns the text of the first note entry for the cue name.
func (c *Cues) Note(name uint32) (string, bool) {
	for _, n := range c.Notes {
		if n.Name == name {
			return n.Text, true
		}
	}
	return "", false
}

// Range returns the first ltxt entry for the cue name.
func (c *Cues) Range(name uint32) (RangeLabel, bool) {
	for _, r := range c.Ranges {
		if r.Name == name {
			return r, true
		}
	}
	return RangeLabel{}, false
}

// DecodeCues decodes a cue chunk payload.
func DecodeCues(payload []byte) ([]CuePoint, error) {
	s := binary.NewSpan(payload, "cue ")
	count := binary.Next[uint32](s, "cue count")
	if err := s.Err(); err != nil {
		return nil, err
	}

	need := 4 + uint64(count)*cuePointSize
	if uint64(len(payload)) < need {
		return nil, &types.MalformedRecordError{
			Record: "cue ",
			Reason: fmt.Sprintf("%d cue points declared", count),
			Need:   int(min(need, uint64(maxInt))),
			Have:   len(payload),
		}
	}

	points := make([]CuePoint, 0, count)
	for range count {
		p := CuePoint{
			Name:     binary.Next[uint32](s, "cue name"),
			Position: binary.Next[uint32](s, "cue position"),
		}
		id := s.FourCC("cue chunk id")
		p.ChunkID = string(id[:])
		p.ChunkStart = binary.Next[uint32](s, "cue chunk start")
		p.BlockStart = binary.Next[uint32](s, "cue block start")
		p.SampleOffset = binary.Next[uint32](s, "cue sample offset")
		points = append(points, p)
	}

	return points, s.Err()
}

// DecodeLabel decodes a labl or note payload.
func DecodeLabel(payload []byte, encoding string) (Label, error) {
	s := binary.NewSpan(payload, "labl")
	name := binary.Next[uint32](s, "cue name")
	if err := s.Err(); err != nil {
		return Label{}, err
	}

	t, err := text.Decode(s.Rest(), encoding, "label text")
	if err != nil {
		return Label{}, err
	}
	return Label{Name: name, Text: t}, nil
}

// DecodeRange decodes an ltxt payload. A non-zero code page in the record
// takes precedence over encoding.
func DecodeRange(payload []byte, encoding string) (RangeLabel, error) {
	s := binary.NewSpan(payload, "ltxt")
	r := RangeLabel{
		Name:   binary.Next[uint32](s, "cue name"),
		Length: binary.Next[uint32](s, "sample length"),
	}
	purpose := s.FourCC("purpose")
	r.Purpose = string(purpose[:])
	r.Country = binary.Next[uint16](s, "country")
	r.Language = binary.Next[uint16](s, "language")
	r.Dialect = binary.Next[uint16](s, "dialect")
	r.CodePage = binary.Next[uint16](s, "code page")
	if err := s.Err(); err != nil {
		return RangeLabel{}, err
	}

	if r.CodePage != 0 {
		encoding = fmt.Sprintf("cp%d", r.CodePage)
	}

	t, err := text.Decode(s.Rest(), encoding, "range text")
	if err != nil {
		return RangeLabel{}, err
	}
	r.Text = t
	return r, nil
}
