package wave

import (
	"fmt"

	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/text"
	"github.com/simonhull/wavmeta/internal/types"
)

const chnaEntrySize = 2 + 12 + 14 + 11 + 1

// TrackUID links a track of the data chunk to ADM audio objects
// (ITU-R BS.2076) declared in the axml chunk.
type TrackUID struct {
	UID      string // ATU_xxxxxxxx
	TrackRef string // AT_xxxxxxxx_xx
	PackRef  string // AP_xxxxxxxx

	// TrackIndex is the 1-based track number as stored in the file.
	TrackIndex uint16
}

// ChannelAssignment is the decoded chna chunk.
type ChannelAssignment struct {
	UIDs       []TrackUID
	TrackCount uint16
}

// Track returns the entries assigned to a 1-based track index.
func (a *ChannelAssignment) Track(index uint16) []TrackUID {
	var out []TrackUID
	for _, u := range a.UIDs {
		if u.TrackIndex == index {
			out = append(out, u)
		}
	}
	return out
}

// DecodeChannelAssignment decodes a chna chunk payload.
func DecodeChannelAssignment(payload []byte) (*ChannelAssignment, error) {
	s := binary.NewSpan(payload, "chna")
	a := &ChannelAssignment{TrackCount: binary.Next[uint16](s, "track count")}
	count := binary.Next[uint16](s, "UID count")
	if err := s.Err(); err != nil {
		return nil, err
	}

	need := 4 + int(count)*chnaEntrySize
	if len(payload) < need {
		return nil, &types.MalformedRecordError{
			Record: "chna",
			Reason: fmt.Sprintf("%d track UIDs declared", count),
			Need:   need,
			Have:   len(payload),
		}
	}

	a.UIDs = make([]TrackUID, 0, count)
	for range count {
		u := TrackUID{TrackIndex: binary.Next[uint16](s, "track index")}
		fields := []struct {
			dst  *string
			n    int
			name string
		}{
			{&u.UID, 12, "chna UID"},
			{&u.TrackRef, 14, "chna track reference"},
			{&u.PackRef, 11, "chna pack reference"},
		}
		for _, f := range fields {
			v, err := text.Decode(s.Bytes(f.n, f.name), text.ASCII, f.name)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}
		s.Skip(1, "pad")
		a.UIDs = append(a.UIDs, u)
	}

	return a, s.Err()
}
