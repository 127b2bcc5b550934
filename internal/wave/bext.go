package wave

import (
	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/text"
)

// bext leader: description, originator, originator reference, date, time,
// time reference, version, UMID, five loudness values, reserved.
const bextLeaderSize = 256 + 32 + 32 + 10 + 8 + 8 + 2 + 64 + 5*2 + 180

// Loudness holds the EBU R 128 values of a version 2 bext chunk, already
// divided by 100.
type Loudness struct {
	Value                float64 // LUFS
	Range                float64 // LU
	MaxTruePeak          float64 // dBTP
	MaxMomentaryLoudness float64 // LUFS
	MaxShortTermLoudness float64 // LUFS
}

// BroadcastExtension is the decoded bext chunk (EBU Tech 3285).
type BroadcastExtension struct {
	// UMID is nil for version 0 chunks.
	UMID *UMID

	// Loudness is nil below version 2.
	Loudness *Loudness

	Description    string
	Originator     string
	OriginatorRef  string
	OriginatorDate string
	OriginatorTime string
	CodingHistory  string

	// TimeReference is the sample count since midnight of the first
	// sample.
	TimeReference uint64

	Version uint16
}

// DecodeBroadcast decodes a bext chunk payload. Text fields are decoded
// with the named encoding.
func DecodeBroadcast(payload []byte, encoding string) (*BroadcastExtension, error) {
	s := binary.NewSpan(payload, "bext")

	description := s.Bytes(256, "description")
	originator := s.Bytes(32, "originator")
	originatorRef := s.Bytes(32, "originator reference")
	date := s.Bytes(10, "origination date")
	clock := s.Bytes(8, "origination time")

	b := &BroadcastExtension{
		TimeReference: binary.Next[uint64](s, "time reference"),
		Version:       binary.Next[uint16](s, "version"),
	}
	umid := s.Bytes(64, "UMID")
	loudness := [5]int16{
		s.I16("loudness value"),
		s.I16("loudness range"),
		s.I16("max true peak"),
		s.I16("max momentary loudness"),
		s.I16("max short-term loudness"),
	}
	s.Skip(180, "reserved")
	if err := s.Err(); err != nil {
		return nil, err
	}

	fields := []struct {
		dst  *string
		src  []byte
		name string
	}{
		{&b.Description, description, "description"},
		{&b.Originator, originator, "originator"},
		{&b.OriginatorRef, originatorRef, "originator_ref"},
		{&b.OriginatorDate, date, "originator_date"},
		{&b.OriginatorTime, clock, "originator_time"},
		{&b.CodingHistory, s.Rest(), "coding_history"},
	}
	for _, f := range fields {
		v, err := text.Decode(f.src, encoding, "bext "+f.name)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	if b.Version >= 1 {
		b.UMID = NewUMID(umid)
	}
	if b.Version >= 2 {
		b.Loudness = &Loudness{
			Value:                float64(loudness[0]) / 100,
			Range:                float64(loudness[1]) / 100,
			MaxTruePeak:          float64(loudness[2]) / 100,
			MaxMomentaryLoudness: float64(loudness[3]) / 100,
			MaxShortTermLoudness: float64(loudness[4]) / 100,
		}
	}

	return b, nil
}
