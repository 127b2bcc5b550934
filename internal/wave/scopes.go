package wave

import (
	"fmt"

	"github.com/simonhull/wavmeta/internal/registry"
	"github.com/simonhull/wavmeta/internal/riff"
	"github.com/simonhull/wavmeta/internal/types"
)

// Scope names and walk order.
const (
	ScopeFormat   = "fmt"
	ScopeData     = "data"
	ScopeBext     = "bext"
	ScopeCues     = "cues"
	ScopeSampler  = "smpl"
	ScopeInfo     = "info"
	ScopeChannels = "chna"
)

func init() {
	registry.Register(registry.Scope{Name: ScopeFormat, Rank: 0, Read: formatFields})
	registry.Register(registry.Scope{Name: ScopeData, Rank: 10, Read: dataFields})
	registry.Register(registry.Scope{Name: ScopeBext, Rank: 20, Read: bextFields})
	registry.Register(registry.Scope{Name: ScopeCues, Rank: 30, Read: cueFields})
	registry.Register(registry.Scope{Name: ScopeSampler, Rank: 40, Read: samplerFields})
	registry.Register(registry.Scope{Name: ScopeInfo, Rank: 60, Read: infoFields})
	registry.Register(registry.Scope{Name: ScopeChannels, Rank: 70, Read: channelFields})
}

// fieldList accumulates fields of one scope.
type fieldList struct {
	scope  string
	fields []types.Field
}

func (l *fieldList) add(name string, value any) {
	l.fields = append(l.fields, types.Field{Scope: l.scope, Name: name, Value: value})
}

func formatFields(c *riff.Container, _ registry.Encodings) ([]types.Field, error) {
	f, err := LoadFormat(c)
	if err != nil || f == nil {
		return nil, err
	}

	l := &fieldList{scope: ScopeFormat}
	l.add("audio_format", f.Name())
	l.add("channel_count", f.ChannelCount)
	l.add("sample_rate", f.SampleRate)
	l.add("byte_rate", f.ByteRate)
	l.add("block_align", f.BlockAlign)
	l.add("bits_per_sample", f.BitsPerSample)
	if f.Extensible() {
		l.add("valid_bits_per_sample", f.ValidBitsPerSample)
		l.add("channel_mask", f.ChannelMask)
		l.add("sub_format", f.SubFormat.String())
	}
	return l.fields, nil
}

func dataFields(c *riff.Container, _ registry.Encodings) ([]types.Field, error) {
	d, err := LoadData(c)
	if err != nil || d == nil {
		return nil, err
	}

	l := &fieldList{scope: ScopeData}
	l.add("byte_count", d.ByteCount)
	l.add("frame_count", d.FrameCount)
	if d.SampleCount > 0 {
		l.add("sample_count", d.SampleCount)
	}
	return l.fields, nil
}

func bextFields(c *riff.Container, enc registry.Encodings) ([]types.Field, error) {
	b, err := LoadBroadcast(c, enc.Bext)
	if err != nil || b == nil {
		return nil, err
	}

	l := &fieldList{scope: ScopeBext}
	l.add("description", b.Description)
	l.add("originator", b.Originator)
	l.add("originator_ref", b.OriginatorRef)
	l.add("originator_date", b.OriginatorDate)
	l.add("originator_time", b.OriginatorTime)
	l.add("time_reference", b.TimeReference)
	l.add("version", b.Version)
	if b.UMID != nil && !b.UMID.IsZero() {
		l.add("umid", b.UMID.String())
	}
	if lu := b.Loudness; lu != nil {
		l.add("loudness_value", lu.Value)
		l.add("loudness_range", lu.Range)
		l.add("max_true_peak_level", lu.MaxTruePeak)
		l.add("max_momentary_loudness", lu.MaxMomentaryLoudness)
		l.add("max_short_term_loudness", lu.MaxShortTermLoudness)
	}
	l.add("coding_history", b.CodingHistory)
	return l.fields, nil
}

func cueFields(c *riff.Container, enc registry.Encodings) ([]types.Field, error) {
	cues, err := LoadCues(c, enc.Cue)
	if err != nil || cues == nil {
		return nil, err
	}

	l := &fieldList{scope: ScopeCues}
	for _, p := range cues.Points {
		prefix := fmt.Sprintf("%d.", p.Name)
		l.add(prefix+"position", p.SampleOffset)
		if text, ok := cues.Label(p.Name); ok {
			l.add(prefix+"label", text)
		}
		if text, ok := cues.Note(p.Name); ok {
			l.add(prefix+"note", text)
		}
		if r, ok := cues.Range(p.Name); ok {
			l.add(prefix+"range_length", r.Length)
			l.add(prefix+"range_purpose", r.Purpose)
			l.add(prefix+"range_text", r.Text)
		}
	}
	return l.fields, nil
}

func samplerFields(c *riff.Container, _ registry.Encodings) ([]types.Field, error) {
	s, err := LoadSampler(c)
	if err != nil || s == nil {
		return nil, err
	}

	l := &fieldList{scope: ScopeSampler}
	l.add("manufacturer", s.Manufacturer)
	l.add("product", s.Product)
	l.add("sample_period", s.SamplePeriod)
	l.add("midi_unity_note", s.MIDIUnityNote)
	l.add("midi_pitch_fraction", s.MIDIPitchFraction)
	l.add("smpte_format", s.SMPTEFormat)
	l.add("smpte_offset", s.SMPTEOffset.String())
	for i, loop := range s.Loops {
		prefix := fmt.Sprintf("loop.%d.", i)
		l.add(prefix+"cue_point_id", loop.CuePointID)
		l.add(prefix+"type", loop.TypeName())
		l.add(prefix+"start", loop.Start)
		l.add(prefix+"end", loop.End)
		l.add(prefix+"fraction", loop.Fraction)
		l.add(prefix+"play_count", loop.PlayCount)
	}
	if len(s.VendorData) > 0 {
		l.add("sampler_data_length", len(s.VendorData))
	}
	return l.fields, nil
}

func infoFields(c *riff.Container, enc registry.Encodings) ([]types.Field, error) {
	info, err := LoadInfo(c, enc.Info)
	if err != nil || info == nil {
		return nil, err
	}

	l := &fieldList{scope: ScopeInfo}
	for _, e := range info.Entries {
		l.add(e.Name(), e.Value)
	}
	return l.fields, nil
}

func channelFields(c *riff.Container, _ registry.Encodings) ([]types.Field, error) {
	a, err := LoadChannelAssignment(c)
	if err != nil || a == nil {
		return nil, err
	}

	l := &fieldList{scope: ScopeChannels}
	l.add("track_count", a.TrackCount)
	for i, u := range a.UIDs {
		prefix := fmt.Sprintf("uid.%d.", i)
		l.add(prefix+"track_index", u.TrackIndex)
		l.add(prefix+"uid", u.UID)
		l.add(prefix+"track_ref", u.TrackRef)
		l.add(prefix+"pack_ref", u.PackRef)
	}
	return l.fields, nil
}
