package wave

import (
	"bytes"
	"fmt"

	"github.com/dhowden/tag"

	"github.com/simonhull/wavmeta/internal/riff"
	"github.com/simonhull/wavmeta/internal/types"
)

// The Load functions locate a scope's chunks in a parsed container and
// decode them. Each returns a nil record and a nil error when the chunks
// are absent.

// LoadFormat decodes the first fmt chunk.
func LoadFormat(c *riff.Container) (*AudioFormat, error) {
	ch, payload, err := c.ReadFirst(riff.IDFmt)
	if err != nil || ch == nil {
		return nil, err
	}
	return DecodeFormat(payload)
}

// LoadData describes the first data chunk. A data chunk needs a fmt chunk
// to be described.
func LoadData(c *riff.Container) (*DataStats, error) {
	data := c.Find(riff.IDData)
	if data == nil {
		return nil, nil
	}

	f, err := LoadFormat(c)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, &types.CorruptedFileError{
			Path:   c.Path(),
			Offset: data.Start - 8,
			Reason: "data chunk without fmt chunk",
		}
	}

	var sampleCount uint64
	if c.Sizes != nil {
		sampleCount = c.Sizes.SampleCount
	}
	return DescribeData(data.Length, f, sampleCount)
}

// LoadBroadcast decodes the first bext chunk.
func LoadBroadcast(c *riff.Container, encoding string) (*BroadcastExtension, error) {
	ch, payload, err := c.ReadFirst(riff.IDBext)
	if err != nil || ch == nil {
		return nil, err
	}
	return DecodeBroadcast(payload, encoding)
}

// LoadCues joins the cue chunk with the labl, note and ltxt entries of
// the LIST/adtl block.
func LoadCues(c *riff.Container, encoding string) (*Cues, error) {
	cue := c.Find(riff.IDCue)
	adtl := c.FindList(riff.IDAdtl)
	if cue == nil && adtl == nil {
		return nil, nil
	}

	cues := &Cues{}
	if cue != nil {
		payload, err := c.Read(cue)
		if err != nil {
			return nil, err
		}
		if cues.Points, err = DecodeCues(payload); err != nil {
			return nil, err
		}
	}
	if adtl == nil {
		return cues, nil
	}

	for _, n := range adtl.Children {
		ch, ok := n.(*riff.Chunk)
		if !ok {
			continue
		}
		switch ch.ID {
		case riff.IDLabl, riff.IDNote, riff.IDLtxt:
		default:
			continue
		}

		payload, err := c.Read(ch)
		if err != nil {
			return nil, err
		}
		switch ch.ID {
		case riff.IDLabl:
			l, err := DecodeLabel(payload, encoding)
			if err != nil {
				return nil, err
			}
			cues.Labels = append(cues.Labels, l)
		case riff.IDNote:
			note, err := DecodeLabel(payload, encoding)
			if err != nil {
				return nil, err
			}
			cues.Notes = append(cues.Notes, note)
		case riff.IDLtxt:
			r, err := DecodeRange(payload, encoding)
			if err != nil {
				return nil, err
			}
			cues.Ranges = append(cues.Ranges, r)
		}
	}

	return cues, nil
}

// LoadSampler decodes the first smpl chunk.
func LoadSampler(c *riff.Container) (*Sampler, error) {
	ch, payload, err := c.ReadFirst(riff.IDSmpl)
	if err != nil || ch == nil {
		return nil, err
	}
	return DecodeSampler(payload)
}

// LoadInfo decodes every text chunk of the first LIST/INFO block.
func LoadInfo(c *riff.Container, encoding string) (*Info, error) {
	l := c.FindList(riff.IDInfo)
	if l == nil {
		return nil, nil
	}

	info := &Info{}
	for _, n := range l.Children {
		ch, ok := n.(*riff.Chunk)
		if !ok {
			continue
		}
		payload, err := c.Read(ch)
		if err != nil {
			return nil, err
		}
		e, err := DecodeInfoEntry(ch.ID.String(), payload, encoding)
		if err != nil {
			return nil, err
		}
		info.Entries = append(info.Entries, e)
	}
	return info, nil
}

// LoadChannelAssignment decodes the first chna chunk.
func LoadChannelAssignment(c *riff.Container) (*ChannelAssignment, error) {
	ch, payload, err := c.ReadFirst(riff.IDChna)
	if err != nil || ch == nil {
		return nil, err
	}
	return DecodeChannelAssignment(payload)
}

// LoadID3 reads the ID3v2 tag embedded in an "id3 " or "ID3 " chunk.
func LoadID3(c *riff.Container) (tag.Metadata, error) {
	ch := c.Find(riff.IDID3)
	if ch == nil {
		ch = c.Find(riff.IDID3U)
	}
	if ch == nil {
		return nil, nil
	}

	payload, err := c.Read(ch)
	if err != nil {
		return nil, err
	}
	m, err := tag.ReadFrom(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("read %q chunk at offset %d: %w", ch.ID, ch.Start, err)
	}
	return m, nil
}
