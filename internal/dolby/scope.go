package dolby

import (
	"fmt"

	"github.com/simonhull/wavmeta/internal/registry"
	"github.com/simonhull/wavmeta/internal/riff"
	"github.com/simonhull/wavmeta/internal/types"
)

// Scope is the walk scope name for dbmd fields.
const Scope = "dolby"

func init() {
	registry.Register(registry.Scope{Name: Scope, Rank: 50, Read: fields})
}

// Load decodes the first dbmd chunk of a parsed file. It returns nil
// when the file has none.
func Load(c *riff.Container) (*Metadata, error) {
	ch, payload, err := c.ReadFirst(riff.IDDbmd)
	if err != nil || ch == nil {
		return nil, err
	}
	return Decode(payload)
}

func fields(c *riff.Container, _ registry.Encodings) ([]types.Field, error) {
	m, err := Load(c)
	if err != nil || m == nil {
		return nil, err
	}

	var out []types.Field
	add := func(name string, value any) {
		out = append(out, types.Field{Scope: Scope, Name: name, Value: value})
	}

	add("version", m.Version.String())
	for i, s := range m.Segments {
		prefix := fmt.Sprintf("segment.%d.", i)
		add(prefix+"type", s.Type.String())
		add(prefix+"checksum_valid", s.Valid)

		switch b := s.Body.(type) {
		case *DigitalPlus:
			add(prefix+"program_id", b.ProgramID)
			add(prefix+"lfe_on", b.LFE)
			add(prefix+"service", b.Service())
			add(prefix+"audio_coding_mode", b.AudioCodingMode.String())
			add(prefix+"center_downmix_level", b.CenterDownmix.String())
			add(prefix+"surround_downmix_level", b.SurroundDownmix.String())
			add(prefix+"dolby_surround_encoded", b.DolbySurround.String())
			add(prefix+"dialnorm", b.Dialnorm)
			add(prefix+"copyright", b.Copyright)
			add(prefix+"original", b.Original)
			if b.ProductionInfo {
				add(prefix+"mix_level", b.MixLevel)
				add(prefix+"room_type", b.RoomType.String())
			}
			add(prefix+"loro_center_downmix_level", b.LoRoCenterDownmix.String())
			add(prefix+"loro_surround_downmix_level", b.LoRoSurroundDownmix.String())
			add(prefix+"downmix_mode", b.DownmixMode.String())
			add(prefix+"ltrt_center_downmix_level", b.LtRtCenterDownmix.String())
			add(prefix+"ltrt_surround_downmix_level", b.LtRtSurroundDownmix.String())
			add(prefix+"surround_ex_mode", b.SurroundEX.String())
			add(prefix+"headphone_mode", b.Headphone.String())
			add(prefix+"ad_converter_type", b.ADConverter.String())
			add(prefix+"compression_profile", b.Compression.String())
			add(prefix+"dynamic_range", b.DynamicRange.String())
			add(prefix+"stream_type", b.StreamType.String())
			add(prefix+"datarate_kbps", b.DataRate)
		case *Atmos:
			add(prefix+"tool", b.Tool)
			add(prefix+"tool_version", fmt.Sprintf("%d.%d.%d", b.ToolVersion[0], b.ToolVersion[1], b.ToolVersion[2]))
			add(prefix+"warp_mode", b.WarpMode.String())
		case Opaque:
			add(prefix+"length", len(b))
		}
	}
	return out, nil
}
