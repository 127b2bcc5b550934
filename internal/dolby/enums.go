package dolby

import (
	"fmt"

	"github.com/simonhull/wavmeta/internal/types"
)

// enumName returns the name of v, or a placeholder for values outside
// the table.
func enumName(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("unknown(%d)", v)
}

// closed converts a raw field value to an enumeration, failing for values
// the enumeration does not define.
func closed[T ~uint8](names []string, v uint8, record, field string) (T, error) {
	if int(v) >= len(names) {
		return 0, &types.MalformedRecordError{
			Record: record,
			Reason: fmt.Sprintf("%s value %d out of range 0-%d", field, v, len(names)-1),
		}
	}
	return T(v), nil
}

// DownmixLevel is a gain applied to a channel group when downmixing.
type DownmixLevel uint8

var downmixLevelNames = []string{
	"+3 dB", "+1.5 dB", "0 dB", "-1.5 dB", "-3 dB", "-4.5 dB", "-6 dB", "mute",
}

func (l DownmixLevel) String() string { return enumName(downmixLevelNames, uint8(l)) }

// SurroundEncoding tells whether a 2/0 program is Dolby Surround encoded
// (dsurmod).
type SurroundEncoding uint8

var surroundEncodingNames = []string{"not_indicated", "not_in_use", "in_use", "reserved"}

func (e SurroundEncoding) String() string { return enumName(surroundEncodingNames, uint8(e)) }

// BitStreamMode is the kind of service carried (bsmod).
type BitStreamMode uint8

// BitStreamModeVoiceOverKaraoke is voice-over for 1/0 programs and
// karaoke for every other channel configuration.
const BitStreamModeVoiceOverKaraoke BitStreamMode = 7

var bitStreamModeNames = []string{
	"complete_main",
	"music_and_effects",
	"visually_impaired",
	"hearing_impaired",
	"dialogue_only",
	"commentary",
	"emergency",
	"voice_over_karaoke",
}

func (m BitStreamMode) String() string { return enumName(bitStreamModeNames, uint8(m)) }

// AudioCodingMode is the channel configuration (acmod), front/surround.
type AudioCodingMode uint8

// AudioCodingModeMono is the 1/0 configuration.
const AudioCodingModeMono AudioCodingMode = 1

var audioCodingModeNames = []string{"reserved", "1/0", "2/0", "3/0", "2/1", "3/1", "2/2", "3/2"}

var audioCodingModeChannels = []int{0, 1, 2, 3, 3, 4, 4, 5}

func (m AudioCodingMode) String() string { return enumName(audioCodingModeNames, uint8(m)) }

// Channels returns the number of full-range channels, LFE excluded.
func (m AudioCodingMode) Channels() int {
	if int(m) < len(audioCodingModeChannels) {
		return audioCodingModeChannels[m]
	}
	return 0
}

// CenterDownmixLevel is the center mix level (cmixlev).
type CenterDownmixLevel uint8

var centerDownmixLevelNames = []string{"-3 dB", "-4.5 dB", "-6 dB", "reserved"}

func (l CenterDownmixLevel) String() string { return enumName(centerDownmixLevelNames, uint8(l)) }

// SurroundDownmixLevel is the surround mix level (surmixlev).
type SurroundDownmixLevel uint8

var surroundDownmixLevelNames = []string{"-3 dB", "-6 dB", "mute", "reserved"}

func (l SurroundDownmixLevel) String() string {
	return enumName(surroundDownmixLevelNames, uint8(l))
}

// RoomType is the mixing room type (roomtyp).
type RoomType uint8

var roomTypeNames = []string{"not_indicated", "large_room_x_curve", "small_room_flat_curve", "reserved"}

func (r RoomType) String() string { return enumName(roomTypeNames, uint8(r)) }

// DownmixMode is the preferred stereo downmix (dmixmod).
type DownmixMode uint8

var downmixModeNames = []string{"not_indicated", "pro_logic", "stereo", "pro_logic_2"}

func (m DownmixMode) String() string { return enumName(downmixModeNames, uint8(m)) }

// SurroundEXMode tells whether the program is Dolby Surround EX encoded
// (dsurexmod).
type SurroundEXMode uint8

var surroundEXModeNames = []string{"not_indicated", "not_surround_ex", "surround_ex", "pro_logic_2"}

func (m SurroundEXMode) String() string { return enumName(surroundEXModeNames, uint8(m)) }

// HeadphoneMode tells whether the program is Dolby Headphone encoded
// (dheadphonmod).
type HeadphoneMode uint8

var headphoneModeNames = []string{"not_indicated", "not_dolby_headphone", "dolby_headphone", "reserved"}

func (m HeadphoneMode) String() string { return enumName(headphoneModeNames, uint8(m)) }

// ADConverterType is the A/D converter used (adconvtyp).
type ADConverterType uint8

var adConverterTypeNames = []string{"standard", "hdcd"}

func (t ADConverterType) String() string { return enumName(adConverterTypeNames, uint8(t)) }

// CompressionProfile is an RF or line-mode compression profile.
type CompressionProfile uint8

var compressionProfileNames = []string{
	"none",
	"film_standard",
	"film_light",
	"music_standard",
	"music_light",
	"speech",
}

func (p CompressionProfile) String() string { return enumName(compressionProfileNames, uint8(p)) }

// StreamDependency classifies a Dolby Digital Plus substream.
type StreamDependency uint8

var streamDependencyNames = []string{
	"independent",
	"dependent",
	"independent_from_dolby_digital",
	"reserved",
}

func (d StreamDependency) String() string { return enumName(streamDependencyNames, uint8(d)) }

// WarpMode is the Atmos renderer's 5.1/7.1 downmix behavior.
type WarpMode uint8

var warpModeNames = []string{
	"normal",
	"warping",
	"downmix_dolby_surround",
	"downmix_loro",
	"not_indicated",
}

func (m WarpMode) String() string { return enumName(warpModeNames, uint8(m)) }
