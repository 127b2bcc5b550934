package dolby

// digitalPlusSize is the fixed payload size of a Dolby Digital Plus
// segment.
const digitalPlusSize = 96

const digitalPlusRecord = "dolby_digital_plus"

// DigitalPlus holds the Dolby Digital Plus bitstream parameters.
type DigitalPlus struct {
	ProgramID uint8

	LFE             bool
	BitStreamMode   BitStreamMode
	AudioCodingMode AudioCodingMode

	CenterDownmix   CenterDownmixLevel
	SurroundDownmix SurroundDownmixLevel
	DolbySurround   SurroundEncoding

	LangcodePresent bool
	Copyright       bool
	Original        bool

	// Dialnorm is the dialogue level in -dB (1-31).
	Dialnorm uint8
	Langcode uint8

	// MixLevel and RoomType are meaningful only when ProductionInfo is
	// set.
	ProductionInfo bool
	MixLevel       uint8
	RoomType       RoomType

	LoRoCenterDownmix   DownmixLevel
	LoRoSurroundDownmix DownmixLevel
	DownmixMode         DownmixMode
	LtRtCenterDownmix   DownmixLevel
	LtRtSurroundDownmix DownmixLevel

	SurroundEX   SurroundEXMode
	Headphone    HeadphoneMode
	ADConverter  ADConverterType
	Compression  CompressionProfile
	DynamicRange CompressionProfile
	StreamType   StreamDependency

	// DataRate is in kbit/s.
	DataRate uint16
}

func (*DigitalPlus) segmentBody() {}

// Service names the service kind, resolving the shared voice-over and
// karaoke code against the channel configuration.
func (d *DigitalPlus) Service() string {
	if d.BitStreamMode != BitStreamModeVoiceOverKaraoke {
		return d.BitStreamMode.String()
	}
	if d.AudioCodingMode == AudioCodingModeMono {
		return "voice_over"
	}
	return "karaoke"
}

// DecodeDigitalPlus decodes a 96-byte Dolby Digital Plus segment payload.
//
// Every field sits in a single byte. Multi-bit fields are masked and
// shifted out, then checked against their enumeration.
func DecodeDigitalPlus(b []byte) (*DigitalPlus, error) {
	if err := payloadSize(b, digitalPlusSize, digitalPlusRecord); err != nil {
		return nil, err
	}

	d := &DigitalPlus{
		ProgramID: b[0],

		// Byte 1: lfeon (1 bit), bsmod (3 bits), acmod (3 bits)
		LFE:             b[1]&0x40 != 0,
		BitStreamMode:   BitStreamMode((b[1] & 0x38) >> 3),
		AudioCodingMode: AudioCodingMode(b[1] & 0x07),

		// Byte 4: cmixlev, surmixlev, dsurmod (2 bits each)
		CenterDownmix:   CenterDownmixLevel((b[4] & 0x30) >> 4),
		SurroundDownmix: SurroundDownmixLevel((b[4] & 0x0c) >> 2),
		DolbySurround:   SurroundEncoding(b[4] & 0x03),

		// Byte 5: langcod, copyrightb, origbs flags, dialnorm (5 bits)
		LangcodePresent: b[5]&0x80 != 0,
		Copyright:       b[5]&0x40 != 0,
		Original:        b[5]&0x20 != 0,
		Dialnorm:        b[5] & 0x1f,

		Langcode: b[6],

		// Byte 7: audprodie, mixlevel (5 bits), roomtyp (2 bits)
		ProductionInfo: b[7]&0x80 != 0,
		MixLevel:       (b[7] & 0x7c) >> 2,
		RoomType:       RoomType(b[7] & 0x03),

		// Byte 8: lorocmixlev, lorosurmixlev (3 bits each)
		LoRoCenterDownmix:   DownmixLevel((b[8] & 0x38) >> 3),
		LoRoSurroundDownmix: DownmixLevel(b[8] & 0x07),

		// Byte 9: dmixmod (2 bits), ltrtcmixlev, ltrtsurmixlev (3 bits each)
		DownmixMode:         DownmixMode((b[9] & 0xc0) >> 6),
		LtRtCenterDownmix:   DownmixLevel((b[9] & 0x38) >> 3),
		LtRtSurroundDownmix: DownmixLevel(b[9] & 0x07),

		// Byte 10: dsurexmod, dheadphonmod (2 bits each), adconvtyp
		SurroundEX:  SurroundEXMode((b[10] & 0x60) >> 5),
		Headphone:   HeadphoneMode((b[10] & 0x18) >> 3),
		ADConverter: ADConverterType((b[10] & 0x04) >> 2),

		// Byte 19: ddplus_info1 stream_type (2 bits)
		StreamType: StreamDependency((b[19] & 0x0c) >> 2),

		DataRate: uint16(b[25]) | uint16(b[26])<<8,
	}

	var err error
	if d.Compression, err = closed[CompressionProfile](compressionProfileNames, b[14], digitalPlusRecord, "compr1"); err != nil {
		return nil, err
	}
	if d.DynamicRange, err = closed[CompressionProfile](compressionProfileNames, b[15], digitalPlusRecord, "dynrng1"); err != nil {
		return nil, err
	}

	return d, nil
}
