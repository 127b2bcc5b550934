package wave

import (
	"encoding/hex"

	"github.com/google/uuid"
)

const (
	umidBasicSize    = 32
	umidExtendedSize = 64

	umidLengthBasic    = 0x13
	umidLengthExtended = 0x33
)

// UMID is a SMPTE ST 330 Unique Material Identifier as stored in bext.
type UMID struct {
	raw [umidExtendedSize]byte
}

// NewUMID copies up to 64 bytes of raw UMID data.
func NewUMID(b []byte) *UMID {
	u := &UMID{}
	copy(u.raw[:], b)
	return u
}

// Bytes returns the raw 64 bytes.
func (u *UMID) Bytes() []byte {
	return u.raw[:]
}

// IsZero reports whether the UMID is all zero, which writers use for
// "not set".
func (u *UMID) IsZero() bool {
	return u.raw == [umidExtendedSize]byte{}
}

// Extended reports whether the length byte declares an extended UMID
// with a source pack.
func (u *UMID) Extended() bool {
	return u.raw[12] == umidLengthExtended
}

// String returns the hex form: 32 bytes for a basic UMID, 64 for an
// extended one.
func (u *UMID) String() string {
	if u.Extended() {
		return hex.EncodeToString(u.raw[:])
	}
	return hex.EncodeToString(u.raw[:umidBasicSize])
}

// Basic returns the hex form of the basic 32-byte UMID.
func (u *UMID) Basic() string {
	return hex.EncodeToString(u.raw[:umidBasicSize])
}

// MaterialType names the material type in byte 10 of the universal
// label.
func (u *UMID) MaterialType() string {
	switch u.raw[10] {
	case 0x01:
		return "picture"
	case 0x02:
		return "audio"
	case 0x03:
		return "data"
	case 0x04:
		return "other"
	case 0x05:
		return "picture_single_component"
	case 0x06:
		return "picture_multiple_component"
	case 0x07:
		return "audio_single_component"
	case 0x09:
		return "audio_multiple_component"
	case 0x0b:
		return "auxiliary_single_component"
	case 0x0c:
		return "auxiliary_multiple_component"
	case 0x0d:
		return "mixed_components"
	case 0x0f:
		return "not_identified"
	default:
		return "not_recognized"
	}
}

// MaterialNumberMethod names how the material number was generated, from
// the high nibble of byte 11.
func (u *UMID) MaterialNumberMethod() string {
	switch u.raw[11] >> 4 {
	case 0x0:
		return "undefined"
	case 0x1:
		return "smpte"
	case 0x2:
		return "uuid"
	case 0x3:
		return "masked"
	case 0x4:
		return "ieee1394"
	case 0x5, 0x6, 0x7:
		return "reserved_undefined"
	default:
		return "unrecognized"
	}
}

// InstanceNumberMethod names how the instance number was generated, from
// the low nibble of byte 11.
func (u *UMID) InstanceNumberMethod() string {
	switch m := u.raw[11] & 0x0f; {
	case m == 0x0:
		return "undefined"
	case m == 0x1:
		return "local_registration"
	case m == 0x2:
		return "24_bit_prs"
	case m == 0x3:
		return "copy_number_and_16_bit_prs"
	case m == 0xf:
		return "live_stream"
	default:
		return "reserved_undefined"
	}
}

// InstanceNumber returns the 3-byte instance number.
func (u *UMID) InstanceNumber() []byte {
	return u.raw[13:16]
}

// MaterialNumber returns the 16-byte material number.
func (u *UMID) MaterialNumber() []byte {
	return u.raw[16:32]
}

// MaterialUUID returns the material number as a UUID when it was
// generated by the UUID method.
func (u *UMID) MaterialUUID() (uuid.UUID, bool) {
	if u.MaterialNumberMethod() != "uuid" {
		return uuid.Nil, false
	}
	id, err := uuid.FromBytes(u.MaterialNumber())
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// SourcePack returns the 32-byte source pack of an extended UMID, or nil.
func (u *UMID) SourcePack() []byte {
	if !u.Extended() {
		return nil
	}
	return u.raw[32:64]
}
