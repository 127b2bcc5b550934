package wavmeta

import (
	"github.com/simonhull/wavmeta/internal/dolby"
	"github.com/simonhull/wavmeta/internal/types"
	"github.com/simonhull/wavmeta/internal/wave"
)

// Decoded chunk records. They are plain values with no reference back to
// the File they came from.
type (
	AudioFormat        = wave.AudioFormat
	DataStats          = wave.DataStats
	BroadcastExtension = wave.BroadcastExtension
	Loudness           = wave.Loudness
	UMID               = wave.UMID
	CuePoint           = wave.CuePoint
	Label              = wave.Label
	Note               = wave.Note
	RangeLabel         = wave.RangeLabel
	Cues               = wave.Cues
	Sampler            = wave.Sampler
	SampleLoop         = wave.SampleLoop
	SMPTEOffset        = wave.SMPTEOffset
	Info               = wave.Info
	InfoEntry          = wave.InfoEntry
	ChannelAssignment  = wave.ChannelAssignment
	TrackUID           = wave.TrackUID
)

// Dolby metadata (dbmd) records.
type (
	DolbyMetadata    = dolby.Metadata
	DolbySegment     = dolby.Segment
	DolbySegmentType = dolby.SegmentType
	DigitalPlus      = dolby.DigitalPlus
	Atmos            = dolby.Atmos
	OpaqueSegment    = dolby.Opaque
)

// Field is one (scope, name, value) triple produced by Walk.
type Field = types.Field

// Scope names used by Walk, in walk order.
const (
	ScopeFormat   = wave.ScopeFormat
	ScopeData     = wave.ScopeData
	ScopeBext     = wave.ScopeBext
	ScopeCues     = wave.ScopeCues
	ScopeSampler  = wave.ScopeSampler
	ScopeDolby    = dolby.Scope
	ScopeInfo     = wave.ScopeInfo
	ScopeChannels = wave.ScopeChannels
)
