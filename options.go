package wavmeta

import (
	"fmt"
	"log/slog"

	"github.com/simonhull/wavmeta/internal/registry"
	"github.com/simonhull/wavmeta/internal/text"
)

// Option configures behavior when opening WAVE files.
//
// Example:
//
//	file, err := wavmeta.Open("take.wav",
//	    wavmeta.WithInfoEncoding("cp1252"),
//	    wavmeta.WithStrictParsing(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	logger        *slog.Logger
	infoEncoding  string
	bextEncoding  string
	cueEncoding   string
	strictParsing bool // Walk fails on the first scope error
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger:       slog.New(slog.DiscardHandler),
		infoEncoding: text.Latin1,
		bextEncoding: text.ASCII,
		cueEncoding:  text.Latin1,
	}
}

func newOptions(opts []Option) (*openOptions, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	for _, name := range []string{options.infoEncoding, options.bextEncoding, options.cueEncoding} {
		if _, err := text.Lookup(name); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return options, nil
}

func (o *openOptions) encodings() registry.Encodings {
	return registry.Encodings{
		Info: o.infoEncoding,
		Bext: o.bextEncoding,
		Cue:  o.cueEncoding,
	}
}

// WithInfoEncoding sets the character encoding of LIST/INFO text.
// The default is latin_1.
func WithInfoEncoding(name string) Option {
	return func(o *openOptions) {
		o.infoEncoding = name
	}
}

// WithBextEncoding sets the character encoding of bext text fields and the
// coding history. The default is ascii.
func WithBextEncoding(name string) Option {
	return func(o *openOptions) {
		o.bextEncoding = name
	}
}

// WithCueEncoding sets the character encoding of labl, note and ltxt text.
// A list text chunk that declares its own code page overrides it. The
// default is latin_1.
func WithCueEncoding(name string) Option {
	return func(o *openOptions) {
		o.cueEncoding = name
	}
}

// WithLogger sets the logger used for debug output while parsing and
// decoding. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrictParsing makes Walk fail on the first scope that cannot be
// decoded.
//
// By default, Walk skips such a scope and reports it as a Warning so the
// other scopes can still be read. Accessors such as Broadcast always return
// decode errors regardless of this option.
//
// Example:
//
//	file, err := wavmeta.Open("take.wav", wavmeta.WithStrictParsing())
//	fields, _, err := file.Walk()
//	// err != nil if ANY scope is malformed
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}
