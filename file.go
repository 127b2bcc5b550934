package wavmeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/dhowden/tag"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/dolby"
	"github.com/simonhull/wavmeta/internal/registry"
	"github.com/simonhull/wavmeta/internal/riff"
	"github.com/simonhull/wavmeta/internal/wave"
)

// File is an opened WAVE file with its chunk tree parsed.
//
// File decodes lazily: Open reads only chunk headers. Each accessor reads
// and decodes its chunk when called and does not cache the result.
//
// Always call Close() when done to release file resources:
//
//	file, err := wavmeta.Open("take.wav")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type File struct {
	// Path to the WAVE file
	Path string

	// Container flavour (WAV, RF64, BW64)
	Format Format

	// File size in bytes
	Size int64

	closer    io.Closer // set only when File opened the source itself
	container *riff.Container
	options   *openOptions
}

// Open opens a WAVE file and parses its chunk tree.
//
// Open reads chunk headers only. Payloads are read when an accessor asks
// for them, so the file handle stays open until Close.
//
// Options can be provided to customize decoding:
//
//	file, err := wavmeta.Open("take.wav",
//	    wavmeta.WithBextEncoding("latin_1"),
//	    wavmeta.WithLogger(slog.Default()),
//	)
func Open(path string, opts ...Option) (*File, error) {
	options, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	file, err := openReader(f, stat.Size(), path, options)
	if err != nil {
		f.Close()
		return nil, err
	}
	file.closer = f

	return file, nil
}

// OpenReader parses a WAVE file from any random-access source. path is used
// in error messages only. Close does not close r.
func OpenReader(r io.ReaderAt, size int64, path string, opts ...Option) (*File, error) {
	options, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return openReader(r, size, path, options)
}

// OpenReadSeeker parses a WAVE file from a seekable stream. The size is
// taken by seeking to the end. Reads are serialized through the stream's
// cursor unless rs also implements io.ReaderAt. Close does not close rs.
func OpenReadSeeker(rs io.ReadSeeker, path string, opts ...Option) (*File, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("seek to end: %w", err)
	}

	r, ok := rs.(io.ReaderAt)
	if !ok {
		r = &readSeekerAt{rs: rs}
	}
	return OpenReader(r, size, path, opts...)
}

// openReader parses the chunk tree of r.
func openReader(r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	c, err := riff.Parse(binary.NewSafeReader(r, size, path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}

	if options.logger.Enabled(context.Background(), slog.LevelDebug) {
		chunks := 0
		for range c.Chunks() {
			chunks++
		}
		options.logger.Debug("parsed chunk tree",
			"path", path,
			"format", format,
			"size", size,
			"chunks", chunks,
			"ds64", c.Sizes != nil,
		)
	}

	return &File{
		Path:      path,
		Format:    c.Format,
		Size:      size,
		container: c,
		options:   options,
	}, nil
}

// Close releases resources held by the file.
//
// After Close is called, the File should not be used.
func (f *File) Close() error {
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}

// OpenContext opens a file with context support for cancellation.
//
// The context is checked before the file is opened and again once the
// chunk tree is parsed.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	file, err := wavmeta.OpenContext(ctx, "take.wav")
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		file.Close()
		return nil, err
	}
	return file, nil
}

// OpenMany opens multiple WAVE files concurrently with default options.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any file fails to open, all successfully opened files are closed
// and an error is returned.
//
//	files, err := wavmeta.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, f := range files {
//			f.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	return OpenAll(ctx, paths)
}

// OpenAll is OpenMany with options applied to every file.
func OpenAll(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			file, err := OpenContext(ctx, path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				file.Close()
			}
		}
		return nil, err
	}

	return results, nil
}

// decode runs one accessor's loader and logs the outcome.
func decode[T any](f *File, scope string, load func() (T, error)) (T, error) {
	v, err := load()
	if err != nil {
		f.options.logger.Debug("decode failed", "path", f.Path, "scope", scope, "err", err)
		return v, err
	}
	f.options.logger.Debug("decoded scope", "path", f.Path, "scope", scope)
	return v, nil
}

// AudioFormat decodes the fmt chunk.
func (f *File) AudioFormat() (*AudioFormat, error) {
	return decode(f, ScopeFormat, func() (*AudioFormat, error) {
		return wave.LoadFormat(f.container)
	})
}

// Data describes the data chunk: its byte count, and its frame count as
// derived from the fmt block alignment. The sample payload is not read.
func (f *File) Data() (*DataStats, error) {
	return decode(f, ScopeData, func() (*DataStats, error) {
		return wave.LoadData(f.container)
	})
}

// Broadcast decodes the Broadcast Wave bext chunk.
func (f *File) Broadcast() (*BroadcastExtension, error) {
	return decode(f, ScopeBext, func() (*BroadcastExtension, error) {
		return wave.LoadBroadcast(f.container, f.options.bextEncoding)
	})
}

// Cues decodes the cue chunk together with the labels, notes and range
// labels of the adtl list.
func (f *File) Cues() (*Cues, error) {
	return decode(f, ScopeCues, func() (*Cues, error) {
		return wave.LoadCues(f.container, f.options.cueEncoding)
	})
}

// Sampler decodes the smpl chunk.
func (f *File) Sampler() (*Sampler, error) {
	return decode(f, ScopeSampler, func() (*Sampler, error) {
		return wave.LoadSampler(f.container)
	})
}

// Dolby decodes the dbmd chunk.
func (f *File) Dolby() (*DolbyMetadata, error) {
	return decode(f, ScopeDolby, func() (*DolbyMetadata, error) {
		return dolby.Load(f.container)
	})
}

// Info decodes the LIST/INFO chunk.
func (f *File) Info() (*Info, error) {
	return decode(f, ScopeInfo, func() (*Info, error) {
		return wave.LoadInfo(f.container, f.options.infoEncoding)
	})
}

// ChannelAssignment decodes the ADM chna chunk.
func (f *File) ChannelAssignment() (*ChannelAssignment, error) {
	return decode(f, ScopeChannels, func() (*ChannelAssignment, error) {
		return wave.LoadChannelAssignment(f.container)
	})
}

// ID3 reads an ID3 tag embedded in an "id3 " or "ID3 " chunk.
func (f *File) ID3() (tag.Metadata, error) {
	return decode(f, "id3", func() (tag.Metadata, error) {
		return wave.LoadID3(f.container)
	})
}

// IXML returns the raw iXML document, or nil if the file has none.
func (f *File) IXML() ([]byte, error) {
	return f.chunkData(riff.IDIXML)
}

// AXML returns the raw axml (ADM) document, or nil if the file has none.
func (f *File) AXML() ([]byte, error) {
	return f.chunkData(riff.IDAxml)
}

// ChunkData returns the payload of the first chunk with the given
// identity, pad byte excluded. Identities shorter than four bytes are
// padded with spaces ("cue" finds "cue "). It returns nil when the file has
// no such chunk.
func (f *File) ChunkData(id string) ([]byte, error) {
	if len(id) == 0 || len(id) > 4 {
		return nil, fmt.Errorf("invalid chunk identity %q", id)
	}
	return f.chunkData(riff.ID(id))
}

func (f *File) chunkData(id riff.FourCC) ([]byte, error) {
	_, payload, err := f.container.ReadFirst(id)
	return payload, err
}

// ChunkInfo describes one node of the chunk tree.
type ChunkInfo struct {
	// ID is the chunk identity, e.g. "fmt " or "LIST".
	ID string

	// Signature is the form or list type of a container ("WAVE",
	// "INFO", "adtl"), empty for leaf chunks.
	Signature string

	// Offset is the absolute offset of the first payload byte.
	Offset int64

	// Length is the payload length, resolved through ds64 when the
	// chunk declares a 64-bit size.
	Length uint64

	// Depth is the nesting level; the top-level chunk has depth 0.
	Depth int
}

// IsList reports whether the chunk is a container.
func (c ChunkInfo) IsList() bool {
	return c.Signature != ""
}

// Chunks yields every node of the chunk tree depth-first, in file order.
func (f *File) Chunks() iter.Seq[ChunkInfo] {
	return func(yield func(ChunkInfo) bool) {
		for depth, n := range f.container.Walk() {
			info := ChunkInfo{ID: n.Identity().String(), Depth: depth}
			switch n := n.(type) {
			case *riff.Chunk:
				info.Offset, info.Length = n.Start, n.Length
			case *riff.List:
				info.Offset, info.Length = n.Start, n.Length
				info.Signature = n.Signature.String()
			}
			if !yield(info) {
				return
			}
		}
	}
}

// Walk reads every scope in a fixed order and flattens it into fields.
//
// Scopes whose chunks are absent contribute nothing. A scope that fails to
// decode is skipped and reported as a Warning, unless strict parsing is
// enabled, in which case Walk returns the error.
func (f *File) Walk() ([]Field, []Warning, error) {
	enc := f.options.encodings()

	var (
		fields   []Field
		warnings []Warning
	)
	for _, s := range registry.All() {
		got, err := s.Read(f.container, enc)
		if err != nil {
			if f.options.strictParsing {
				return nil, nil, fmt.Errorf("read %s: %w", s.Name, err)
			}
			f.options.logger.Warn("skipping scope", "path", f.Path, "scope", s.Name, "err", err)
			warnings = append(warnings, Warning{
				Stage:   s.Name,
				Message: err.Error(),
				Offset:  errorOffset(err),
			})
			continue
		}
		fields = append(fields, got...)
	}
	return fields, warnings, nil
}

// Scopes returns the names of the scopes Walk reads, in walk order.
func Scopes() []string {
	all := registry.All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}

// errorOffset extracts a file offset from errors that carry one.
func errorOffset(err error) int64 {
	var (
		trunc      *TruncatedError
		unresolved *UnresolvedSizeError
		corrupted  *CorruptedFileError
		bounds     *OutOfBoundsError
	)
	switch {
	case errors.As(err, &trunc):
		return trunc.Offset
	case errors.As(err, &unresolved):
		return unresolved.Offset
	case errors.As(err, &corrupted):
		return corrupted.Offset
	case errors.As(err, &bounds):
		return bounds.Offset
	}
	return 0
}

// readSeekerAt serves ReadAt calls from an io.ReadSeeker.
type readSeekerAt struct {
	mu sync.Mutex
	rs io.ReadSeeker
}

func (r *readSeekerAt) ReadAt(p []byte, off int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(r.rs, p)
}
