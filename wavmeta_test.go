package wavmeta_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"

	"github.com/simonhull/wavmeta"
	"github.com/simonhull/wavmeta/internal/binary"
	"github.com/simonhull/wavmeta/internal/wavtest"
)

// writePCM writes a 16-bit stereo 48 kHz file of the given length with
// go-audio/wav and returns its path.
func writePCM(t testing.TB, dir string, frames int) string {
	t.Helper()

	path := filepath.Join(dir, "tone.wav")
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, 48000, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 48000},
		SourceBitDepth: 16,
		Data:           make([]int, frames*2),
	}
	for i := range buf.Data {
		buf.Data[i] = (i * 37) % 2000
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// bextV0 returns a version 0 bext payload.
func bextV0(description, history string) []byte {
	return wavtest.Payload(func(sw *binary.SafeWriter) {
		_ = sw.WriteFixed(description, 256)
		_ = sw.WriteFixed("Sound Devices", 32)
		_ = sw.WriteFixed("USSDV0001", 32)
		_ = sw.WriteFixed("2024-05-17", 10)
		_ = sw.WriteFixed("06:41:12", 8)
		_ = binary.Write[uint64](sw, 1_152_000)
		_ = binary.Write[uint16](sw, 0)
		_ = sw.Pad(64 + 10 + 180)
		_ = sw.WriteString(history)
	})
}

// productionFile returns a plain RIFF file carrying the chunks a field
// recorder typically writes.
func productionFile() []byte {
	dbmd := []byte{1, 0, 0, 6, 8, 1, 0, 5, 0xFA, 0}

	return wavtest.WAVE(
		wavtest.Chunk("fmt ", wavtest.PCMFormat(2, 48000, 24)),
		wavtest.Chunk("bext", bextV0("sTAKE=3\r\nsSCENE=12\r\n", "A=PCM,F=48000,W=24,M=stereo\r\n")),
		wavtest.Chunk("iXML", []byte("<BWFXML><PROJECT>Night</PROJECT></BWFXML>")),
		wavtest.List("LIST", "INFO",
			wavtest.Chunk("INAM", []byte("Dawn Chorus\x00")),
			wavtest.Chunk("ISFT", []byte("MixPre\x00")),
		),
		wavtest.Chunk("dbmd", dbmd),
		wavtest.Chunk("data", make([]byte, 600)),
	)
}

func openBytes(t *testing.T, data []byte, opts ...wavmeta.Option) *wavmeta.File {
	t.Helper()
	f, err := wavmeta.OpenReader(bytes.NewReader(data), int64(len(data)), "take.wav", opts...)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	return f
}

func TestOpen_PCM(t *testing.T) {
	path := writePCM(t, t.TempDir(), 480)

	file, err := wavmeta.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer file.Close()

	if file.Format != wavmeta.FormatWAV {
		t.Errorf("Format = %v, want WAV", file.Format)
	}
	if file.Path != path {
		t.Errorf("Path = %q, want %q", file.Path, path)
	}

	format, err := file.AudioFormat()
	if err != nil {
		t.Fatalf("AudioFormat() error = %v", err)
	}
	if format.ChannelCount != 2 || format.SampleRate != 48000 || format.BitsPerSample != 16 || format.BlockAlign != 4 {
		t.Errorf("AudioFormat() = %+v", format)
	}

	data, err := file.Data()
	if err != nil {
		t.Fatalf("Data() error = %v", err)
	}
	if data.ByteCount != 1920 || data.FrameCount != 480 {
		t.Errorf("Data() = %+v, want 1920 bytes / 480 frames", data)
	}

	for name, get := range map[string]func() error{
		"Cues":    func() error { _, err := file.Cues(); return err },
		"Sampler": func() error { _, err := file.Sampler(); return err },
		"Dolby":   func() error { _, err := file.Dolby(); return err },
		"Info":    func() error { _, err := file.Info(); return err },
	} {
		if err := get(); err != nil {
			t.Errorf("%s() error = %v", name, err)
		}
	}

	b, err := file.Broadcast()
	if b != nil || err != nil {
		t.Errorf("Broadcast() = %v, %v; want nil, nil", b, err)
	}
	ixml, err := file.IXML()
	if ixml != nil || err != nil {
		t.Errorf("IXML() = %q, %v; want nil, nil", ixml, err)
	}
}

func TestOpen_FileNotFound(t *testing.T) {
	_, err := wavmeta.Open("/nonexistent/take.wav")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	data := append([]byte("FORM\x00\x00\x00\x04AIFF"), make([]byte, 8)...)

	_, err := wavmeta.OpenReader(bytes.NewReader(data), int64(len(data)), "x.aiff")
	var unsupported *wavmeta.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
}

func TestOpen_InvalidEncoding(t *testing.T) {
	data := productionFile()
	_, err := wavmeta.OpenReader(bytes.NewReader(data), int64(len(data)), "take.wav",
		wavmeta.WithInfoEncoding("klingon"))
	if err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

func TestOpen_Truncated(t *testing.T) {
	data := productionFile()
	data = data[:len(data)-100]

	_, err := wavmeta.OpenReader(bytes.NewReader(data), int64(len(data)), "cut.wav")
	var trunc *wavmeta.TruncatedError
	if !errors.As(err, &trunc) {
		t.Fatalf("expected TruncatedError, got %v", err)
	}
	if trunc.ID != "RIFF" || trunc.Offset != 0 {
		t.Errorf("truncated chunk = %q at %d, want RIFF at 0", trunc.ID, trunc.Offset)
	}
}

func TestFile_ProductionChunks(t *testing.T) {
	file := openBytes(t, productionFile())
	defer file.Close()

	b, err := file.Broadcast()
	if err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}
	if b.Description != "sTAKE=3\r\nsSCENE=12\r\n" || b.Originator != "Sound Devices" {
		t.Errorf("Broadcast() = %+v", b)
	}
	if b.CodingHistory != "A=PCM,F=48000,W=24,M=stereo\r\n" {
		t.Errorf("CodingHistory = %q", b.CodingHistory)
	}

	info, err := file.Info()
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.Title() != "Dawn Chorus" || info.Software() != "MixPre" {
		t.Errorf("Info() = %+v", info.Entries)
	}

	ixml, err := file.IXML()
	if err != nil {
		t.Fatalf("IXML() error = %v", err)
	}
	if string(ixml) != "<BWFXML><PROJECT>Night</PROJECT></BWFXML>" {
		t.Errorf("IXML() = %q", ixml)
	}

	d, err := file.Dolby()
	if err != nil {
		t.Fatalf("Dolby() error = %v", err)
	}
	if d.Version.String() != "1.0.0.6" || len(d.Segments) != 1 {
		t.Fatalf("Dolby() = %+v", d)
	}
	if s := d.Segments[0]; s.Type != wavmeta.DolbySegmentType(8) || !s.Valid {
		t.Errorf("segment = %+v", s)
	}

	raw, err := file.ChunkData("dbmd")
	if err != nil || len(raw) != 10 {
		t.Errorf("ChunkData(dbmd) = %d bytes, %v", len(raw), err)
	}
	if _, err := file.ChunkData("toolong"); err == nil {
		t.Error("ChunkData accepted an identity longer than four bytes")
	}
	if axml, err := file.AXML(); axml != nil || err != nil {
		t.Errorf("AXML() = %q, %v", axml, err)
	}
	if tags, err := file.ID3(); tags != nil || err != nil {
		t.Errorf("ID3() = %v, %v", tags, err)
	}
}

func TestFile_Chunks(t *testing.T) {
	file := openBytes(t, productionFile())

	type node struct {
		ID    string
		Depth int
		List  bool
	}
	var got []node
	for c := range file.Chunks() {
		got = append(got, node{c.ID, c.Depth, c.IsList()})
	}

	want := []node{
		{"RIFF", 0, true},
		{"fmt ", 1, false},
		{"bext", 1, false},
		{"iXML", 1, false},
		{"LIST", 1, true},
		{"INAM", 2, false},
		{"ISFT", 2, false},
		{"dbmd", 1, false},
		{"data", 1, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Chunks() mismatch (-want +got):\n%s", diff)
	}
}

func TestFile_Walk(t *testing.T) {
	file := openBytes(t, productionFile())

	fields, warnings, err := file.Walk()
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	index := make(map[string]any)
	var scopes []string
	for _, f := range fields {
		index[f.Scope+"."+f.Name] = f.Value
		if !slices.Contains(scopes, f.Scope) {
			scopes = append(scopes, f.Scope)
		}
	}

	wantScopes := []string{wavmeta.ScopeFormat, wavmeta.ScopeData, wavmeta.ScopeBext, wavmeta.ScopeDolby, wavmeta.ScopeInfo}
	if diff := cmp.Diff(wantScopes, scopes); diff != "" {
		t.Errorf("scope order mismatch (-want +got):\n%s", diff)
	}

	checks := map[string]any{
		"fmt.sample_rate":        uint32(48000),
		"data.frame_count":       uint64(100),
		"bext.originator":        "Sound Devices",
		"dolby.version":          "1.0.0.6",
		"dolby.segment.0.type":   "audio_info",
		"dolby.segment.0.length": 1,
		"info.title":             "Dawn Chorus",
	}
	for key, want := range checks {
		if got, ok := index[key]; !ok || got != want {
			t.Errorf("%s = %v (%T), want %v (%T)", key, got, got, want, want)
		}
	}
}

func TestFile_WalkWarnings(t *testing.T) {
	data := wavtest.WAVE(
		wavtest.Chunk("fmt ", wavtest.PCMFormat(1, 44100, 16)),
		wavtest.Chunk("smpl", make([]byte, 10)),
		wavtest.Chunk("data", make([]byte, 4)),
	)

	file := openBytes(t, data)
	fields, warnings, err := file.Walk()
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(warnings) != 1 || warnings[0].Stage != wavmeta.ScopeSampler {
		t.Fatalf("warnings = %v, want one smpl warning", warnings)
	}
	for _, f := range fields {
		if f.Scope == wavmeta.ScopeSampler {
			t.Errorf("field %s from a failed scope", f)
		}
	}

	strict := openBytes(t, data, wavmeta.WithStrictParsing())
	_, _, err = strict.Walk()
	var malformed *wavmeta.MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("strict Walk() error = %v, want MalformedRecordError", err)
	}

	// Accessors report the error regardless of strictness.
	if _, err := file.Sampler(); !errors.As(err, &malformed) {
		t.Errorf("Sampler() error = %v", err)
	}
}

func TestFile_Encodings(t *testing.T) {
	data := wavtest.WAVE(
		wavtest.List("LIST", "INFO", wavtest.Chunk("IART", []byte("Bj\xf6rk\x00"))),
	)

	info, err := openBytes(t, data).Info()
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.Artist() != "Björk" {
		t.Errorf("latin_1 Artist() = %q", info.Artist())
	}

	_, err = openBytes(t, data, wavmeta.WithInfoEncoding("utf-8")).Info()
	var decodeErr *wavmeta.TextDecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("utf-8 Info() error = %v, want TextDecodeError", err)
	}
	if decodeErr.Encoding != "utf-8" {
		t.Errorf("Encoding = %q", decodeErr.Encoding)
	}
}

func TestOpenReader_RF64(t *testing.T) {
	const dataSize = 6_000_000_000

	head := append([]byte("RF64\xff\xff\xff\xffWAVE"), wavtest.Chunk("ds64", wavtest.DS64(dataSize+64, dataSize, dataSize/4)).Bytes()...)
	head = append(head, wavtest.Chunk("fmt ", wavtest.PCMFormat(2, 48000, 16)).Bytes()...)
	head = append(head, []byte("data\xff\xff\xff\xff")...)
	src := &wavtest.Sparse{Head: head, Size: int64(len(head)) + dataSize}

	file, err := wavmeta.OpenReader(src, src.Size, "long.wav")
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	if file.Format != wavmeta.FormatRF64 {
		t.Errorf("Format = %v, want RF64", file.Format)
	}

	d, err := file.Data()
	if err != nil {
		t.Fatalf("Data() error = %v", err)
	}
	if d.ByteCount != dataSize || d.FrameCount != dataSize/4 || d.SampleCount != dataSize/4 {
		t.Errorf("Data() = %+v", d)
	}
}

// seekOnly hides the io.ReaderAt of a bytes.Reader.
type seekOnly struct{ r *bytes.Reader }

func (s seekOnly) Read(p []byte) (int, error)                { return s.r.Read(p) }
func (s seekOnly) Seek(off int64, whence int) (int64, error) { return s.r.Seek(off, whence) }

func TestOpenReadSeeker(t *testing.T) {
	data := productionFile()

	file, err := wavmeta.OpenReadSeeker(seekOnly{bytes.NewReader(data)}, "stream.wav")
	if err != nil {
		t.Fatalf("OpenReadSeeker() error = %v", err)
	}
	if file.Size != int64(len(data)) {
		t.Errorf("Size = %d, want %d", file.Size, len(data))
	}
	b, err := file.Broadcast()
	if err != nil || b.Originator != "Sound Devices" {
		t.Errorf("Broadcast() = %+v, %v", b, err)
	}
}

func TestFile_Idempotent(t *testing.T) {
	data := productionFile()

	first, _, err := openBytes(t, data).Walk()
	if err != nil {
		t.Fatal(err)
	}
	file := openBytes(t, data)
	for range 3 {
		again, _, err := file.Walk()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("Walk() not repeatable (-first +again):\n%s", diff)
		}
	}
}

func TestScopes(t *testing.T) {
	want := []string{"fmt", "data", "bext", "cues", "smpl", "dolby", "info", "chna"}
	if diff := cmp.Diff(want, wavmeta.Scopes()); diff != "" {
		t.Errorf("Scopes() mismatch (-want +got):\n%s", diff)
	}
}
