package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/wavmeta"
	"github.com/simonhull/wavmeta/internal/wavtest"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "take.wav")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func sampleFile() []byte {
	return wavtest.WAVE(
		wavtest.Chunk("fmt ", wavtest.PCMFormat(1, 44100, 16)),
		wavtest.Chunk("iXML", []byte("<BWFXML/>")),
		wavtest.List("LIST", "INFO", wavtest.Chunk("INAM", []byte("Room Tone\x00"))),
		wavtest.Chunk("data", make([]byte, 882)),
	)
}

func parseFlags(t *testing.T, args ...string) *config {
	t.Helper()
	fs := newFlags(io.Discard)
	require.NoError(t, fs.Parse(args))
	cfg, err := loadConfig(fs)
	require.NoError(t, err)
	return cfg
}

func TestRun_JSON(t *testing.T) {
	path := writeFile(t, sampleFile())

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var got struct {
		Filename    string                    `json:"filename"`
		RunDate     string                    `json:"run_date"`
		Application string                    `json:"application"`
		Scopes      map[string]map[string]any `json:"scopes"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))

	assert.Equal(t, path, got.Filename)
	assert.Equal(t, wavmeta.Application(), got.Application)
	assert.NotEmpty(t, got.RunDate)
	assert.Equal(t, float64(44100), got.Scopes["fmt"]["sample_rate"])
	assert.Equal(t, float64(441), got.Scopes["data"]["frame_count"])
	assert.Equal(t, "Room Tone", got.Scopes["info"]["title"])
	assert.NotContains(t, got.Scopes, "bext")
}

func TestRun_IXML(t *testing.T) {
	path := writeFile(t, sampleFile())

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"--ixml", path}, &stdout, &stderr))
	assert.Equal(t, "<BWFXML/>", stdout.String())

	stdout.Reset()
	require.Equal(t, 0, run([]string{"--adm", path}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "missing metadata")
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(nil, &stdout, &stderr), "no files")
	assert.Equal(t, 2, run([]string{"--adm", "--ixml", "x.wav"}, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{filepath.Join(t.TempDir(), "missing.wav")}, &stdout, &stderr))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := parseFlags(t)

	assert.Equal(t, &config{
		InfoEncoding: "latin_1",
		BextEncoding: "ascii",
		CueEncoding:  "latin_1",
		LogLevel:     "warn",
		Output:       "json",
	}, cfg)
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Setenv("WAVMETA_ENCODING_INFO", "utf-8")
	t.Setenv("WAVMETA_ENCODING_BEXT", "cp1252")

	conf := filepath.Join(t.TempDir(), "wavmeta.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("encoding:\n  cue: mac_roman\nlog:\n  level: debug\n"), 0o644))

	cfg := parseFlags(t, "--config", conf, "--bext-encoding", "latin_1", "--strict")

	assert.Equal(t, "utf-8", cfg.InfoEncoding, "environment")
	assert.Equal(t, "latin_1", cfg.BextEncoding, "flag beats environment")
	assert.Equal(t, "mac_roman", cfg.CueEncoding, "config file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Strict)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"ERROR", slog.LevelError},
		{"warn", slog.LevelWarn},
		{"info+2", slog.LevelInfo + 2},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := parseLevel("chatty")
	assert.ErrorContains(t, err, `invalid log level "chatty"`)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	fs := newFlags(io.Discard)
	require.NoError(t, fs.Parse([]string{"--log-level", "verbose"}))

	_, err := loadConfig(fs)
	assert.ErrorContains(t, err, "verbose")

	t.Setenv("WAVMETA_LOG_LEVEL", "loud")
	fs = newFlags(io.Discard)
	require.NoError(t, fs.Parse(nil))
	_, err = loadConfig(fs)
	assert.ErrorContains(t, err, "loud")
}

func TestRun_InvalidLogLevel(t *testing.T) {
	path := writeFile(t, sampleFile())

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"--log-level", "verbose", path}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `invalid log level "verbose"`)
}

func TestNewLogger_File(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "wavmeta.log")

	var stderr bytes.Buffer
	logger, closer := newLogger(&stderr, &config{LogLevel: "error", LogFile: logPath})
	logger.Debug("parsed chunk tree", "chunks", 4)
	logger.Error("cannot read file", "path", "x.wav")
	require.NoError(t, closer.Close())

	assert.NotContains(t, stderr.String(), "parsed chunk tree")
	assert.Contains(t, stderr.String(), "cannot read file")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "parsed chunk tree", rec["msg"])
	assert.Equal(t, float64(4), rec["chunks"])
}

func TestNewReport(t *testing.T) {
	now := time.Date(2024, 5, 17, 6, 41, 12, 0, time.UTC)
	r := newReport("a.wav", now,
		[]wavmeta.Field{
			{Scope: "fmt", Name: "channel_count", Value: uint16(2)},
			{Scope: "fmt", Name: "sample_rate", Value: uint32(48000)},
			{Scope: "bext", Name: "originator", Value: "Recorder"},
		},
		[]wavmeta.Warning{{Stage: "smpl", Message: "truncated"}},
	)

	assert.Equal(t, "2024-05-17T06:41:12Z", r.RunDate)
	assert.Len(t, r.Scopes, 2)
	assert.Equal(t, uint32(48000), r.Scopes["fmt"]["sample_rate"])
	assert.Equal(t, []string{"smpl: truncated"}, r.Warnings)
}
