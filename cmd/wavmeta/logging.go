package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phsym/console-slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for --log-file.
const (
	logMaxSize    = 10 // MB
	logMaxBackups = 3
	logMaxAge     = 28 // days
)

// parseLevel maps a level name (debug, info, warn, error, or an offset
// such as "warn+2") to a slog level.
func parseLevel(name string) (slog.Level, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", name)
	}
	return lv, nil
}

// newLogger builds the console logger and, when cfg names a log file, a
// JSON logger writing to a rotated file. The returned closer releases the
// file.
//
// cfg.LogLevel is validated by loadConfig; an unknown name logs at warn.
func newLogger(stderr io.Writer, cfg *config) (*slog.Logger, io.Closer) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}

	var h slog.Handler = console.NewHandler(stderr, &console.HandlerOptions{
		Level:      level,
		TimeFormat: "15:04:05.000",
	})

	if cfg.LogFile == "" {
		return slog.New(h), io.NopCloser(nil)
	}

	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAge,
	}
	h = slog.NewMultiHandler(h, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return slog.New(h), file
}
