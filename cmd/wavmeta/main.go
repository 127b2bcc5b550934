// Command wavmeta prints the metadata of WAVE files as JSON, or writes
// their embedded ADM or iXML document.
//
// Usage:
//
//	wavmeta [--adm | --ixml] [flags] <FILE> +
//
// Every flag can also be set through a WAVMETA_* environment variable
// (WAVMETA_ENCODING_INFO, WAVMETA_LOG_LEVEL, ...) or a config file given
// with --config.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/simonhull/wavmeta"
)

// errMissingData reports a file without the requested XML document.
var errMissingData = errors.New("missing metadata")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := newFlags(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if v, _ := fs.GetBool("version"); v {
		info := wavmeta.GetVersionInfo()
		fmt.Fprintf(stdout, "%s (commit %s, built %s, %s)\n", wavmeta.Application(), info.GitCommit, info.BuildTime, info.GoVersion)
		return 0
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		fmt.Fprintf(stderr, "wavmeta: %v\n", err)
		return 2
	}

	logger, closer := newLogger(stderr, cfg)
	defer closer.Close()

	opts := []wavmeta.Option{
		wavmeta.WithInfoEncoding(cfg.InfoEncoding),
		wavmeta.WithBextEncoding(cfg.BextEncoding),
		wavmeta.WithCueEncoding(cfg.CueEncoding),
		wavmeta.WithLogger(logger),
	}
	if cfg.Strict {
		opts = append(opts, wavmeta.WithStrictParsing())
	}

	status := 0
	for _, path := range fs.Args() {
		err := describe(stdout, path, cfg.Output, opts)
		switch {
		case errors.Is(err, errMissingData):
			logger.Warn("skipping file", "path", path, "err", err)
		case err != nil:
			logger.Error("cannot read file", "path", path, "err", err)
			status = 1
		}
	}
	return status
}

// describe writes the requested output for one file.
func describe(w io.Writer, path, output string, opts []wavmeta.Option) error {
	file, err := wavmeta.Open(path, opts...)
	if err != nil {
		return err
	}
	defer file.Close()

	switch output {
	case "adm":
		return writeDocument(w, "adm", file.AXML)
	case "ixml":
		return writeDocument(w, "ixml", file.IXML)
	}

	fields, warnings, err := file.Walk()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newReport(path, time.Now(), fields, warnings))
}

func writeDocument(w io.Writer, name string, read func() ([]byte, error)) error {
	doc, err := read()
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w (%s)", errMissingData, name)
	}
	_, err = w.Write(doc)
	return err
}
