package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// config is the resolved command configuration. Values come from flags,
// then WAVMETA_* environment variables, then the config file.
type config struct {
	InfoEncoding string
	BextEncoding string
	CueEncoding  string
	LogLevel     string
	LogFile      string
	Output       string // "json", "adm" or "ixml"
	Strict       bool
}

// newFlags declares the command line.
func newFlags(out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("wavmeta", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintln(out, "usage: wavmeta [--adm | --ixml] [flags] <FILE> +")
		fs.PrintDefaults()
	}

	fs.Bool("adm", false, "write the ADM XML (axml chunk) instead of JSON")
	fs.Bool("ixml", false, "write the iXML document instead of JSON")
	fs.String("config", "", "read settings from this file (yaml, toml or json)")
	fs.String("info-encoding", "latin_1", "character encoding of LIST/INFO text")
	fs.String("bext-encoding", "ascii", "character encoding of bext text")
	fs.String("cue-encoding", "latin_1", "character encoding of cue labels and notes")
	fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	fs.String("log-file", "", "also write JSON logs to this file, rotated")
	fs.Bool("strict", false, "fail on the first chunk that cannot be decoded")
	fs.Bool("version", false, "print the version and exit")
	return fs
}

// flagKeys maps flags to configuration keys.
var flagKeys = map[string]string{
	"adm":           "output.adm",
	"ixml":          "output.ixml",
	"info-encoding": "encoding.info",
	"bext-encoding": "encoding.bext",
	"cue-encoding":  "encoding.cue",
	"log-level":     "log.level",
	"log-file":      "log.file",
	"strict":        "strict",
}

// loadConfig resolves the configuration from parsed flags, the
// environment and an optional config file.
func loadConfig(fs *pflag.FlagSet) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix("WAVMETA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &config{
		InfoEncoding: v.GetString("encoding.info"),
		BextEncoding: v.GetString("encoding.bext"),
		CueEncoding:  v.GetString("encoding.cue"),
		LogLevel:     v.GetString("log.level"),
		LogFile:      v.GetString("log.file"),
		Strict:       v.GetBool("strict"),
		Output:       "json",
	}

	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	adm, ixml := v.GetBool("output.adm"), v.GetBool("output.ixml")
	switch {
	case adm && ixml:
		return nil, fmt.Errorf("--adm and --ixml are mutually exclusive")
	case adm:
		cfg.Output = "adm"
	case ixml:
		cfg.Output = "ixml"
	}
	return cfg, nil
}
