package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	datefmt "github.com/goliatone/go-datefmt"
)

type cliConfig struct {
	locale    string
	timezone  string
	tag       string
	format    string
	overrides string
	verbose   bool
}

type report struct {
	Localization datefmt.Localization `json:"localization" yaml:"localization"`
	Timezone     string               `json:"timezone" yaml:"timezone"`
	Input        string               `json:"input,omitempty" yaml:"input,omitempty"`
	Tagged       string               `json:"tagged,omitempty" yaml:"tagged,omitempty"`
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		reportError(err)
	}

	if err := run(cfg, os.Stdout, os.Stderr); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "datefmt: %v\n", err)
	os.Exit(1)
}

func parseFlags(args []string) (cliConfig, error) {
	var cfg cliConfig
	fs := flag.NewFlagSet("datefmt", flag.ContinueOnError)

	fs.StringVar(&cfg.locale, "locale", "", "locale tag (defaults to LC_ALL/LC_TIME/LANG)")
	fs.StringVar(&cfg.timezone, "tz", "", "IANA timezone used to tag -tag values (defaults to local)")
	fs.StringVar(&cfg.tag, "tag", "", "date-time string to normalize with a GMT offset tag")
	fs.StringVar(&cfg.format, "format", "yaml", "output format: yaml or json")
	fs.StringVar(&cfg.overrides, "overrides", "", "JSON or YAML overrides file")
	fs.BoolVar(&cfg.verbose, "v", false, "enable debug logging on stderr")

	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}

	cfg.format = strings.ToLower(strings.TrimSpace(cfg.format))
	if cfg.format != "yaml" && cfg.format != "json" {
		return cliConfig{}, fmt.Errorf("unsupported format %q", cfg.format)
	}

	return cfg, nil
}

func run(cfg cliConfig, stdout, stderr io.Writer) error {
	level := zerolog.WarnLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()

	opts := []datefmt.Option{
		datefmt.WithLogger(logger),
		datefmt.WithTimezone(cfg.timezone),
	}
	if cfg.locale != "" {
		opts = append(opts, datefmt.WithDefaultLocale(cfg.locale))
	}
	if cfg.overrides != "" {
		opts = append(opts, datefmt.WithOverrides(cfg.overrides))
	}

	config, err := datefmt.NewConfig(opts...)
	if err != nil {
		return err
	}

	localization := config.BuildResolver().Resolve(cfg.locale)
	out := report{
		Localization: localization,
		Timezone:     config.Location.String(),
	}
	if cfg.tag != "" {
		out.Input = cfg.tag
		out.Tagged = config.BuildCodec(localization.DatePattern).TagWithOffset(cfg.tag)
	}

	return writeReport(stdout, cfg.format, out)
}

func writeReport(w io.Writer, format string, out report) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(out); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return errors.New("unsupported format " + format)
	}
}
