// Package config parses apcalc's command-line flags and environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/cockroachdb/apint/internal/errors"
	"github.com/rs/zerolog"
)

// EnvPrefix prefixes every environment variable read by apcalc.
const EnvPrefix = "APCALC_"

const (
	DefaultWorkers    = 4
	DefaultTimeout    = 5 * time.Minute
	DefaultLogLevel   = "warn"
	DefaultPrimeCache = 1024
)

// AppConfig holds the resolved configuration of one apcalc run.
type AppConfig struct {
	// Expr is a single expression to evaluate (-e).
	Expr string
	// File is a batch file with one expression per line (-f). "-" is stdin.
	File string
	// REPL starts the interactive loop.
	REPL bool
	// Serve is the listen address of the network mode.
	Serve string
	// Workers bounds concurrent evaluation in batch mode.
	Workers int
	// JSON selects JSON-lines output.
	JSON bool
	// Hex prints integer results in hexadecimal.
	Hex bool
	// LogLevel is a zerolog level name.
	LogLevel string
	// MetricsAddr, when set, exposes Prometheus metrics on that address.
	MetricsAddr string
	// Timeout bounds a batch run.
	Timeout time.Duration
	// PrimeCache is the capacity of the isprime cache; 0 disables it.
	PrimeCache int
}

// ParseConfig parses args (without the program name) and applies APCALC_*
// environment overrides for flags not set on the command line.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Evaluates integer expressions such as \"12 * -34\", \"sqrt 99\" or \"isprime 97\".\n")
		fmt.Fprintf(errWriter, "With no mode flag, expressions are read from stdin, one per line.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.StringVar(&config.Expr, "e", "", "evaluate a single expression")
	fs.StringVar(&config.File, "f", "", "evaluate each line of `file` (\"-\" for stdin)")
	fs.BoolVar(&config.REPL, "repl", false, "start the interactive loop")
	fs.StringVar(&config.Serve, "serve", "", "serve /ws, /eval and /metrics on `addr`")
	fs.IntVar(&config.Workers, "workers", DefaultWorkers, "concurrent evaluations in batch mode")
	fs.BoolVar(&config.JSON, "json", false, "write results as JSON lines")
	fs.BoolVar(&config.Hex, "hex", false, "write integer results in hexadecimal")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "log level (debug, info, warn, error, disabled)")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "expose Prometheus metrics on `addr`")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "maximum duration of a batch run")
	fs.IntVar(&config.PrimeCache, "prime-cache", DefaultPrimeCache, "isprime results to keep (0 disables)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.ConfigError{Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s (quote expressions passed to -e)", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	modes := 0
	for _, set := range []bool{c.Expr != "", c.File != "", c.REPL, c.Serve != ""} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("at most one of -e, -f, -repl and -serve may be given")
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError("-workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("-timeout must be positive, got %s", c.Timeout)
	}
	if c.PrimeCache < 0 {
		return apperrors.NewConfigError("-prime-cache must not be negative, got %d", c.PrimeCache)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid -log-level %q", c.LogLevel)
	}
	return nil
}
