package config

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	apperrors "github.com/cockroachdb/apint/internal/errors"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("apcalc", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != DefaultWorkers || cfg.Timeout != DefaultTimeout ||
		cfg.LogLevel != DefaultLogLevel || cfg.PrimeCache != DefaultPrimeCache {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Expr != "" || cfg.File != "" || cfg.REPL || cfg.Serve != "" {
		t.Errorf("no mode expected by default: %+v", cfg)
	}
}

func TestParseConfigFlags(t *testing.T) {
	args := []string{"-e", "2 * 3", "-workers", "8", "-json", "-hex", "-timeout", "10s", "-log-level", "debug"}
	cfg, err := ParseConfig("apcalc", args, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	want := AppConfig{
		Expr:       "2 * 3",
		Workers:    8,
		JSON:       true,
		Hex:        true,
		LogLevel:   "debug",
		Timeout:    10 * time.Second,
		PrimeCache: DefaultPrimeCache,
	}
	if cfg != want {
		t.Fatalf("expected: %+v, got: %+v", want, cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"two modes", []string{"-e", "1 + 1", "-repl"}, "at most one"},
		{"zero workers", []string{"-workers", "0"}, "-workers"},
		{"zero timeout", []string{"-timeout", "0s"}, "-timeout"},
		{"negative cache", []string{"-prime-cache", "-1"}, "-prime-cache"},
		{"bad level", []string{"-log-level", "loud"}, "-log-level"},
		{"positional", []string{"1", "+", "1"}, "unexpected arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("apcalc", tt.args, &bytes.Buffer{})
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected %q in %q", tt.msg, err.Error())
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := ParseConfig("apcalc", []string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "Usage: apcalc") {
		t.Errorf("usage not written: %s", out.String())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"WORKERS", "16")
	t.Setenv(EnvPrefix+"TIMEOUT", "1m")
	t.Setenv(EnvPrefix+"JSON", "yes")
	t.Setenv(EnvPrefix+"HEX", "maybe")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "error")
	t.Setenv(EnvPrefix+"PRIME_CACHE", "not-a-number")

	cfg, err := ParseConfig("apcalc", []string{"-log-level", "info"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 16 {
		t.Errorf("Workers = %d, want 16", cfg.Workers)
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %s, want 1m", cfg.Timeout)
	}
	if !cfg.JSON {
		t.Error("JSON should be enabled from the environment")
	}
	if cfg.Hex {
		t.Error("unrecognized boolean should keep the default")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("flag should win over environment, got %q", cfg.LogLevel)
	}
	if cfg.PrimeCache != DefaultPrimeCache {
		t.Errorf("invalid number should keep the default, got %d", cfg.PrimeCache)
	}
}

func TestEnvOverrideValidated(t *testing.T) {
	t.Setenv(EnvPrefix+"WORKERS", "0")
	_, err := ParseConfig("apcalc", nil, &bytes.Buffer{})
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"No", true, false},
		{"0", true, false},
		{"", true, true},
		{"on", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %t) = %t, want %t", tt.val, tt.def, got, tt.want)
		}
	}
}

func TestParseConfigBadFlag(t *testing.T) {
	_, err := ParseConfig("apcalc", []string{"-workers", "many"}, &bytes.Buffer{})
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}
