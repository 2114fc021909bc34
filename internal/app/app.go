// Package app wires configuration, logging, metrics and the evaluator into
// the apcalc command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/apint/internal/calc"
	"github.com/cockroachdb/apint/internal/cli"
	"github.com/cockroachdb/apint/internal/config"
	apperrors "github.com/cockroachdb/apint/internal/errors"
	"github.com/cockroachdb/apint/internal/logging"
	"github.com/cockroachdb/apint/internal/metrics"
	"github.com/cockroachdb/apint/internal/server"
	"golang.org/x/sync/errgroup"
)

// Application is one apcalc invocation.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In is read in batch and REPL modes. It defaults to os.Stdin.
	In io.Reader
}

// New parses args, whose first element is the program name.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "apcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}
	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter, In: os.Stdin}, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log, err := logging.New(a.ErrWriter, a.Config.LogLevel)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	m := metrics.New()
	eval := calc.New(
		calc.WithHex(a.Config.Hex),
		calc.WithRecorder(m),
		calc.WithLogger(log),
		calc.WithPrimeCache(calc.NewPrimeCache(a.Config.PrimeCache)),
	)
	rw := cli.NewResultWriter(a.Config.JSON)

	g, ctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(ctx)
	var code int
	g.Go(func() error {
		defer cancel()
		code = a.runMode(runCtx, eval, m, log, rw, out)
		return nil
	})
	if a.Config.MetricsAddr != "" && a.Config.Serve == "" {
		g.Go(func() error {
			return serveMetrics(runCtx, a.Config.MetricsAddr, m, log)
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("metrics server", err)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

func (a *Application) runMode(ctx context.Context, eval *calc.Evaluator, m *metrics.Metrics, log logging.Logger, rw cli.ResultWriter, out io.Writer) int {
	switch {
	case a.Config.Serve != "":
		err := server.New(eval, log, m).ListenAndServe(ctx, a.Config.Serve)
		return a.exit(err)
	case a.Config.REPL:
		repl := cli.NewREPL(eval, rw)
		repl.SetInput(a.In)
		repl.SetOutput(out)
		repl.Start(ctx)
		return apperrors.ExitSuccess
	case a.Config.Expr != "":
		res := eval.Eval(ctx, a.Config.Expr)
		if err := rw.WriteResult(out, res); err != nil {
			return a.exit(err)
		}
		if res.Failed() {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}
	return a.runBatch(ctx, eval, log, rw, out)
}

func (a *Application) runBatch(ctx context.Context, eval *calc.Evaluator, log logging.Logger, rw cli.ResultWriter, out io.Writer) int {
	in := a.In
	if a.Config.File != "" && a.Config.File != "-" {
		f, err := os.Open(a.Config.File)
		if err != nil {
			return a.exit(apperrors.NewConfigError("cannot open -f: %v", err))
		}
		defer f.Close()
		in = f
	}

	ctx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancel()

	start := time.Now()
	summary, err := cli.RunBatch(ctx, eval, in, out, rw, a.Config.Workers)
	hits, misses := eval.PrimeStats()
	log.Info("batch finished",
		logging.Int("total", summary.Total),
		logging.Int("failed", summary.Failed),
		logging.Uint64("prime_cache_hits", hits),
		logging.Uint64("prime_cache_misses", misses),
		logging.Duration("took", time.Since(start)))
	if err != nil {
		return a.exit(err)
	}
	if summary.Failed > 0 {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// exit reports err and maps it to an exit code.
func (a *Application) exit(err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	return apperrors.ExitCode(err)
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics, log logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	log.Info("serving metrics", logging.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// IsHelpError reports whether err comes from -h or -help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// Usage returns a one-line hint shown after configuration errors.
func Usage(programName string) string {
	return fmt.Sprintf("Run '%s -h' for usage.", programName)
}
