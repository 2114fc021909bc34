// Package calc evaluates one-line integer expressions over apint.Int.
//
// An expression is either "a OP b" with OP one of + - * / % << >> cmp divmod,
// or a named operation followed by its operand: sqrt, isqrt, square, isprime,
// hex, neg, abs, inc, dec, and "digit a i".
package calc

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/apint"
	"github.com/cockroachdb/apint/internal/logging"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/cockroachdb/apint/internal/calc"

// MaxShift bounds the shift count of << and >>.
const MaxShift = 1 << 24

// ErrShiftRange is returned for shift counts above MaxShift.
var ErrShiftRange = errors.New("shift count out of range")

// Recorder receives one observation per evaluated expression.
type Recorder interface {
	Observe(op string, d time.Duration, err error)
}

// Result is the outcome of evaluating one expression.
type Result struct {
	Expr  string `json:"expr"`
	Op    string `json:"op,omitempty"`
	Value string `json:"value,omitempty"`
	// Rem is the remainder of divmod.
	Rem string `json:"rem,omitempty"`
	// Kind classifies Error: division_by_zero, invalid_digit, negative_sqrt,
	// syntax, range or canceled.
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error,omitempty"`

	Err      error         `json:"-"`
	Duration time.Duration `json:"-"`
}

// Failed reports whether the expression produced an error.
func (r Result) Failed() bool { return r.Err != nil }

// Evaluator evaluates expressions. It is safe for concurrent use; each call
// works on its own values.
type Evaluator struct {
	hex    bool
	rec    Recorder
	log    logging.Logger
	primes *PrimeCache
	tracer trace.Tracer
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithHex formats integer results in hexadecimal.
func WithHex(hex bool) Option { return func(e *Evaluator) { e.hex = hex } }

// WithRecorder reports every evaluation to rec.
func WithRecorder(rec Recorder) Option { return func(e *Evaluator) { e.rec = rec } }

// WithLogger sets the logger for evaluation failures.
func WithLogger(log logging.Logger) Option { return func(e *Evaluator) { e.log = log } }

// WithPrimeCache memoizes isprime through c.
func WithPrimeCache(c *PrimeCache) Option { return func(e *Evaluator) { e.primes = c } }

// New returns an Evaluator configured by opts.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		log:    logging.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval parses and evaluates line. Failures are reported in the Result, never
// as a panic.
func (e *Evaluator) Eval(ctx context.Context, line string) Result {
	ctx, span := e.tracer.Start(ctx, "calc.Eval", trace.WithAttributes(attribute.String("expr", line)))
	defer span.End()

	start := time.Now()
	res := Result{Expr: line}
	if err := ctx.Err(); err != nil {
		res.setErr(err)
	} else if x, err := parse(line); err != nil {
		res.setErr(err)
	} else {
		res.Op = x.op
		span.SetAttributes(attribute.String("op", x.op))
		if err := e.apply(&res, x); err != nil {
			res.setErr(err)
		}
	}
	res.Duration = time.Since(start)

	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Kind)
		e.log.Debug("evaluation failed", logging.String("expr", line), logging.String("kind", res.Kind), logging.Err(res.Err))
	}
	if e.rec != nil {
		op := res.Op
		if op == "" {
			op = "invalid"
		}
		e.rec.Observe(op, res.Duration, res.Err)
	}
	return res
}

func (r *Result) setErr(err error) {
	r.Err = err
	r.Error = err.Error()
	r.Kind = Kind(err)
}

// Kind classifies err for reporting.
func Kind(err error) string {
	if c := apint.ConditionOf(err); c.Any() {
		return c.String()
	}
	switch errors.Cause(err) {
	case ErrSyntax:
		return "syntax"
	case ErrShiftRange:
		return "range"
	case context.Canceled, context.DeadlineExceeded:
		return "canceled"
	}
	return "error"
}

func (e *Evaluator) apply(res *Result, x expr) error {
	z := new(apint.Int)
	switch x.op {
	case OpAdd:
		z.Add(x.args[0], x.args[1])
	case OpSub:
		z.Sub(x.args[0], x.args[1])
	case OpMul:
		z.Mul(x.args[0], x.args[1])
	case OpQuo:
		if _, err := z.Quo(x.args[0], x.args[1]); err != nil {
			return err
		}
	case OpRem:
		if _, err := z.Rem(x.args[0], x.args[1]); err != nil {
			return err
		}
	case OpDivMod:
		r := new(apint.Int)
		if _, _, err := z.QuoRem(x.args[0], x.args[1], r); err != nil {
			return err
		}
		res.Rem = e.format(r)
	case OpLsh, OpRsh:
		if x.index > MaxShift {
			return errors.Wrapf(ErrShiftRange, "%d", x.index)
		}
		if x.op == OpLsh {
			z.Lsh(x.args[0], uint(x.index))
		} else {
			z.Rsh(x.args[0], uint(x.index))
		}
	case OpCmp:
		res.Value = strconv.Itoa(x.args[0].Cmp(x.args[1]))
		return nil
	case OpSqrt:
		if _, err := z.CheckedSqrt(x.args[0]); err != nil {
			return err
		}
	case OpISqrt:
		z.Sqrt(x.args[0], true)
	case OpSquare:
		z.Square(x.args[0])
	case OpIsPrime:
		res.Value = strconv.FormatBool(e.isPrime(x.args[0]))
		return nil
	case OpHex:
		res.Value = x.args[0].Hex()
		return nil
	case OpDigit:
		res.Value = strconv.Itoa(x.args[0].Digit(x.index))
		return nil
	case OpNeg:
		z.Neg(x.args[0])
	case OpAbs:
		z.Abs(x.args[0])
	case OpInc:
		z = x.args[0].Inc()
	case OpDec:
		z = x.args[0].Dec()
	default:
		return errors.Wrapf(ErrSyntax, "unknown operation %q", x.op)
	}
	res.Value = e.format(z)
	return nil
}

func (e *Evaluator) isPrime(x *apint.Int) bool {
	if e.primes == nil {
		return x.IsPrime()
	}
	return e.primes.IsPrime(x)
}

// PrimeStats returns the hit and miss counts of the isprime cache, or zeros
// when the Evaluator has none.
func (e *Evaluator) PrimeStats() (hits, misses uint64) {
	return e.primes.Stats()
}

func (e *Evaluator) format(x *apint.Int) string {
	if e.hex {
		return x.Hex()
	}
	return x.String()
}
