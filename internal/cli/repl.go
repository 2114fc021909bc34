// Package cli implements apcalc's interactive loop and batch runner.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/apint/internal/calc"
)

const prompt = "apint> "

// REPL is an interactive session reading one expression per line.
type REPL struct {
	eval   *calc.Evaluator
	writer ResultWriter
	in     io.Reader
	out    io.Writer
}

// NewREPL returns a REPL on stdin and stdout.
func NewREPL(e *calc.Evaluator, rw ResultWriter) *REPL {
	return &REPL{
		eval:   e,
		writer: rw,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets the input reader.
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets the output writer.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until exit, EOF or cancellation of ctx.
func (r *REPL) Start(ctx context.Context) {
	fmt.Fprintln(r.out, "apint interactive mode. Type 'help' for commands.")
	reader := bufio.NewReader(r.in)
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(r.out, prompt)

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "Read error: %v\n", err)
			return
		}

		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(ctx, input) {
			return
		}
		if err != nil { // EOF
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// processCommand handles one line and reports whether the session goes on.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit":
		fmt.Fprintln(r.out, "Goodbye!")
		return false
	case "help", "?":
		r.printHelp()
		return true
	}
	res := r.eval.Eval(ctx, input)
	if err := r.writer.WriteResult(r.out, res); err != nil {
		fmt.Fprintf(r.out, "Write error: %v\n", err)
	}
	return true
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, "Expressions:")
	fmt.Fprintln(r.out, "  a + b, a - b, a * b, a / b, a % b   truncated division, remainder has the sign of a")
	fmt.Fprintln(r.out, "  a divmod b                          quotient and remainder")
	fmt.Fprintln(r.out, "  a << n, a >> n                      shifts")
	fmt.Fprintln(r.out, "  a cmp b                             -1, 0 or 1")
	fmt.Fprintln(r.out, "  sqrt a, isqrt a, square a           isqrt takes the root of |a|")
	fmt.Fprintln(r.out, "  isprime a, hex a, digit a i         digit 0 is the least significant")
	fmt.Fprintln(r.out, "  neg a, abs a, inc a, dec a")
	fmt.Fprintln(r.out, "Commands:")
	fmt.Fprintln(r.out, "  help          show this help")
	fmt.Fprintln(r.out, "  exit / quit   leave interactive mode")
}
