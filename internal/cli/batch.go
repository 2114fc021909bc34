package cli

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/apint/internal/calc"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// maxLineSize bounds a single batch line, enough for operands of a few
// million digits.
const maxLineSize = 16 << 20

// BatchSummary counts the outcome of a batch run.
type BatchSummary struct {
	Total  int
	Failed int
}

// ReadLines returns the expressions of r, skipping blank lines and lines
// starting with '#'.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading expressions")
	}
	return lines, nil
}

// RunBatch evaluates every expression of in with at most workers evaluations
// in flight and writes the results to out in input order. Lines not started
// before ctx is done are reported as canceled. The returned error is ctx's
// error if the run was cut short, or the first write error.
func RunBatch(ctx context.Context, e *calc.Evaluator, in io.Reader, out io.Writer, rw ResultWriter, workers int) (BatchSummary, error) {
	lines, err := ReadLines(in)
	if err != nil {
		return BatchSummary{}, err
	}

	results := make([]calc.Result, len(lines))
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, line := range lines {
		idx, line := i, line
		g.Go(func() error {
			results[idx] = e.Eval(ctx, line)
			return nil
		})
	}
	g.Wait()

	summary := BatchSummary{Total: len(results)}
	for _, r := range results {
		if r.Failed() {
			summary.Failed++
		}
		if err := rw.WriteResult(out, r); err != nil {
			return summary, errors.Wrap(err, "writing result")
		}
	}
	return summary, ctx.Err()
}
