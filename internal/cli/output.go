package cli

import (
	"fmt"
	"io"

	"github.com/cockroachdb/apint/internal/calc"
	json "github.com/goccy/go-json"
)

// ResultWriter writes evaluation results to an output stream.
type ResultWriter interface {
	WriteResult(w io.Writer, r calc.Result) error
}

// NewResultWriter returns a JSON-lines writer when asJSON is set, otherwise
// a text writer.
func NewResultWriter(asJSON bool) ResultWriter {
	if asJSON {
		return JSONWriter{}
	}
	return TextWriter{}
}

// TextWriter writes "expr = value", "expr = q rem r" for divmod and
// "expr: kind: error" for failures.
type TextWriter struct{}

func (TextWriter) WriteResult(w io.Writer, r calc.Result) error {
	var err error
	switch {
	case r.Failed():
		_, err = fmt.Fprintf(w, "%s: %s: %v\n", r.Expr, r.Kind, r.Err)
	case r.Op == calc.OpDivMod:
		_, err = fmt.Fprintf(w, "%s = %s rem %s\n", r.Expr, r.Value, r.Rem)
	default:
		_, err = fmt.Fprintf(w, "%s = %s\n", r.Expr, r.Value)
	}
	return err
}

// JSONWriter writes one JSON object per result.
type JSONWriter struct{}

func (JSONWriter) WriteResult(w io.Writer, r calc.Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
