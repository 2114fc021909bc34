package calc

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apint"
	"github.com/pkg/errors"
)

// ErrSyntax is returned for lines that are not a recognized expression.
var ErrSyntax = errors.New("syntax error")

// Operation names. Binary operators are written between their operands, the
// rest before them.
const (
	OpAdd     = "+"
	OpSub     = "-"
	OpMul     = "*"
	OpQuo     = "/"
	OpRem     = "%"
	OpLsh     = "<<"
	OpRsh     = ">>"
	OpCmp     = "cmp"
	OpDivMod  = "divmod"
	OpSqrt    = "sqrt"
	OpISqrt   = "isqrt"
	OpSquare  = "square"
	OpIsPrime = "isprime"
	OpHex     = "hex"
	OpDigit   = "digit"
	OpNeg     = "neg"
	OpAbs     = "abs"
	OpInc     = "inc"
	OpDec     = "dec"
)

var binaryOps = map[string]bool{
	OpAdd: true, OpSub: true, OpMul: true, OpQuo: true, OpRem: true,
	OpLsh: true, OpRsh: true, OpCmp: true, OpDivMod: true,
}

var unaryOps = map[string]bool{
	OpSqrt: true, OpISqrt: true, OpSquare: true, OpIsPrime: true, OpHex: true,
	OpNeg: true, OpAbs: true, OpInc: true, OpDec: true,
}

// expr is a parsed line.
type expr struct {
	op   string
	args []*apint.Int
	// index is the digit index or shift count.
	index int
}

// parse splits line into an operation and its operands.
func parse(line string) (expr, error) {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 0:
		return expr{}, errors.Wrap(ErrSyntax, "empty expression")
	case len(fields) == 3 && fields[0] == OpDigit:
		x, err := parseOperand(fields[1])
		if err != nil {
			return expr{}, err
		}
		i, err := parseIndex(fields[2])
		if err != nil {
			return expr{}, err
		}
		return expr{op: OpDigit, args: []*apint.Int{x}, index: i}, nil
	case len(fields) == 2 && unaryOps[fields[0]]:
		x, err := parseOperand(fields[1])
		if err != nil {
			return expr{}, err
		}
		return expr{op: fields[0], args: []*apint.Int{x}}, nil
	case len(fields) == 3 && binaryOps[fields[1]]:
		op := fields[1]
		x, err := parseOperand(fields[0])
		if err != nil {
			return expr{}, err
		}
		if op == OpLsh || op == OpRsh {
			n, err := parseIndex(fields[2])
			if err != nil {
				return expr{}, err
			}
			return expr{op: op, args: []*apint.Int{x}, index: n}, nil
		}
		y, err := parseOperand(fields[2])
		if err != nil {
			return expr{}, err
		}
		return expr{op: op, args: []*apint.Int{x, y}}, nil
	}
	return expr{}, errors.Wrapf(ErrSyntax, "%q", line)
}

func parseOperand(s string) (*apint.Int, error) {
	x, err := apint.NewFromString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "operand %q", s)
	}
	return x, nil
}

// parseIndex parses a non-negative machine-sized integer.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.Wrapf(ErrSyntax, "bad index %q", s)
	}
	return n, nil
}
