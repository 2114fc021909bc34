// Copyright 2016 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package apint

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

const testDir = "testdata"

var (
	flagSummary    = flag.Bool("summary", false, "print a summary")
	flagFailFast   = flag.Bool("fast", false, "stop work after first error; disables parallel testing")
	flagNoParallel = flag.Bool("noparallel", false, "disables parallel testing")
)

// ScriptCase is one line of a .intTest file:
//
//	id operation operand... -> result [condition...]
//
// A result of # means the operation fails; the conditions name the error.
type ScriptCase struct {
	ID         string
	Operation  string
	Operands   []string
	Result     string
	Conditions []string
}

func ParseIntTest(r io.Reader) ([]ScriptCase, error) {
	scanner := bufio.NewScanner(r)
	var res []ScriptCase
	for scanner.Scan() {
		text := scanner.Text()
		line := strings.Fields(text)
		// Comments take a whole line; "--" can also appear as an operand.
		if len(line) == 0 || strings.HasPrefix(line[0], "--") {
			continue
		}
		if len(line) < 4 {
			return nil, fmt.Errorf("short test case line: %q", text)
		}
		tc := ScriptCase{
			ID:        line[0],
			Operation: line[1],
		}
		rest := line[2:]
		for i, o := range rest {
			if o == "->" {
				tc.Operands = rest[:i]
				rest = rest[i+1:]
				break
			}
		}
		if tc.Operands == nil || len(rest) < 1 {
			return nil, fmt.Errorf("bad test case line: %q", text)
		}
		tc.Result = rest[0]
		tc.Conditions = rest[1:]
		res = append(res, tc)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func TestParseIntTest(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(testDir, "*.intTest"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test files")
	}
	for _, name := range files {
		t.Run(filepath.Base(name), func(t *testing.T) {
			f, err := os.Open(name)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			tcs, err := ParseIntTest(f)
			if err != nil {
				t.Fatal(err)
			}
			if len(tcs) == 0 {
				t.Fatal("no test cases")
			}
		})
	}
}

func TestScripts(t *testing.T) {
	files := []string{
		"add",
		"divide",
		"misc",
		"multiply",
		"prime",
		"sqrt",
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%10s%8s%8s%8s\n", "name", "total", "success", "fail")
	for _, fname := range files {
		succeed := t.Run(fname, func(t *testing.T) {
			success, fail, total := scriptTest(t, fname)
			if *flagSummary {
				fmt.Fprintf(&buf, "%10s%8d%8d%8d\n", fname, total, success, fail)
			}
		})
		if !succeed && *flagFailFast {
			break
		}
	}
	if *flagSummary {
		fmt.Print(buf.String())
	}
}

func scriptTest(t *testing.T, name string) (int, int, int) {
	path := filepath.Join(testDir, name+".intTest")
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	tcs, err := ParseIntTest(f)
	if err != nil {
		t.Fatal(err)
	}
	var lock sync.Mutex
	var success, fail, total int
	for _, tc := range tcs {
		tc := tc
		t.Run(tc.ID, func(t *testing.T) {
			defer func() {
				lock.Lock()
				total++
				if t.Failed() {
					fail++
				} else {
					success++
				}
				lock.Unlock()
			}()
			if !*flagNoParallel && !*flagFailFast {
				t.Parallel()
			}
			t.Logf("%s:/^%s", path, tc.ID)
			t.Logf("%s %s = %s", tc.Operation, strings.Join(tc.Operands, " "), tc.Result)

			var operands []*Int
			if tc.Operation != "tosci" {
				operands = make([]*Int, len(tc.Operands))
				for i, o := range tc.Operands {
					d, err := NewFromString(o)
					if err != nil {
						t.Fatalf("operand %d: %s: %+v", i, o, err)
					}
					operands[i] = d
				}
			}

			start := time.Now()
			defer func() {
				t.Logf("duration: %s", time.Since(start))
			}()
			s, err := runScriptOp(tc, operands)
			if err != nil && strings.HasPrefix(err.Error(), "unknown operation") {
				t.Fatal(err)
			}

			// Verify the operands didn't change, except for the in-place ones.
			switch tc.Operation {
			case "increment", "decrement", "tosci":
			default:
				for i, o := range tc.Operands {
					v, _ := NewFromString(o)
					if v.Cmp(operands[i]) != 0 {
						t.Fatalf("operand %d changed from %s to %s", i, o, operands[i])
					}
				}
			}

			var rcond Condition
			for _, cond := range tc.Conditions {
				switch cond {
				case "division_by_zero":
					rcond |= DivisionByZero
				case "invalid_digit":
					rcond |= InvalidDigit
				case "negative_sqrt":
					rcond |= NegativeSqrt
				default:
					t.Fatalf("unknown condition: %s", cond)
				}
			}
			if tc.Result == "#" {
				if err == nil {
					t.Fatalf("expected error %s, got result %s", rcond, s)
				}
				if c := ConditionOf(err); c != rcond {
					t.Fatalf("expected condition %s, got %s (%v)", rcond, c, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if s != tc.Result {
				t.Fatalf("expected: %s, got: %s", tc.Result, s)
			}
		})
	}
	return success, fail, total
}

// runScriptOp performs tc's operation and returns the result as text.
func runScriptOp(tc ScriptCase, ops []*Int) (string, error) {
	d := new(Int)
	var err error
	switch tc.Operation {
	case "abs":
		d.Abs(ops[0])
	case "abssqrt":
		d.Sqrt(ops[0], true)
	case "add":
		d.Add(ops[0], ops[1])
	case "checkedsqrt":
		_, err = d.CheckedSqrt(ops[0])
	case "compare":
		return strconv.Itoa(ops[0].Cmp(ops[1])), nil
	case "decrement":
		ops[0].Dec()
		d = ops[0]
	case "digit":
		i, perr := strconv.Atoi(ops[1].String())
		if perr != nil {
			return "", perr
		}
		return strconv.Itoa(ops[0].Digit(i)), nil
	case "divide":
		_, err = d.Quo(ops[0], ops[1])
	case "hex":
		return ops[0].Hex(), nil
	case "increment":
		ops[0].Inc()
		d = ops[0]
	case "isprime":
		if ops[0].IsPrime() {
			return "1", nil
		}
		return "0", nil
	case "minus":
		d.Neg(ops[0])
	case "multiply":
		d.Mul(ops[0], ops[1])
	case "remainder":
		_, err = d.Rem(ops[0], ops[1])
	case "shiftleft", "shiftright":
		n, ok := ops[1].Int64()
		if !ok || n < 0 {
			return "", fmt.Errorf("bad shift: %s", ops[1])
		}
		if tc.Operation == "shiftleft" {
			d.Lsh(ops[0], uint(n))
		} else {
			d.Rsh(ops[0], uint(n))
		}
	case "square":
		d.Square(ops[0])
	case "squareroot":
		d.Sqrt(ops[0], false)
	case "subtract":
		d.Sub(ops[0], ops[1])
	case "tosci":
		_, err = d.SetString(tc.Operands[0])
	default:
		return "", fmt.Errorf("unknown operation: %s", tc.Operation)
	}
	if err != nil {
		return "", err
	}
	return d.String(), nil
}
