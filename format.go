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
	"fmt"

	"github.com/cockroachdb/apint/nat"
)

// String returns the decimal representation of x, with a leading '-' when x is
// negative. A nil x returns "<nil>".
func (x *Int) String() string {
	if x == nil {
		return "<nil>"
	}
	return string(x.Append(nil))
}

// Append appends the decimal representation of x to buf and returns the
// extended buffer.
func (x *Int) Append(buf []byte) []byte {
	if x.neg {
		buf = append(buf, '-')
	}
	return nat.AppendDecimal(buf, x.mag.View())
}

// Hex returns the magnitude of x in upper-case hexadecimal, two digits per
// byte, with a leading '-' when x is negative. Zero is "00".
func (x *Int) Hex() string {
	return string(x.appendHex(nil, true))
}

func (x *Int) appendHex(buf []byte, upper bool) []byte {
	if x.neg {
		buf = append(buf, '-')
	}
	return nat.AppendHex(buf, x.mag.View(), upper)
}

// Digit returns the decimal digit of |x| at index i, where 0 is the least
// significant digit, or -1 if x has no digit at i. Each call divides x by ten
// i+1 times, so reading every digit this way is quadratic; use String for
// that.
func (x *Int) Digit(i int) int {
	return nat.Digit(x.mag.View(), i)
}

// GoString returns the sign, the hexadecimal magnitude and the capacity of x,
// for %#v.
func (x *Int) GoString() string {
	return fmt.Sprintf("{neg: %t, mag: %s, cap: %d}", x.neg, nat.AppendHex(nil, x.mag.View(), true), x.mag.Cap())
}

// Format implements fmt.Formatter. It accepts the verbs 'd', 's' and 'v' for
// decimal and 'x' and 'X' for hexadecimal. It honors the width and the '-'
// and '0' flags, and the '+' and ' ' flags, which put a sign or a space
// before non-negative values.
func (x *Int) Format(s fmt.State, verb rune) {
	if x == nil {
		fmt.Fprint(s, "<nil>")
		return
	}
	var buf []byte
	switch verb {
	case 'd', 's', 'v':
		if verb == 'v' && s.Flag('#') {
			fmt.Fprint(s, x.GoString())
			return
		}
		buf = x.Append(nil)
	case 'x', 'X':
		buf = x.appendHex(nil, verb == 'X')
	default:
		fmt.Fprintf(s, "%%!%c(*apint.Int=%s)", verb, x.String())
		return
	}
	if !x.neg {
		switch {
		case s.Flag('+'):
			buf = append([]byte{'+'}, buf...)
		case s.Flag(' '):
			buf = append([]byte{' '}, buf...)
		}
	}
	pad, ok := s.Width()
	if !ok || pad <= len(buf) {
		s.Write(buf)
		return
	}
	pad -= len(buf)
	switch {
	case s.Flag('-'):
		s.Write(buf)
		writeRepeat(s, ' ', pad)
	case s.Flag('0'):
		sign := 0
		if len(buf) > 0 && (buf[0] == '-' || buf[0] == '+' || buf[0] == ' ') {
			sign = 1
			s.Write(buf[:1])
		}
		writeRepeat(s, '0', pad)
		s.Write(buf[sign:])
	default:
		writeRepeat(s, ' ', pad)
		s.Write(buf)
	}
}

func writeRepeat(s fmt.State, c byte, n int) {
	for ; n > 0; n-- {
		s.Write([]byte{c})
	}
}
