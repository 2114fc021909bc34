package nat

import "github.com/pkg/errors"

const (
	hexLower = "0123456789abcdef"
	hexUpper = "0123456789ABCDEF"
)

// ParseDecimal parses s, which must contain only the characters 0-9, and
// returns its magnitude. The returned buffer holds (len(s)+1)/2 bytes, enough
// for any len(s)-digit number, and is not trimmed.
func ParseDecimal(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, errors.Wrap(ErrInvalidDigit, "no digits")
	}
	z := make([]byte, (len(s)+1)/2)
	for i := 0; i < len(s); i++ {
		d := s[i] - '0'
		if d > 9 {
			return nil, errors.Wrapf(ErrInvalidDigit, "offset %d: %q", i, s[i])
		}
		MulAddSmall(z, 10, d)
	}
	return z, nil
}

// divTen divides the first n bytes of rem by ten into q using the shifted-tens
// table. rem must have a zero byte at rem[n] and q must be zero. On return q
// holds the quotient, rem is all zeros, and the remainder digit and the
// quotient's significant length are returned.
func divTen(rem, q []byte, n int) (byte, int) {
	divInto(shiftedTens(), q[:n], rem)
	d := rem[0]
	rem[0] = 0
	return d, Trim(q[:n])
}

// AppendDecimal appends the decimal representation of a to dst.
func AppendDecimal(dst, a []byte) []byte {
	a = a[:Trim(a)]
	if len(a) == 0 {
		return append(dst, '0')
	}
	out := make([]byte, DecimalLen(len(a)))
	i := len(out)
	rem := Shift(0, a)
	q := make([]byte, len(rem))
	for n := len(a); n > 0; {
		var d byte
		d, n = divTen(rem, q, n)
		i--
		out[i] = '0' + d
		// rem is zero now; it becomes the next quotient buffer.
		rem, q = q, rem
	}
	return append(dst, out[i:]...)
}

// Digit returns the decimal digit of a at index (0 is the least significant
// digit), or -1 if index is negative or a has no such digit. Zero has the
// single digit 0. The cost is one division by ten per position up to index.
func Digit(a []byte, index int) int {
	a = a[:Trim(a)]
	switch {
	case index < 0:
		return -1
	case len(a) == 0:
		if index == 0 {
			return 0
		}
		return -1
	case index >= DecimalLen(len(a)):
		return -1
	}
	rem := Shift(0, a)
	q := make([]byte, len(rem))
	for n, i := len(a), 0; n > 0; i++ {
		var d byte
		d, n = divTen(rem, q, n)
		if i == index {
			return int(d)
		}
		rem, q = q, rem
	}
	return -1
}

// AppendHex appends a in hexadecimal to dst, two digits per byte, most
// significant byte first. Zero is written as "00".
func AppendHex(dst, a []byte, upper bool) []byte {
	digits := hexLower
	if upper {
		digits = hexUpper
	}
	a = a[:Trim(a)]
	if len(a) == 0 {
		return append(dst, '0', '0')
	}
	for i := len(a) - 1; i >= 0; i-- {
		dst = append(dst, digits[a[i]>>4], digits[a[i]&0x0F])
	}
	return dst
}
