package nat

// addTo sets z to a+b and returns the final carry. len(a) must be >= len(b)
// and len(z) >= len(a). If z is longer than a the carry is also stored in
// z[len(a)]. z may alias a.
func addTo(z, a, b []byte) byte {
	var c uint16
	i := 0
	for ; i < len(b); i++ {
		c += uint16(a[i]) + uint16(b[i])
		z[i] = byte(c)
		c >>= 8
	}
	for ; i < len(a); i++ {
		c += uint16(a[i])
		z[i] = byte(c)
		c >>= 8
	}
	if len(z) > len(a) {
		z[len(a)] = byte(c)
	}
	return byte(c)
}

// subTo sets z to a-b and returns the final borrow, which is non-zero only if
// a < b. len(a) must be >= len(b) and len(z) >= len(a). z may alias a.
func subTo(z, a, b []byte) byte {
	var borrow uint16
	i := 0
	for ; i < len(b); i++ {
		d := uint16(a[i]) - borrow - uint16(b[i])
		z[i] = byte(d)
		// d>>8 is 0xFF after an underflow and 0 otherwise.
		borrow = (0x100 - d>>8) & 0xFF
	}
	for ; i < len(a); i++ {
		d := uint16(a[i]) - borrow
		z[i] = byte(d)
		borrow = (0x100 - d>>8) & 0xFF
	}
	return byte(borrow)
}

// Add returns a+b. The result is one byte longer than the longer operand so the
// final carry always fits; it is not trimmed.
func Add(a, b []byte) []byte {
	if len(a) < len(b) {
		a, b = b, a
	}
	z := make([]byte, len(a)+1)
	addTo(z, a, b)
	return z
}

// Sub returns a-b. a must be >= b; callers compare first and swap operands
// (and the sign of the result) as needed. The result has the length of a and
// is not trimmed.
func Sub(a, b []byte) []byte {
	b = b[:Trim(b)]
	if len(b) > len(a) {
		panic("nat: subtrahend longer than minuend")
	}
	z := make([]byte, len(a))
	if subTo(z, a, b) != 0 {
		panic("nat: subtraction underflow")
	}
	return z
}

// Cmp compares a and b and returns:
//
//	-1 if a <  b
//	 0 if a == b
//	+1 if a >  b
//
// Most significant zero bytes are ignored.
func Cmp(a, b []byte) int {
	a, b = a[:Trim(a)], b[:Trim(b)]
	if len(a) != len(b) {
		if len(a) > len(b) {
			return 1
		}
		return -1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] > b[i] {
			return 1
		}
		if a[i] < b[i] {
			return -1
		}
	}
	return 0
}

// geq reports whether the first len(b) bytes of a, read as a number, are
// greater than b, or equal to it when equal is set. a must be at least as long
// as b.
func geq(a, b []byte, equal bool) bool {
	for i := len(b) - 1; i >= 0; i-- {
		if a[i] > b[i] {
			return true
		}
		if a[i] < b[i] {
			return false
		}
	}
	return equal
}

// Shift returns a shifted by offset bits: left (a*2^offset) when offset > 0,
// right (a/2^offset) when offset < 0. An offset of 0 returns a copy of a with
// one extra zero byte at the top, the headroom division needs.
func Shift(offset int, a []byte) []byte {
	switch {
	case offset > 0:
		offBytes, offBits := offset/8, uint(offset%8)
		z := make([]byte, len(a)+offBytes+1)
		for i, v := range a {
			z[i+offBytes] |= v << offBits
			// The bits that overflow the byte move into the next one.
			z[i+offBytes+1] = v >> (8 - offBits)
		}
		return z

	case offset < 0:
		offBytes, offBits := -offset/8, uint(-offset%8)
		if offBytes >= len(a) {
			return []byte{}
		}
		z := make([]byte, len(a)-offBytes)
		for i := offBytes; i < len(a)-1; i++ {
			z[i-offBytes] = a[i]>>offBits | a[i+1]<<(8-offBits)
		}
		z[len(z)-1] = a[len(a)-1] >> offBits
		return z

	default:
		z := make([]byte, len(a)+1)
		copy(z, a)
		return z
	}
}

// Mul returns a*b using schoolbook multiplication: each byte of a produces a
// partial product with b, offset by its index, which is added into the running
// total. The result has length len(a)+len(b)+1 and is not trimmed.
func Mul(a, b []byte) []byte {
	n := len(a) + len(b)
	z := make([]byte, n+1)
	if len(a) == 0 || len(b) == 0 {
		return z
	}
	p := make([]byte, n)
	for i, x := range a {
		var c uint16
		for j, y := range b {
			c += uint16(x) * uint16(y)
			p[i+j] = byte(c)
			c >>= 8
		}
		p[i+len(b)] = byte(c)
		addTo(z, z[:n], p)
		clear(p[i : i+len(b)+1])
	}
	return z
}

// MulAddSmall sets z to z*m + a in place and returns the carry out of the most
// significant byte.
func MulAddSmall(z []byte, m, a byte) byte {
	c := uint16(a)
	for i, v := range z {
		c += uint16(v) * uint16(m)
		z[i] = byte(c)
		c >>= 8
	}
	return byte(c)
}
