package nat

import "math/bits"

// Sqrt returns floor(sqrt(a)), computed digit by digit in base 4: the binary
// analogue of extracting a square root by hand, two bits of a per root bit.
//
// With r the root found so far and p = 2k the position of the bit pair under
// consideration, c holds r<<(k+1), so c + 1<<p is (r + 1<<k)^2 - r^2: the
// amount the square grows if root bit k is set. When the running remainder can
// absorb that amount the bit is kept. The low p bits of c + 1<<p are zero, so
// the comparison and subtraction only touch the remainder from byte p/8 up.
//
// The result holds (len(a)+1)/2 bytes and is not trimmed.
func Sqrt(a []byte) []byte {
	a = a[:Trim(a)]
	if len(a) == 0 {
		return []byte{}
	}
	x := make([]byte, len(a))
	copy(x, a)
	c := make([]byte, len(a)+1)

	// The highest even bit position at or below the top set bit.
	top := bits.Len8(a[len(a)-1]) - 1
	for p := 8*(len(a)-1) + top&^1; p >= 0; p -= 2 {
		idx, bit := p/8, byte(1)<<uint(p%8)
		c[idx] |= bit
		w := x[idx:]
		t := c[idx : idx+Trim(c[idx:])]
		keep := Cmp(w, t) >= 0
		if keep {
			subTo(w, w, t)
		}
		c[idx] &^= bit
		shr1(c)
		if keep {
			c[idx] |= bit
		}
	}
	return c[:(len(a)+1)/2]
}

// shr1 shifts z right by one bit in place.
func shr1(z []byte) {
	for i := 0; i < len(z)-1; i++ {
		z[i] = z[i]>>1 | z[i+1]<<7
	}
	z[len(z)-1] >>= 1
}

// HasFactor reports whether a has an odd divisor d with 3 <= d <= limit. It is
// plain trial division: the candidate starts at 3 and grows by 2 each round, and
// a is divided by it with the same long division DivMod uses. The number of
// rounds is about limit/2, so the cost grows exponentially with the size of a.
func HasFactor(a, limit []byte) bool {
	a, limit = a[:Trim(a)], limit[:Trim(limit)]
	if len(a) == 0 {
		return false
	}
	cand := make([]byte, len(limit)+1)
	cand[0] = 3
	n := 1
	rem := make([]byte, len(a)+1)
	q := make([]byte, len(a))
	two := []byte{2}
	for Cmp(cand[:n], limit) <= 0 {
		copy(rem, a)
		rem[len(a)] = 0
		// The quotient loses a byte whenever the candidate gains one.
		qn := len(a) - n + 1
		clear(q[:qn])
		divInto(newShifted(cand[:n]), q[:qn], rem)
		if Trim(rem) == 0 {
			return true
		}
		if addTo(cand[:n+1], cand[:n], two) != 0 {
			n++
		}
	}
	return false
}
