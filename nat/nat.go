// Package nat implements unsigned, base-256, multi-precision magnitudes and
// the raw arithmetic on them.
//
// Raw functions take byte slices in little-endian order: [0] is the least
// significant byte. The length of a slice is the operand length; callers pass
// only the significant part of a buffer. Results are freshly allocated unless a
// function documents that it works in place.
package nat

import "math/bits"

// Nat is an unsigned magnitude backed by an owned byte buffer. len(buf) is the
// allocated capacity; n is the significant length, i.e. the length without the
// most significant zero bytes. n == 0 is the only representation of zero.
// The zero value is ready to use and represents 0.
type Nat struct {
	buf []byte
	n   int
}

// one is the read-only addend used by Inc and Dec.
var one = []byte{1}

// WithCapacity returns a zero Nat with c bytes of zeroed capacity.
func WithCapacity(c int) Nat {
	if c <= 0 {
		return Nat{}
	}
	return Nat{buf: make([]byte, c)}
}

// FromBytes returns a Nat holding a copy of b. b is never retained.
func FromBytes(b []byte) Nat {
	n := Trim(b)
	if n == 0 {
		return Nat{}
	}
	buf := make([]byte, n)
	copy(buf, b)
	return Nat{buf: buf, n: n}
}

// Own transfers ownership of *b to the returned Nat without copying and sets
// *b to nil, so the caller is left without a reference to the buffer.
func Own(b *[]byte) Nat {
	buf := *b
	*b = nil
	return Nat{buf: buf, n: Trim(buf)}
}

// FromUint64 returns a Nat with value x.
func FromUint64(x uint64) Nat {
	if x == 0 {
		return Nat{}
	}
	buf := make([]byte, (bits.Len64(x)+7)/8)
	for i := range buf {
		buf[i] = byte(x)
		x >>= 8
	}
	return Nat{buf: buf, n: len(buf)}
}

// Trim returns the significant length of b: its length without the most
// significant zero bytes.
func Trim(b []byte) int {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 0 {
			return i + 1
		}
	}
	return 0
}

// Len returns the significant length of x in bytes.
func (x Nat) Len() int { return x.n }

// Cap returns the allocated length of x in bytes.
func (x Nat) Cap() int { return len(x.buf) }

// IsZero returns whether x is 0.
func (x Nat) IsZero() bool { return x.n == 0 }

// View returns the significant bytes of x. The slice aliases x's buffer; it
// must not be modified or retained past the next operation on x.
func (x Nat) View() []byte { return x.buf[:x.n:x.n] }

// Bytes returns a copy of the significant bytes of x.
func (x Nat) Bytes() []byte {
	b := make([]byte, x.n)
	copy(b, x.buf)
	return b
}

// Clone returns a copy of x whose capacity equals its significant length.
func (x Nat) Clone() Nat {
	return FromBytes(x.View())
}

// Uint64 returns x as a uint64. The second return value is false if x does not
// fit.
func (x Nat) Uint64() (uint64, bool) {
	if x.n > 8 {
		return 0, false
	}
	var v uint64
	for i := x.n - 1; i >= 0; i-- {
		v = v<<8 | uint64(x.buf[i])
	}
	return v, true
}

// Normalize recomputes the significant length of x by scanning down from the
// most significant byte and zeroes every byte past it.
func (x *Nat) Normalize() {
	x.n = Trim(x.buf)
	clear(x.buf[x.n:])
}

// Inc adds 1 to x in place. The buffer grows in place when there is spare
// capacity and is reallocated one byte larger otherwise.
func (x *Nat) Inc() {
	if x.n == 0 {
		if len(x.buf) == 0 {
			x.buf = make([]byte, 1)
		}
		x.buf[0] = 1
		x.n = 1
		return
	}
	if addTo(x.buf[:x.n], x.buf[:x.n], one) == 0 {
		return
	}
	// The carry ran off the top: FF..FF + 1 = 1 00..00.
	if len(x.buf) == x.n {
		buf := make([]byte, x.n+1)
		copy(buf, x.buf)
		x.buf = buf
	}
	x.buf[x.n] = 1
	x.n++
}

// Dec subtracts 1 from x in place. x must not be zero.
func (x *Nat) Dec() {
	if x.n == 0 {
		panic("nat: decrement of zero")
	}
	subTo(x.buf[:x.n], x.buf[:x.n], one)
	// A borrow can clear at most the leading byte: 01 00..00 - 1 = FF..FF.
	if x.buf[x.n-1] == 0 {
		x.n--
	}
}
