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

// Package apint implements arbitrary-precision signed integers stored as a
// sign flag and a base-256 magnitude.
//
// Operations follow the setter style of math/big: z.Add(x, y) sets z to x+y
// and returns z, and the result may alias either operand. Division and the
// checked square root also return an error; see Quo, Rem, QuoRem and
// CheckedSqrt.
//
// Zero is never negative. Every constructor and operation collapses a zero
// magnitude to the positive sign, so -0 cannot be observed.
package apint

import (
	"github.com/cockroachdb/apint/nat"
	"github.com/pkg/errors"
)

// Int is an arbitrary-precision signed integer. The zero value is ready to use
// and represents 0.
//
// An Int owns its magnitude buffer exclusively. Ints must not be copied by
// value; use Set to copy one.
type Int struct {
	mag nat.Nat
	neg bool
}

// NewInt returns an Int set to x.
func NewInt(x int64) *Int {
	return new(Int).SetInt64(x)
}

// NewFromBytes returns an Int with magnitude b (little-endian, b[0] least
// significant) and the given sign. b is copied, so it may come from an
// untrusted source and may be reused by the caller.
func NewFromBytes(b []byte, neg bool) *Int {
	z := &Int{mag: nat.FromBytes(b)}
	z.setNeg(neg)
	return z
}

// NewFromOwnedBytes returns an Int that takes ownership of *b as its magnitude
// buffer without copying it. *b is set to nil.
func NewFromOwnedBytes(b *[]byte, neg bool) *Int {
	z := &Int{mag: nat.Own(b)}
	z.setNeg(neg)
	return z
}

// NewWithCapacity returns a zero Int with c bytes of reserved magnitude
// capacity.
func NewWithCapacity(c int) *Int {
	return &Int{mag: nat.WithCapacity(c)}
}

// NewFromString returns an Int parsed from s, with the syntax of SetString.
func NewFromString(s string) (*Int, error) {
	return new(Int).SetString(s)
}

// NewFromStringLen parses the first n bytes of s.
func NewFromStringLen(s string, n int) (*Int, error) {
	if n < 0 || n > len(s) {
		return nil, errors.Wrapf(ErrInvalidDigit, "length %d out of range for %q", n, s)
	}
	return new(Int).SetString(s[:n])
}

// setOwned sets z's magnitude to b, which must be a buffer nothing else
// references.
func (z *Int) setOwned(b []byte, neg bool) *Int {
	z.mag = nat.Own(&b)
	z.setNeg(neg)
	return z
}

func (z *Int) setNeg(neg bool) {
	z.neg = neg && !z.mag.IsZero()
}

// SetString sets z to the value of s, a decimal literal with an optional
// leading '-' or '+', and returns z. If s is not a valid literal z is left
// unchanged and the returned error wraps ErrInvalidDigit.
func (z *Int) SetString(s string) (*Int, error) {
	digits, neg := s, false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		digits, neg = s[1:], s[0] == '-'
	}
	b, err := nat.ParseDecimal(digits)
	if err != nil {
		return nil, errors.Wrap(err, "SetString")
	}
	return z.setOwned(b, neg), nil
}

// SetInt64 sets z to x and returns z.
func (z *Int) SetInt64(x int64) *Int {
	u := uint64(x)
	if x < 0 {
		u = -u
	}
	z.mag = nat.FromUint64(u)
	z.setNeg(x < 0)
	return z
}

// Set sets z to x and returns z. The magnitude is copied.
func (z *Int) Set(x *Int) *Int {
	if z != x {
		z.mag = x.mag.Clone()
		z.neg = x.neg
	}
	return z
}

// Int64 returns x as an int64. The second return value is false if x does not
// fit, in which case the first is 0.
func (x *Int) Int64() (int64, bool) {
	u, ok := x.mag.Uint64()
	if !ok {
		return 0, false
	}
	switch {
	case !x.neg && u <= 1<<63-1:
		return int64(u), true
	case x.neg && u <= 1<<63:
		return int64(-u), true
	}
	return 0, false
}

// Bytes returns a copy of the magnitude of x, little-endian, without most
// significant zero bytes. Zero returns an empty slice.
func (x *Int) Bytes() []byte {
	return x.mag.Bytes()
}

// ByteLen returns the allocated length of x's magnitude buffer, which is at
// least the number of significant bytes.
func (x *Int) ByteLen() int {
	return x.mag.Cap()
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x *Int) Sign() int {
	switch {
	case x.mag.IsZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// IsZero returns whether x is 0.
func (x *Int) IsZero() bool {
	return x.mag.IsZero()
}

// IsNegative returns whether x < 0.
func (x *Int) IsNegative() bool {
	return x.neg
}
