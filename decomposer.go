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

import "github.com/pkg/errors"

// Forms reported by Decompose and accepted by Compose. Only finite values are
// integers.
const (
	formFinite   = 0
	formInfinite = 1
	formNaN      = 2
)

// maxComposeExponent bounds the exponent accepted by Compose.
const maxComposeExponent = 1 << 16

// Decompose returns x as a finite decimal with a big-endian coefficient and a
// zero exponent. If buf has enough capacity it is used for the coefficient.
func (x *Int) Decompose(buf []byte) (form byte, negative bool, coefficient []byte, exponent int32) {
	v := x.mag.View()
	n := len(v)
	if cap(buf) >= n {
		coefficient = buf[:n]
	} else {
		coefficient = make([]byte, n)
	}
	for i, b := range v {
		coefficient[n-1-i] = b
	}
	return formFinite, x.neg, coefficient, 0
}

// Compose sets z to negative * coefficient * 10^exponent, where coefficient
// is big-endian. It fails if the value is infinite, NaN or has a fractional
// part; z is unchanged on error.
func (z *Int) Compose(form byte, negative bool, coefficient []byte, exponent int32) error {
	switch form {
	case formFinite:
	case formInfinite:
		return errors.New("Compose: infinity is not an integer")
	case formNaN:
		return errors.New("Compose: NaN is not an integer")
	default:
		return errors.Errorf("Compose: unknown form %d", form)
	}
	if exponent > maxComposeExponent || exponent < -maxComposeExponent {
		return errors.Errorf("Compose: exponent %d out of range", exponent)
	}
	le := make([]byte, len(coefficient))
	for i, b := range coefficient {
		le[len(coefficient)-1-i] = b
	}
	v := new(Int).setOwned(le, negative)
	switch {
	case exponent > 0:
		v.Mul(v, pow10(uint(exponent)))
	case exponent < 0:
		q, r := new(Int), new(Int)
		if _, _, err := q.QuoRem(v, pow10(uint(-exponent)), r); err != nil {
			return errors.Wrap(err, "Compose")
		}
		if !r.IsZero() {
			return errors.Errorf("Compose: %sE%d has a fractional part", v, exponent)
		}
		v = q
	}
	z.Set(v)
	return nil
}

// pow10 returns 10^n by repeated squaring.
func pow10(n uint) *Int {
	z, b := NewInt(1), NewInt(10)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			z.Mul(z, b)
		}
		if n > 1 {
			b.Square(b)
		}
	}
	return z
}
