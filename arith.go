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
	"math"

	"github.com/cockroachdb/apint/nat"
	"github.com/pkg/errors"
)

// addSigned sets z to (-1)^xneg*|x| + (-1)^yneg*|y|. Equal signs add the
// magnitudes; different signs subtract the smaller magnitude from the larger
// and take the sign of the larger.
func (z *Int) addSigned(x []byte, xneg bool, y []byte, yneg bool) *Int {
	switch {
	case len(y) == 0:
		z.mag = nat.FromBytes(x)
		z.setNeg(xneg)
		return z
	case len(x) == 0:
		z.mag = nat.FromBytes(y)
		z.setNeg(yneg)
		return z
	case xneg == yneg:
		return z.setOwned(nat.Add(x, y), xneg)
	}
	if nat.Cmp(x, y) < 0 {
		x, y = y, x
		xneg = yneg
	}
	return z.setOwned(nat.Sub(x, y), xneg)
}

// Add sets z to the sum x+y and returns z.
func (z *Int) Add(x, y *Int) *Int {
	return z.addSigned(x.mag.View(), x.neg, y.mag.View(), y.neg)
}

// Sub sets z to the difference x-y and returns z.
func (z *Int) Sub(x, y *Int) *Int {
	return z.addSigned(x.mag.View(), x.neg, y.mag.View(), !y.neg)
}

// Mul sets z to the product x*y and returns z.
func (z *Int) Mul(x, y *Int) *Int {
	return z.setOwned(nat.Mul(x.mag.View(), y.mag.View()), x.neg != y.neg)
}

// Square sets z to x*x and returns z.
func (z *Int) Square(x *Int) *Int {
	v := x.mag.View()
	return z.setOwned(nat.Mul(v, v), false)
}

// Neg sets z to -x and returns z.
func (z *Int) Neg(x *Int) *Int {
	z.Set(x)
	z.setNeg(!x.neg)
	return z
}

// Abs sets z to |x| and returns z.
func (z *Int) Abs(x *Int) *Int {
	z.Set(x)
	z.neg = false
	return z
}

// Lsh sets z to x shifted left by n bits and returns z. Only the magnitude is
// shifted; the sign is kept. Lsh panics if the result length would overflow
// an int.
func (z *Int) Lsh(x *Int, n uint) *Int {
	v := x.mag.View()
	if len(v) == 0 {
		return z.setOwned(nil, false)
	}
	if n > uint(math.MaxInt-8*(len(v)+1)) {
		panic(fmt.Sprintf("apint: Lsh by %d bits overflows", n))
	}
	return z.setOwned(nat.Shift(int(n), v), x.neg)
}

// Rsh sets z to x shifted right by n bits and returns z. Only the magnitude is
// shifted, so for negative x the result is truncated toward zero: -5 >> 1 is
// -2. A result of zero is positive.
func (z *Int) Rsh(x *Int, n uint) *Int {
	v := x.mag.View()
	switch {
	case n == 0:
		return z.Set(x)
	case n >= uint(8*len(v)):
		return z.setOwned(nil, false)
	}
	return z.setOwned(nat.Shift(-int(n), v), x.neg)
}

// quoRem divides the magnitudes of x and y.
func quoRem(x, y *Int) (q, r []byte, err error) {
	return nat.DivMod(x.mag.View(), y.mag.View())
}

// Quo sets z to the quotient x/y, truncated toward zero, and returns z. If y
// is zero z is unchanged and ErrDivisionByZero is returned.
func (z *Int) Quo(x, y *Int) (*Int, error) {
	q, _, err := quoRem(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "Quo")
	}
	return z.setOwned(q, x.neg != y.neg), nil
}

// Rem sets z to the remainder x%y and returns z. The remainder has the sign of
// x, so that x == (x/y)*y + x%y. If y is zero z is unchanged and
// ErrDivisionByZero is returned.
func (z *Int) Rem(x, y *Int) (*Int, error) {
	_, r, err := quoRem(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "Rem")
	}
	return z.setOwned(r, x.neg), nil
}

// QuoRem sets z to the quotient x/y and r to the remainder x%y and returns
// (z, r), with the semantics of Quo and Rem. z and r must be distinct.
func (z *Int) QuoRem(x, y, r *Int) (*Int, *Int, error) {
	q, rem, err := quoRem(x, y)
	if err != nil {
		return nil, nil, errors.Wrap(err, "QuoRem")
	}
	qneg, rneg := x.neg != y.neg, x.neg
	z.setOwned(q, qneg)
	r.setOwned(rem, rneg)
	return z, r, nil
}

// Inc adds 1 to z in place and returns z. The magnitude buffer grows in place
// when it has spare capacity.
func (z *Int) Inc() *Int {
	switch {
	case z.neg:
		z.mag.Dec()
		z.setNeg(true)
	default:
		z.mag.Inc()
	}
	return z
}

// Dec subtracts 1 from z in place and returns z.
func (z *Int) Dec() *Int {
	switch {
	case z.neg:
		z.mag.Inc()
	case z.mag.IsZero():
		z.mag.Inc()
		z.neg = true
	default:
		z.mag.Dec()
	}
	return z
}

// Cmp compares x and y and returns:
//
//   -1 if x <  y
//    0 if x == y
//   +1 if x >  y
//
func (x *Int) Cmp(y *Int) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	}
	c := nat.Cmp(x.mag.View(), y.mag.View())
	if x.neg {
		return -c
	}
	return c
}

// Equal returns whether x == y.
func (x *Int) Equal(y *Int) bool {
	return x.Cmp(y) == 0
}

// LessThan returns whether x < y.
func (x *Int) LessThan(y *Int) bool {
	return x.Cmp(y) < 0
}

// LessOrEqualTo returns whether x <= y.
func (x *Int) LessOrEqualTo(y *Int) bool {
	return x.Cmp(y) <= 0
}

// GreaterThan returns whether x > y.
func (x *Int) GreaterThan(y *Int) bool {
	return x.Cmp(y) > 0
}

// GreaterOrEqualTo returns whether x >= y.
func (x *Int) GreaterOrEqualTo(y *Int) bool {
	return x.Cmp(y) >= 0
}
