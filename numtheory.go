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
	"github.com/cockroachdb/apint/nat"
	"github.com/pkg/errors"
)

// Sqrt sets z to floor(sqrt(|x|)) and returns z.
//
// A negative x does not fail: unless ignoreSign is set the result is 0. Use
// CheckedSqrt to get ErrNegativeSqrt instead.
func (z *Int) Sqrt(x *Int, ignoreSign bool) *Int {
	if x.neg && !ignoreSign {
		return z.SetInt64(0)
	}
	return z.setOwned(nat.Sqrt(x.mag.View()), false)
}

// CheckedSqrt sets z to floor(sqrt(x)) and returns z. If x is negative z is
// unchanged and ErrNegativeSqrt is returned.
func (z *Int) CheckedSqrt(x *Int) (*Int, error) {
	if x.neg {
		return nil, errors.Wrapf(ErrNegativeSqrt, "Sqrt(%s)", x)
	}
	return z.Sqrt(x, false), nil
}

// IsPrime reports whether x is prime. Values below 2, including every negative
// value, are not prime.
//
// IsPrime is deterministic trial division by every odd number up to sqrt(x).
// Its running time doubles with every two bits of x, so it is only practical
// for values of a few dozen bits; it is not suitable for cryptographic sizes.
func (x *Int) IsPrime() bool {
	v := x.mag.View()
	switch {
	case x.neg || len(v) == 0:
		return false
	case len(v) == 1 && v[0] < 4:
		return v[0] >= 2
	case v[0]&1 == 0:
		return false
	}
	return !nat.HasFactor(v, nat.Sqrt(v))
}
