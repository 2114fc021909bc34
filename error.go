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

// ErrInt performs operations on Ints and collects errors during operations. If
// an error is already set, the operation is skipped. Designed to be used for
// many operations in a row, with a single error check at the end.
type ErrInt struct {
	Err error
}

// Add performs z.Add(x, y).
func (e *ErrInt) Add(z, x, y *Int) {
	if e.Err != nil {
		return
	}
	z.Add(x, y)
}

// Cmp returns 0 if Err is set. Otherwise returns x.Cmp(y).
func (e *ErrInt) Cmp(x, y *Int) int {
	if e.Err != nil {
		return 0
	}
	return x.Cmp(y)
}

// Mul performs z.Mul(x, y).
func (e *ErrInt) Mul(z, x, y *Int) {
	if e.Err != nil {
		return
	}
	z.Mul(x, y)
}

// Quo performs z.Quo(x, y).
func (e *ErrInt) Quo(z, x, y *Int) {
	if e.Err != nil {
		return
	}
	_, e.Err = z.Quo(x, y)
}

// QuoRem performs z.QuoRem(x, y, r).
func (e *ErrInt) QuoRem(z, x, y, r *Int) {
	if e.Err != nil {
		return
	}
	_, _, e.Err = z.QuoRem(x, y, r)
}

// Rem performs z.Rem(x, y).
func (e *ErrInt) Rem(z, x, y *Int) {
	if e.Err != nil {
		return
	}
	_, e.Err = z.Rem(x, y)
}

// SetString performs z.SetString(s).
func (e *ErrInt) SetString(z *Int, s string) {
	if e.Err != nil {
		return
	}
	_, e.Err = z.SetString(s)
}

// Sqrt performs z.CheckedSqrt(x).
func (e *ErrInt) Sqrt(z, x *Int) {
	if e.Err != nil {
		return
	}
	_, e.Err = z.CheckedSqrt(x)
}

// Sub performs z.Sub(x, y).
func (e *ErrInt) Sub(z, x, y *Int) {
	if e.Err != nil {
		return
	}
	z.Sub(x, y)
}
