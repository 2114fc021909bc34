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

var (
	// ErrDivisionByZero is returned by Quo, Rem and QuoRem for a zero divisor.
	ErrDivisionByZero = nat.ErrDivisionByZero
	// ErrInvalidDigit is returned when parsing a string that is not a decimal
	// literal.
	ErrInvalidDigit = nat.ErrInvalidDigit
	// ErrNegativeSqrt is returned by CheckedSqrt for a negative operand.
	ErrNegativeSqrt = errors.New("square root of negative number")
)

// Condition is a set of error kinds, one bit per sentinel error.
type Condition uint8

const (
	DivisionByZero Condition = 1 << iota
	InvalidDigit
	NegativeSqrt
)

func (c Condition) Any() bool            { return c != 0 }
func (c Condition) DivisionByZero() bool { return c&DivisionByZero != 0 }
func (c Condition) InvalidDigit() bool   { return c&InvalidDigit != 0 }
func (c Condition) NegativeSqrt() bool   { return c&NegativeSqrt != 0 }

// ConditionOf classifies err. Errors that wrap none of the sentinel errors
// yield an empty Condition.
func ConditionOf(err error) Condition {
	var c Condition
	switch errors.Cause(err) {
	case ErrDivisionByZero:
		c |= DivisionByZero
	case ErrInvalidDigit:
		c |= InvalidDigit
	case ErrNegativeSqrt:
		c |= NegativeSqrt
	}
	return c
}

// GoError returns the sentinel error for the first kind set in c, or nil.
func (c Condition) GoError() error {
	switch {
	case c.DivisionByZero():
		return ErrDivisionByZero
	case c.InvalidDigit():
		return ErrInvalidDigit
	case c.NegativeSqrt():
		return ErrNegativeSqrt
	}
	return nil
}

func (c Condition) String() string {
	switch {
	case !c.Any():
		return "none"
	case c.DivisionByZero():
		return "division_by_zero"
	case c.InvalidDigit():
		return "invalid_digit"
	case c.NegativeSqrt():
		return "negative_sqrt"
	}
	return "unknown"
}
