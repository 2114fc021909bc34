package nat

import "github.com/pkg/errors"

var (
	// ErrDivisionByZero is returned when dividing by a zero magnitude.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidDigit is returned when a decimal string contains a character
	// other than 0-9.
	ErrInvalidDigit = errors.New("invalid digit")
)
