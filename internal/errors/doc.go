// Package apperrors defines the exit codes of the apcalc command and the error
// types that map onto them.
package apperrors
