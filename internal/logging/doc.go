// Package logging provides the structured logger used by apcalc. Components
// depend on the Logger interface; the implementation is backed by zerolog.
package logging
