package nat

import "sync"

// log10(256) scaled by 10^4, rounded up. A magnitude of n bytes has at most
// n*log10(256) decimal digits.
const digitsPerByte10k = 24083

var (
	tensOnce sync.Once
	tens     *shifted
)

// shiftedTens returns 10<<0 through 10<<7, each two bytes long. The table is
// built on first use and never written afterwards.
func shiftedTens() *shifted {
	tensOnce.Do(func() {
		tens = newShifted([]byte{10})
	})
	return tens
}

// DecimalLen returns an upper bound on the number of decimal digits of an
// n-byte magnitude.
func DecimalLen(n int) int {
	if n == 0 {
		return 1
	}
	return (n+1)*digitsPerByte10k/10000 + 1
}
