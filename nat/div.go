package nat

// shifted holds a divisor left-shifted by 0 through 7 bits. Every entry has
// the same length, one byte longer than the divisor, so an entry can be
// compared against an aligned window of the remainder without consulting the
// remainder's bytes above the window.
type shifted [8][]byte

func newShifted(v []byte) *shifted {
	var s shifted
	for j := range s {
		s[j] = Shift(j, v)
	}
	return &s
}

// divInto runs binary long division of rem by the divisor cached in d. q must
// be zeroed and sized len(dividend)-len(divisor)+1; rem holds the dividend
// followed by at least one zero byte of headroom and is left holding the
// remainder. Quotient bytes are produced most significant first, and within a
// byte one bit at a time from bit 7 down.
func divInto(d *shifted, q, rem []byte) {
	for i := len(q) - 1; i >= 0; i-- {
		for j := 7; j >= 0; j-- {
			v := d[j]
			w := rem[i : i+len(v)]
			if geq(w, v, true) {
				q[i] |= 1 << uint(j)
				subTo(w, w, v)
			}
		}
	}
}

// DivMod returns the quotient u/v and the remainder u%v, both trimmed. It
// returns ErrDivisionByZero if v is zero. When v > u the quotient is empty and
// the remainder is a copy of u.
func DivMod(u, v []byte) (q, r []byte, err error) {
	u, v = u[:Trim(u)], v[:Trim(v)]
	if len(v) == 0 {
		return nil, nil, ErrDivisionByZero
	}
	if Cmp(v, u) > 0 {
		r = make([]byte, len(u))
		copy(r, u)
		return nil, r, nil
	}
	rem := Shift(0, u)
	q = make([]byte, len(u)-len(v)+1)
	divInto(newShifted(v), q, rem)
	return q[:Trim(q)], rem[:Trim(rem)], nil
}
