package nat

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	tests := []string{
		"0",
		"00",
		"7",
		"10",
		"255",
		"256",
		"000123",
		"18446744073709551616",
		"1234145435656745634324524536456745634",
		strings.Repeat("9", 101),
	}
	for _, tc := range tests {
		t.Run(tc, func(t *testing.T) {
			z, err := ParseDecimal(tc)
			if err != nil {
				t.Fatal(err)
			}
			if len(z) != (len(tc)+1)/2 {
				t.Fatalf("expected buffer of %d bytes, got %d", (len(tc)+1)/2, len(z))
			}
			want := mustBig(t, tc)
			if got := toBig(z); got.Cmp(want) != 0 {
				t.Fatalf("expected: %s, got: %s", want, got)
			}
		})
	}
}

func TestParseDecimalErrors(t *testing.T) {
	tests := []string{
		"",
		"12a",
		"-1",
		" 1",
		"1.0",
		"0x10",
	}
	for _, tc := range tests {
		t.Run(tc, func(t *testing.T) {
			_, err := ParseDecimal(tc)
			if !errors.Is(err, ErrInvalidDigit) {
				t.Fatalf("expected ErrInvalidDigit, got %v", err)
			}
		})
	}
}

func TestAppendDecimal(t *testing.T) {
	tests := []string{
		"0",
		"1",
		"9",
		"10",
		"99",
		"100",
		"255",
		"256",
		"65535",
		"4294967296",
		"18446744073709551615",
		"100000000000000000000000000000000000000",
		"1234145435656745634324524536456745634",
	}
	for _, tc := range tests {
		t.Run(tc, func(t *testing.T) {
			got := string(AppendDecimal(nil, fromBig(mustBig(t, tc))))
			if got != tc {
				t.Fatalf("expected: %s, got: %s", tc, got)
			}
		})
	}
}

func TestAppendDecimalPrefix(t *testing.T) {
	got := string(AppendDecimal([]byte("x="), []byte{0x39, 0x30, 0, 0}))
	if got != "x=12345" {
		t.Fatalf("got %s", got)
	}
}

func TestDigit(t *testing.T) {
	x := fromBig(mustBig(t, "9876543210"))
	for i := 0; i < 10; i++ {
		if d := Digit(x, i); d != i {
			t.Fatalf("index %d: expected %d, got %d", i, i, d)
		}
	}
	for _, i := range []int{-1, 10, 11, 100} {
		if d := Digit(x, i); d != -1 {
			t.Fatalf("index %d: expected -1, got %d", i, d)
		}
	}
	if d := Digit(nil, 0); d != 0 {
		t.Fatalf("zero: expected 0, got %d", d)
	}
	if d := Digit(nil, 1); d != -1 {
		t.Fatalf("zero: expected -1, got %d", d)
	}
}

func TestAppendHex(t *testing.T) {
	tests := []struct {
		x     []byte
		upper bool
		s     string
	}{
		{nil, true, "00"},
		{[]byte{0, 0}, false, "00"},
		{[]byte{0x0F}, true, "0F"},
		{[]byte{0x0F}, false, "0f"},
		{[]byte{0xCD, 0xAB}, true, "ABCD"},
		{[]byte{0x01, 0x00, 0x00}, true, "0001"},
		{[]byte{0x00, 0x01}, false, "0100"},
	}
	for _, tc := range tests {
		t.Run(tc.s, func(t *testing.T) {
			if got := string(AppendHex(nil, tc.x, tc.upper)); got != tc.s {
				t.Fatalf("expected: %s, got: %s", tc.s, got)
			}
		})
	}
}

func TestShiftedTens(t *testing.T) {
	ten := big.NewInt(10)
	tens := shiftedTens()
	for j, entry := range tens {
		if len(entry) != 2 {
			t.Errorf("10<<%d: expected 2 bytes, got %d", j, len(entry))
		}
		want := new(big.Int).Lsh(ten, uint(j))
		if got := toBig(entry); got.Cmp(want) != 0 {
			t.Errorf("10<<%d: expected %s, got %s", j, want, got)
		}
	}
	if shiftedTens() != tens {
		t.Fatal("table rebuilt")
	}
}

func TestDecimalLen(t *testing.T) {
	for n := 0; n < 200; n++ {
		// The largest n-byte magnitude has the most digits.
		max := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
		max.Sub(max, big.NewInt(1))
		digits := len(max.String())
		if got := DecimalLen(n); got < digits {
			t.Fatalf("%d bytes: bound %d is below %d digits", n, got, digits)
		}
	}
}

func ExampleAppendDecimal() {
	z, _ := ParseDecimal("1000000000000")
	fmt.Println(string(AppendDecimal(nil, z)))
	fmt.Println(string(AppendHex(nil, z, true)))
	// Output:
	// 1000000000000
	// E8D4A51000
}
