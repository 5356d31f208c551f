package utils

import "testing"

func TestLimitParam(t *testing.T) {
	cases := []struct {
		raw  string
		def  int
		max  int
		want int
	}{
		// empty -> default
		{"", 5, 50, 5},
		// valid ints, trimmed
		{"10", 5, 50, 10},
		{" 12 ", 5, 50, 12},
		// invalid -> default
		{"x", 5, 50, 5},
		{"999999999999999999999999", 7, 50, 7},
		// clamped
		{"500", 5, 50, 50},
		{"0", 5, 50, 1},
		{"-3", 5, 50, 1},
		// open upper bound
		{"500", 5, 0, 500},
		// default itself is clamped
		{"", 80, 50, 50},
	}

	for _, tc := range cases {
		if got := LimitParam(tc.raw, tc.def, tc.max); got != tc.want {
			t.Fatalf("LimitParam(%q, %d, %d) = %d; want %d", tc.raw, tc.def, tc.max, got, tc.want)
		}
	}
}
