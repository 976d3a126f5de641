package planner

import (
	"math"
	"testing"
)

func TestQuantize_SnapsToQuarterHours(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.1, 0},
		{0.13, 0.25},
		{0.5, 0.5},
		{1.1, 1.0},
		{1.13, 1.25},
		{1.37, 1.25},
		{2.88, 3.0},
		{4.0, 4.0},
	}
	for _, tc := range cases {
		got := Quantize(tc.in)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Quantize(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestQuantize_Idempotent(t *testing.T) {
	for _, in := range []float64{0, 0.25, 0.3, 1.1, 2.88, 4.0, 7.77} {
		once := Quantize(in)
		twice := Quantize(once)
		if once != twice {
			t.Fatalf("Quantize not idempotent for %v: %v != %v", in, once, twice)
		}
	}
}
