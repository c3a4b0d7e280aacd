package chat

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCost_PerModelRates(t *testing.T) {
	cases := []struct {
		model string
		in    int
		out   int
		want  float64
	}{
		{"Sonnet", 1_000_000, 0, 3.00},
		{"Sonnet", 0, 1_000_000, 15.00},
		{"Opus", 1_000_000, 1_000_000, 90.00},
		{"Haiku", 500_000, 250_000, 0.40 + 1.00},
	}
	for _, tc := range cases {
		got := Cost(tc.model, tc.in, tc.out)
		if !almostEqual(got, tc.want) {
			t.Errorf("Cost(%s, %d, %d) = %f, want %f", tc.model, tc.in, tc.out, got, tc.want)
		}
	}
}

func TestCost_UnknownModelUsesFallback(t *testing.T) {
	got := Cost("GPT-9", 1_000_000, 1_000_000)
	want := 3.00 + 15.00
	if !almostEqual(got, want) {
		t.Errorf("Cost for unknown model = %f, want Sonnet-rate fallback %f", got, want)
	}
}

func TestCost_SmallExchange(t *testing.T) {
	// A typical short exchange should land in fractions of a cent.
	got := Cost("Sonnet", 1200, 300)
	want := 1200*3.00/1_000_000 + 300*15.00/1_000_000
	if !almostEqual(got, want) {
		t.Errorf("Cost = %f, want %f", got, want)
	}
	if got <= 0 || got >= 0.01 {
		t.Errorf("Cost = %f, expected a sub-cent amount", got)
	}
}
