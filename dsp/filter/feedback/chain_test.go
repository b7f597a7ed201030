package feedback

import (
	"math"
	"testing"

	"github.com/cwbudde/gema/internal/testutil"
)

// reference runs the recurrence directly, without clamping or flushing.
func reference(input []float64, hp, lp float64) []float64 {
	var x1, z1 float64
	out := make([]float64, len(input))
	for i, x := range input {
		y := x - x1
		x1 = x + hp*(y-x1)
		z1 = y + lp*(z1-y)
		out[i] = z1
	}
	return out
}

func TestChainMatchesRecurrence(t *testing.T) {
	input := testutil.DeterministicNoise(3, 1, 4096)

	for _, hp := range []float64{0, 0.05, 0.2, 0.45} {
		for _, lp := range []float64{0, 0.3, 0.95, 1} {
			c := New(hp, lp)
			got := make([]float64, len(input))
			copy(got, input)
			c.ProcessInPlace(got)

			testutil.RequireSliceEqual(t, got, reference(input, hp, lp))
		}
	}
}

func TestChainStateCarriesAcrossCalls(t *testing.T) {
	input := testutil.DeterministicNoise(11, 0.8, 1000)

	whole := New(0.1, 0.7)
	want := make([]float64, len(input))
	copy(want, input)
	whole.ProcessInPlace(want)

	split := New(0.1, 0.7)
	got := make([]float64, len(input))
	copy(got, input)
	for start := 0; start < len(got); start += 37 {
		end := min(start+37, len(got))
		split.ProcessInPlace(got[start:end])
	}

	testutil.RequireSliceEqual(t, got, want)
	if whole.State() != split.State() {
		t.Fatalf("state mismatch: %+v vs %+v", whole.State(), split.State())
	}
}

func TestChainFirstSample(t *testing.T) {
	c := New(0.2, 0.5)
	// x1 = 0, z1 = 0: y = 1, x1 = 1 + 0.2*(1-0) = 1.2, z = 1 + 0.5*(0-1) = 0.5
	if got := c.ProcessSample(1); got != 0.5 {
		t.Fatalf("first output = %v, want 0.5", got)
	}
	s := c.State()
	if s.X1 != 1.2 || s.Y1 != 1 || s.Z1 != 0.5 {
		t.Fatalf("state = %+v, want {X1:1.2 Y1:1 Z1:0.5}", s)
	}
}

func TestChainLeakyDCResponse(t *testing.T) {
	// For constant input the differencer settles at hp/(1+2hp) instead of 0.
	const hp = 0.05
	c := New(hp, 0.5)

	var out float64
	for i := 0; i < 2000; i++ {
		out = c.ProcessSample(1)
	}

	want := hp / (1 + 2*hp)
	if math.Abs(out-want) > 1e-9 {
		t.Fatalf("DC output = %v, want %v", out, want)
	}
}

func TestChainStaysBounded(t *testing.T) {
	input := testutil.DeterministicNoise(5, 1, 200000)
	// Alternating full-scale input excites the high-pass pole hardest.
	alternating := make([]float64, 200000)
	for i := range alternating {
		alternating[i] = 1 - 2*float64(i%2)
	}

	coeffs := []float64{0, 0.1, 0.25, 0.45, 0.5, 0.75, 1}
	for _, signal := range [][]float64{input, alternating} {
		for _, hp := range coeffs {
			for _, lp := range coeffs {
				c := New(hp, lp)
				for _, x := range signal {
					c.ProcessSample(x)
					s := c.State()
					if math.Abs(s.X1) > 100 || math.Abs(s.Y1) > 100 || math.Abs(s.Z1) > 100 {
						t.Fatalf("hp=%v lp=%v: state diverged: %+v", hp, lp, s)
					}
				}
			}
		}
	}
}

func TestSetCoefficientsClamps(t *testing.T) {
	tests := []struct {
		name           string
		hp, lp         float64
		wantHP, wantLP float64
	}{
		{name: "in range", hp: 0.3, lp: 0.6, wantHP: 0.3, wantLP: 0.6},
		{name: "hp above stable limit", hp: 0.9, lp: 0.6, wantHP: MaxHighPassCoefficient, wantLP: 0.6},
		{name: "negative", hp: -1, lp: -1, wantHP: 0, wantLP: 0},
		{name: "above one", hp: 2, lp: 2, wantHP: MaxHighPassCoefficient, wantLP: 1},
		{name: "nan", hp: math.NaN(), lp: math.NaN(), wantHP: 0, wantLP: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Chain
			c.SetCoefficients(tt.hp, tt.lp)
			hp, lp := c.Coefficients()
			if hp != tt.wantHP || lp != tt.wantLP {
				t.Fatalf("Coefficients() = (%v, %v), want (%v, %v)", hp, lp, tt.wantHP, tt.wantLP)
			}
		})
	}
}

func TestSetCoefficientsKeepsState(t *testing.T) {
	c := New(0.1, 0.2)
	c.ProcessSample(0.7)
	before := c.State()

	c.SetCoefficients(0.3, 0.9)
	if c.State() != before {
		t.Fatalf("state changed: %+v vs %+v", c.State(), before)
	}
}

func TestReset(t *testing.T) {
	c := New(0.1, 0.5)
	c.ProcessSample(1)
	c.ProcessSample(-0.5)

	c.Reset()
	if c.State() != (State{}) {
		t.Fatalf("state after Reset = %+v", c.State())
	}

	fresh := New(0.1, 0.5)
	if got, want := c.ProcessSample(0.25), fresh.ProcessSample(0.25); got != want {
		t.Fatalf("output after Reset = %v, want %v", got, want)
	}
}

func TestNonFiniteInputClearsMemory(t *testing.T) {
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		c := New(0.05, 0)
		c.ProcessSample(0.5)

		if got := c.ProcessSample(x); got != 0 {
			t.Fatalf("ProcessSample(%v) = %v, want 0", x, got)
		}
		if c.State() != (State{}) {
			t.Fatalf("state after %v = %+v, want zero", x, c.State())
		}

		fresh := New(0.05, 0)
		if got, want := c.ProcessSample(1), fresh.ProcessSample(1); got != want {
			t.Fatalf("after %v: output %v, want %v", x, got, want)
		}
	}
}

func TestOverflowClearsMemory(t *testing.T) {
	c := New(0.05, 0)
	if got := c.ProcessSample(math.MaxFloat64); got != 0 {
		t.Fatalf("ProcessSample(MaxFloat64) = %v, want 0", got)
	}
	if c.State() != (State{}) {
		t.Fatalf("state after overflow = %+v, want zero", c.State())
	}
}

func TestDenormalsFlushed(t *testing.T) {
	c := New(0, 0.999)
	c.ProcessSample(1e-20)
	for i := 0; i < 200000; i++ {
		c.ProcessSample(0)
	}
	s := c.State()
	if s.X1 != 0 || s.Z1 != 0 {
		t.Fatalf("state not flushed to zero: %+v", s)
	}
}

func BenchmarkChainProcessInPlace(b *testing.B) {
	buf := testutil.DeterministicNoise(1, 1, 1024)
	c := New(0.05, 0.95)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		c.ProcessInPlace(buf)
	}
}
