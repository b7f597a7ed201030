package feedback

import "github.com/cwbudde/gema/dsp/core"

// MaxHighPassCoefficient is the largest high-pass coefficient applied.
// Larger requests are clamped to it.
const MaxHighPassCoefficient = 0.45

// State is the complete memory of a Chain.
type State struct {
	// X1 is the high-pass input memory.
	X1 float64
	// Y1 is the last high-pass output.
	Y1 float64
	// Z1 is the low-pass memory, equal to the last chain output.
	Z1 float64
}

// Chain is a high-pass stage cascaded into a low-pass stage.
// The zero value is ready to use with both coefficients at 0.
type Chain struct {
	hp    float64
	lp    float64
	state State
}

// New returns a chain with the given coefficients and zeroed memory.
func New(hp, lp float64) *Chain {
	c := &Chain{}
	c.SetCoefficients(hp, lp)
	return c
}

// SetCoefficients updates both coefficients without touching the memory.
// lp is clamped to [0, 1], hp to [0, MaxHighPassCoefficient].
func (c *Chain) SetCoefficients(hp, lp float64) {
	c.hp = HighPassCoefficient(hp)
	c.lp = core.Clamp01(lp)
}

// Coefficients returns the applied high-pass and low-pass coefficients.
func (c *Chain) Coefficients() (hp, lp float64) {
	return c.hp, c.lp
}

// ProcessSample filters one sample and returns the low-pass output. A
// non-finite result clears the memory and yields 0.
func (c *Chain) ProcessSample(x float64) float64 {
	s := &c.state

	y := x - s.X1
	s.X1 = core.FlushDenormals(x + c.hp*(y-s.X1))
	s.Y1 = y

	z := y + c.lp*(s.Z1-y)
	s.Z1 = core.FlushDenormals(z)

	if !core.IsFinite(s.Z1) || !core.IsFinite(s.X1) {
		c.Reset()
		return 0
	}
	return s.Z1
}

// ProcessInPlace filters buf in place.
func (c *Chain) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// State returns a copy of the filter memory.
func (c *Chain) State() State {
	return c.state
}

// Reset zeroes the filter memory.
func (c *Chain) Reset() {
	c.state = State{}
}

// HighPassCoefficient maps a requested high-pass coefficient to the one
// actually applied.
func HighPassCoefficient(hp float64) float64 {
	return core.Clamp(core.Clamp01(hp), 0, MaxHighPassCoefficient)
}
