package echo

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/gema/dsp/effects/stereodelay"
	"github.com/cwbudde/gema/dsp/filter/feedback"
)

// MaxRenderSamples is the longest response RenderImpulse produces.
const MaxRenderSamples = 1 << 24

// Channel selects where RenderImpulse injects its impulse.
type Channel int

const (
	Left Channel = iota
	Right
	Both
)

// FilterResponse returns the magnitude of the feedback filter chain's
// frequency response for coefficients hp and lp, at size/2+1 bins from DC
// to Nyquist. size must be a power of two.
func FilterResponse(hp, lp float64, size int) ([]float64, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, ErrInvalidSize
	}

	ir := make([]float64, size)
	ir[0] = 1
	feedback.New(hp, lp).ProcessInPlace(ir)

	in := make([]complex128, size)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, err
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// BinFrequency returns the frequency in Hz of bin k of a size-point FFT.
func BinFrequency(k, size int, sampleRate float64) float64 {
	if size <= 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(size)
}

// RenderImpulse feeds a unit impulse on ch through e followed by silence
// and returns seconds of both outputs. The engine keeps its state, so
// render into a fresh engine for a clean response.
func RenderImpulse(e *stereodelay.Engine, seconds float64, ch Channel) (left, right []float64, err error) {
	if !(seconds > 0) {
		return nil, nil, ErrInvalidDuration
	}

	frames := math.Round(seconds * e.SampleRate())
	if !(frames <= MaxRenderSamples) {
		return nil, nil, fmt.Errorf("%w: %g s exceeds %d samples", ErrInvalidDuration, seconds, MaxRenderSamples)
	}
	n := max(int(frames), 1)

	inL := make([]float64, n)
	inR := make([]float64, n)
	if ch == Left || ch == Both {
		inL[0] = 1
	}
	if ch == Right || ch == Both {
		inR[0] = 1
	}

	left = make([]float64, n)
	right = make([]float64, n)
	e.ProcessStereo(inL, inR, left, right)
	return left, right, nil
}
