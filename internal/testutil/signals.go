package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// ClickTrain places a unit click every period samples, starting at 0.
func ClickTrain(length, period int) []float64 {
	out := make([]float64, length)
	if period <= 0 {
		return out
	}
	for i := 0; i < length; i += period {
		out[i] = 1
	}
	return out
}

// Delayed returns src shifted right by n samples, zero-padded at the start
// and truncated to len(src).
func Delayed(src []float64, n int) []float64 {
	out := make([]float64, len(src))
	for i := n; i < len(src); i++ {
		if i-n >= 0 {
			out[i] = src[i-n]
		}
	}
	return out
}
