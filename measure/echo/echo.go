package echo

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/gema/dsp/core"
)

// Errors returned by echo analysis functions.
var (
	ErrEmptyResponse     = errors.New("echo: response is empty")
	ErrInvalidSampleRate = errors.New("echo: sample rate must be positive")
	ErrInvalidDuration   = errors.New("echo: duration must be positive and within MaxRenderSamples")
	ErrInvalidSize       = errors.New("echo: FFT size must be a power of two >= 2")
)

const (
	defaultThresholdDB = -60.0
	defaultMinSpacing  = 2
)

// Echo is one repeat found in an impulse response.
type Echo struct {
	Index     int     // sample index of the repeat
	Time      float64 // Index in seconds
	Amplitude float64 // signed sample value at Index
	Level     float64 // |Amplitude| relative to the strongest repeat, in dB
}

// Analyzer finds echoes in impulse responses.
type Analyzer struct {
	SampleRate float64
	// ThresholdDB ignores peaks further below the strongest one.
	ThresholdDB float64
	// MinSpacing merges peaks closer than this many samples, keeping the
	// larger one.
	MinSpacing int
}

// NewAnalyzer creates an analyzer with a -60 dB threshold.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{
		SampleRate:  sampleRate,
		ThresholdDB: defaultThresholdDB,
		MinSpacing:  defaultMinSpacing,
	}
}

// FindEchoes returns the local magnitude maxima of response that lie within
// ThresholdDB of its absolute peak, in time order. A silent response yields
// no echoes.
func (a *Analyzer) FindEchoes(response []float64) ([]Echo, error) {
	if len(response) == 0 {
		return nil, ErrEmptyResponse
	}
	if a.SampleRate <= 0 || !core.IsFinite(a.SampleRate) {
		return nil, ErrInvalidSampleRate
	}

	peak := vecmath.MaxAbs(response)
	if peak == 0 {
		return nil, nil
	}
	threshold := peak * math.Pow(10, a.ThresholdDB/20)

	var echoes []Echo
	for i, v := range response {
		av := math.Abs(v)
		if av < threshold || !a.isLocalPeak(response, i) {
			continue
		}

		e := Echo{
			Index:     i,
			Time:      float64(i) / a.SampleRate,
			Amplitude: v,
			Level:     core.LinearToDB(av / peak),
		}

		if n := len(echoes); n > 0 && i-echoes[n-1].Index < a.MinSpacing {
			if av > math.Abs(echoes[n-1].Amplitude) {
				echoes[n-1] = e
			}
			continue
		}
		echoes = append(echoes, e)
	}

	return echoes, nil
}

// isLocalPeak reports whether |x[i]| exceeds its left neighbour and is not
// exceeded by its right neighbour.
func (a *Analyzer) isLocalPeak(x []float64, i int) bool {
	av := math.Abs(x[i])
	if i > 0 && math.Abs(x[i-1]) >= av {
		return false
	}
	if i+1 < len(x) && math.Abs(x[i+1]) > av {
		return false
	}
	return true
}

// Spacing returns the mean time between consecutive echoes, or 0 when
// there are fewer than two.
func Spacing(echoes []Echo) float64 {
	if len(echoes) < 2 {
		return 0
	}
	return (echoes[len(echoes)-1].Time - echoes[0].Time) / float64(len(echoes)-1)
}

// DecayPerRepeat returns the mean level change in dB between consecutive
// echoes, or 0 when there are fewer than two.
func DecayPerRepeat(echoes []Echo) float64 {
	if len(echoes) < 2 {
		return 0
	}
	return (echoes[len(echoes)-1].Level - echoes[0].Level) / float64(len(echoes)-1)
}
