package stereodelay

import (
	"github.com/cwbudde/gema/dsp/core"
	"github.com/cwbudde/gema/dsp/tempo"
)

// Param indexes the engine's host-visible parameters.
type Param int

const (
	ParamTimeL Param = iota
	ParamTimeR
	ParamSync
	ParamFeedback
	ParamWet
	ParamHighPass
	ParamLowPass
	ParamPingPong
	ParamDivision

	// NumParams is the number of parameters.
	NumParams = 9
)

// Valid reports whether p names a parameter.
func (p Param) Valid() bool {
	return p >= 0 && p < NumParams
}

// Params is one consistent set of effect settings. Continuous values are
// normalized to [0, 1].
type Params struct {
	TimeL    float64
	TimeR    float64
	Sync     bool
	Feedback float64
	Wet      float64
	HighPass float64
	LowPass  float64
	PingPong bool
	Division tempo.Division
}

// DefaultParams returns the settings of a freshly loaded effect.
func DefaultParams() Params {
	return Params{
		TimeL:    0.3,
		TimeR:    0.3,
		Feedback: 0.4,
		Wet:      0.5,
		HighPass: 0.05,
		LowPass:  0.95,
		Division: tempo.Quarter,
	}
}

// Set assigns a normalized value to the parameter at index. Booleans are
// on above 0.5 and the division uses tempo.DivisionFromNormalized. Unknown
// indices are ignored.
func (p *Params) Set(index Param, value float64) {
	switch index {
	case ParamTimeL:
		p.TimeL = core.Clamp01(value)
	case ParamTimeR:
		p.TimeR = core.Clamp01(value)
	case ParamSync:
		p.Sync = value > 0.5
	case ParamFeedback:
		p.Feedback = core.Clamp01(value)
	case ParamWet:
		p.Wet = core.Clamp01(value)
	case ParamHighPass:
		p.HighPass = core.Clamp01(value)
	case ParamLowPass:
		p.LowPass = core.Clamp01(value)
	case ParamPingPong:
		p.PingPong = value > 0.5
	case ParamDivision:
		p.Division = tempo.DivisionFromNormalized(value)
	}
}

// Get returns the normalized value of the parameter at index, or 0 for an
// unknown index.
func (p *Params) Get(index Param) float64 {
	switch index {
	case ParamTimeL:
		return p.TimeL
	case ParamTimeR:
		return p.TimeR
	case ParamSync:
		return boolValue(p.Sync)
	case ParamFeedback:
		return p.Feedback
	case ParamWet:
		return p.Wet
	case ParamHighPass:
		return p.HighPass
	case ParamLowPass:
		return p.LowPass
	case ParamPingPong:
		return boolValue(p.PingPong)
	case ParamDivision:
		return p.Division.Normalized()
	default:
		return 0
	}
}

// Timing returns the inputs of the delay-time resolution.
func (p *Params) Timing() tempo.Settings {
	return tempo.Settings{
		TimeL:    p.TimeL,
		TimeR:    p.TimeR,
		Sync:     p.Sync,
		PingPong: p.PingPong,
		Division: p.Division,
	}
}

// sanitize clamps fields that were assigned directly rather than via Set.
func (p *Params) sanitize() {
	p.TimeL = core.Clamp01(p.TimeL)
	p.TimeR = core.Clamp01(p.TimeR)
	p.Feedback = core.Clamp01(p.Feedback)
	p.Wet = core.Clamp01(p.Wet)
	p.HighPass = core.Clamp01(p.HighPass)
	p.LowPass = core.Clamp01(p.LowPass)
	p.Division = tempo.ClampDivision(int(p.Division))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
