package stereodelay

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/gema/dsp/core"
	"github.com/cwbudde/gema/dsp/delay"
	"github.com/cwbudde/gema/dsp/filter/feedback"
	"github.com/cwbudde/gema/dsp/tempo"
)

// CapacitySeconds is the length of each delay line. It is fixed for the
// lifetime of an Engine; a new sample rate needs a new Engine.
const CapacitySeconds = 10.0

// MaxLineLevel bounds every sample written into the delay lines (+60 dBFS).
// Filter settings whose loop gain exceeds 1 saturate at this level instead
// of overflowing.
const MaxLineLevel = 1e3

const (
	left = iota
	right
	numChannels
)

// Engine is a stereo feedback delay with filtered feedback, optional
// ping-pong routing and tempo sync.
//
// ProcessStereo must be called from a single goroutine. Parameters may be
// changed concurrently from any number of other goroutines through
// SetParameter, Update or Params.
type Engine struct {
	sampleRate float64
	blockSize  int
	params     *Store
	source     tempo.Source

	lines   [numChannels]*delay.Line
	filters [numChannels]feedback.Chain
	wet     [numChannels][]float64

	// Audio-side state, owned by the goroutine calling ProcessStereo.
	applied   *Params
	transport tempo.Transport
	times     tempo.Times
	offsets   [numChannels]int
}

// New creates an engine. source may be nil, in which case tempo sync
// always falls back to the manual times.
func New(source tempo.Source, opts ...core.ProcessorOption) (*Engine, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if cfg.SampleRate <= 0 || !core.IsFinite(cfg.SampleRate) {
		return nil, fmt.Errorf("stereodelay sample rate must be > 0: %f", cfg.SampleRate)
	}
	if cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("stereodelay block size must be > 0: %d", cfg.BlockSize)
	}

	e := &Engine{
		sampleRate: cfg.SampleRate,
		blockSize:  cfg.BlockSize,
		params:     NewStore(DefaultParams()),
		source:     source,
	}
	for ch := range e.lines {
		line, err := delay.NewForDuration(CapacitySeconds, cfg.SampleRate)
		if err != nil {
			return nil, err
		}
		e.lines[ch] = line
		e.wet[ch] = make([]float64, cfg.BlockSize)
	}
	e.prepare()

	return e, nil
}

// SampleRate returns the sample rate fixed at construction.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// BlockSize returns the largest chunk mixed in one pass.
func (e *Engine) BlockSize() int { return e.blockSize }

// Capacity returns the delay-line length in samples.
func (e *Engine) Capacity() int { return e.lines[left].Len() }

// Params returns the parameter store.
func (e *Engine) Params() *Store { return e.params }

// SetParameter assigns a normalized value to the parameter at index. The
// next ProcessStereo call sees the change before its first sample.
func (e *Engine) SetParameter(index Param, value float64) {
	e.params.Set(index, value)
}

// Parameter returns the normalized value of the parameter at index.
func (e *Engine) Parameter(index Param) float64 {
	return e.params.Get(index)
}

// Update applies a batch of parameter changes as one snapshot.
func (e *Engine) Update(fn func(*Params)) {
	e.params.Update(fn)
}

// ParameterDisplay formats the current value of the parameter at index.
func (e *Engine) ParameterDisplay(index Param) string {
	return Display(e.params.Snapshot(), index)
}

// DelayTimes returns the effective delay durations applied by the last
// ProcessStereo call (or by New). Call it from the processing goroutine.
func (e *Engine) DelayTimes() tempo.Times { return e.times }

// ReadOffsets returns the applied read offsets in samples. Call it from
// the processing goroutine.
func (e *Engine) ReadOffsets() (left, right int) {
	return e.offsets[0], e.offsets[1]
}

// ProcessStereo processes one block. The number of frames is the length of
// the shortest of the four buffers. Outputs may alias inputs.
func (e *Engine) ProcessStereo(inL, inR, outL, outR []float64) {
	n := core.MinLen(inL, inR, outL, outR)

	e.prepare()
	p := e.applied

	for start := 0; start < n; start += e.blockSize {
		end := min(start+e.blockSize, n)
		e.processChunk(p, inL[start:end], inR[start:end], outL[start:end], outR[start:end])
	}
}

func (e *Engine) processChunk(p *Params, inL, inR, outL, outR []float64) {
	n := len(inL)
	wetL := e.wet[left][:n]
	wetR := e.wet[right][:n]
	lineL, lineR := e.lines[left], e.lines[right]
	gain := p.Feedback

	for i := 0; i < n; i++ {
		dl := lineL.Read()
		dr := lineR.Read()
		wetL[i] = dl
		wetR[i] = dr

		fl := e.filters[left].ProcessSample(dl)
		fr := e.filters[right].ProcessSample(dr)
		fl, fr = route(fl, fr, p.PingPong)

		lineL.Write(lineSample(inL[i], fl*gain))
		lineR.Write(lineSample(inR[i], fr*gain))
	}

	mix := p.Wet
	dry := 1 - mix
	vecmath.ScaleBlock(outL, inL, dry)
	vecmath.ScaleBlock(outR, inR, dry)
	vecmath.ScaleBlockInPlace(wetL, mix)
	vecmath.ScaleBlockInPlace(wetR, mix)
	vecmath.AddBlockInPlace(outL, wetL)
	vecmath.AddBlockInPlace(outR, wetR)
}

// prepare picks up the latest parameters and transport and recomputes the
// derived state when either changed.
func (e *Engine) prepare() {
	p := e.params.Snapshot()

	var tr tempo.Transport
	if p.Sync && e.source != nil {
		tr = e.source.Transport()
	}

	if p == e.applied && tr == e.transport {
		return
	}
	e.apply(p, tr)
}

func (e *Engine) apply(p *Params, tr tempo.Transport) {
	e.applied = p
	e.transport = tr

	for ch := range e.filters {
		e.filters[ch].SetCoefficients(p.HighPass, p.LowPass)
	}

	e.times = tempo.Resolve(p.Timing(), tr)
	l, r := e.times.Samples(e.sampleRate)
	e.offsets[left] = e.clampOffset(l)
	e.offsets[right] = e.clampOffset(r)
	for ch, line := range e.lines {
		line.SetReadOffset(e.offsets[ch])
	}
}

// clampOffset keeps an offset within [1, capacity-1]. Reads happen before
// writes, so an offset of 0 would return the oldest sample in the line.
func (e *Engine) clampOffset(n int) int {
	capacity := e.Capacity()
	if n < 1 {
		return 1
	}
	if n > capacity-1 {
		return capacity - 1
	}
	return n
}

// lineSample combines input and feedback for a delay-line write. Non-finite
// terms count as 0 and the sum is limited to MaxLineLevel.
func lineSample(in, fb float64) float64 {
	return core.Clamp(finiteOrZero(in)+finiteOrZero(fb), -MaxLineLevel, MaxLineLevel)
}

func finiteOrZero(x float64) float64 {
	if core.IsFinite(x) {
		return x
	}
	return 0
}
