package main

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/gema/dsp/effects/stereodelay"
	"github.com/cwbudde/gema/dsp/tempo"
)

// bytesPerFrame is one interleaved stereo float32 frame.
const bytesPerFrame = 2 * 4

// clickSource renders a click train on the left input through the engine
// and encodes the output as interleaved float32 little-endian samples. Read
// runs on the audio device's goroutine.
type clickSource struct {
	engine *stereodelay.Engine
	period int
	phase  int
	gain   float64

	inL, inR, outL, outR []float64
}

func newClickSource(e *stereodelay.Engine, interval, gain float64) *clickSource {
	period := tempo.SecondsToSamples(interval, e.SampleRate())
	if period < 1 {
		period = 1
	}
	n := e.BlockSize()
	return &clickSource{
		engine: e,
		period: period,
		gain:   gain,
		inL:    make([]float64, n),
		inR:    make([]float64, n),
		outL:   make([]float64, n),
		outR:   make([]float64, n),
	}
}

// Read fills p with at most one block of frames.
func (s *clickSource) Read(p []byte) (int, error) {
	frames := min(len(p)/bytesPerFrame, len(s.inL))
	if frames == 0 {
		return 0, nil
	}

	inL, inR := s.inL[:frames], s.inR[:frames]
	outL, outR := s.outL[:frames], s.outR[:frames]
	for i := range inL {
		inL[i] = 0
		if s.phase == 0 {
			inL[i] = 1
		}
		inR[i] = 0
		s.phase++
		if s.phase >= s.period {
			s.phase = 0
		}
	}

	s.engine.ProcessStereo(inL, inR, outL, outR)

	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(float32(outL[i]*s.gain)))
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame+4:], math.Float32bits(float32(outR[i]*s.gain)))
	}
	return frames * bytesPerFrame, nil
}

// output plays a clickSource on the default audio device.
type output struct {
	ctx    *oto.Context
	player *oto.Player
}

func newOutput(e *stereodelay.Engine, interval, gain float64) (*output, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(e.SampleRate()),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	return &output{
		ctx:    ctx,
		player: ctx.NewPlayer(newClickSource(e, interval, gain)),
	}, nil
}

func (o *output) Play() { o.player.Play() }

// Err reports an asynchronous playback error.
func (o *output) Err() error { return o.player.Err() }

func (o *output) Close() {
	if err := o.player.Close(); err != nil {
		log.Printf("failed to close player: %v", err)
	}
}
