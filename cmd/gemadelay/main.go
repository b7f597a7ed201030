// Command gemadelay renders, inspects and plays the gema stereo delay.
//
// Usage:
//
//	gemadelay [flags]
//
// Modes:
//
//	analyze  render an impulse and print the echoes and the feedback filter response
//	list     print the parameters with their current values
//	play     play a click train through the delay; parameters can be changed from stdin
//
// Examples:
//
//	gemadelay -set feedback=0.6 -set ping-pong=on
//	gemadelay -mode analyze -set sync=on -set division=1/8T -bpm 100
//	gemadelay -mode play -midi "IAC" -set sync=on
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwbudde/gema/dsp/core"
	"github.com/cwbudde/gema/dsp/effects/stereodelay"
	"github.com/cwbudde/gema/dsp/tempo"
	"github.com/cwbudde/gema/internal/midiclock"
	"github.com/cwbudde/gema/measure/echo"
)

type config struct {
	mode        string
	sampleRate  float64
	blockSize   int
	bpm         float64
	midiPort    string
	seconds     float64
	channel     string
	thresholdDB float64
	fftSize     int
	click       float64
	gain        float64
	duration    time.Duration
	params      assignments
}

func main() {
	var cfg config
	flag.StringVar(&cfg.mode, "mode", "analyze", "analyze, list or play")
	flag.Float64Var(&cfg.sampleRate, "rate", 48000, "sample rate in Hz")
	flag.IntVar(&cfg.blockSize, "block", 512, "processing block size in frames")
	flag.Float64Var(&cfg.bpm, "bpm", tempo.FallbackBPM, "fixed host tempo used when tempo sync is on")
	flag.StringVar(&cfg.midiPort, "midi", "", "follow MIDI clock from the first input port containing this text (play mode)")
	flag.Float64Var(&cfg.seconds, "seconds", 4, "impulse response length in seconds (analyze mode)")
	flag.StringVar(&cfg.channel, "channel", "left", "impulse input channel: left, right or both (analyze mode)")
	flag.Float64Var(&cfg.thresholdDB, "threshold", -60, "ignore echoes further below the strongest one, in dB")
	flag.IntVar(&cfg.fftSize, "fft", 4096, "FFT size for the feedback filter response")
	flag.Float64Var(&cfg.click, "click", 2, "seconds between clicks (play mode)")
	flag.Float64Var(&cfg.gain, "gain", 0.5, "output gain (play mode)")
	flag.DurationVar(&cfg.duration, "duration", 0, "stop playing after this long; 0 plays until interrupted")
	flag.Var(&cfg.params, "set", "parameter assignment `name=value`, may be repeated")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gemadelay [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders, inspects and plays the gema stereo feedback delay.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nParameters:\n")
		for i := stereodelay.Param(0); i < stereodelay.NumParams; i++ {
			fmt.Fprintf(os.Stderr, "  %-10s %s\n", stereodelay.Key(i), stereodelay.Name(i))
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gemadelay -set feedback=0.6 -set ping-pong=on\n")
		fmt.Fprintf(os.Stderr, "  gemadelay -mode analyze -set sync=on -set division=1/8T -bpm 100\n")
		fmt.Fprintf(os.Stderr, "  gemadelay -mode play -midi IAC -set sync=on\n")
	}
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func run(ctx context.Context, cfg config) error {
	switch cfg.mode {
	case "analyze":
		e, err := newEngine(cfg, fixedTempo(cfg.bpm))
		if err != nil {
			return err
		}
		ch, err := parseChannel(cfg.channel)
		if err != nil {
			return err
		}
		return analyze(os.Stdout, e, analyzeOptions{
			seconds:     cfg.seconds,
			channel:     ch,
			thresholdDB: cfg.thresholdDB,
			fftSize:     cfg.fftSize,
		})
	case "list":
		e, err := newEngine(cfg, fixedTempo(cfg.bpm))
		if err != nil {
			return err
		}
		return printParams(os.Stdout, e)
	case "play":
		return play(ctx, cfg)
	default:
		return fmt.Errorf("unknown mode %q", cfg.mode)
	}
}

func play(ctx context.Context, cfg config) error {
	if cfg.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.duration)
		defer cancel()
	}

	var source tempo.Source = fixedTempo(cfg.bpm)
	if cfg.midiPort != "" {
		tracker := midiclock.New()
		in, err := openMIDI(cfg.midiPort, tracker.Feed)
		if err != nil {
			return err
		}
		defer func() {
			if err := in.Close(); err != nil {
				log.Printf("failed to close MIDI input: %v", err)
			}
		}()
		log.Printf("following MIDI clock from %s", in)
		source = tracker
	}

	e, err := newEngine(cfg, source)
	if err != nil {
		return err
	}

	out, err := newOutput(e, cfg.click, cfg.gain)
	if err != nil {
		return err
	}
	defer out.Close()
	out.Play()
	log.Printf("playing at %.0f Hz, clicks every %.2f s", e.SampleRate(), cfg.click)

	err = runSession(ctx, e, out, os.Stdin, os.Stdout)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func newEngine(cfg config, source tempo.Source) (*stereodelay.Engine, error) {
	e, err := stereodelay.New(source,
		core.WithSampleRate(cfg.sampleRate),
		core.WithBlockSize(cfg.blockSize),
	)
	if err != nil {
		return nil, err
	}
	cfg.params.apply(e)
	return e, nil
}

func fixedTempo(bpm float64) tempo.Fixed {
	return tempo.Fixed{BPM: bpm, Valid: true}
}

func parseChannel(s string) (echo.Channel, error) {
	switch s {
	case "left", "l":
		return echo.Left, nil
	case "right", "r":
		return echo.Right, nil
	case "both", "lr":
		return echo.Both, nil
	default:
		return 0, fmt.Errorf("unknown channel %q", s)
	}
}
