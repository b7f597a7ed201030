package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/gema/dsp/core"
	"github.com/cwbudde/gema/dsp/effects/stereodelay"
	"github.com/cwbudde/gema/measure/echo"
)

type analyzeOptions struct {
	seconds     float64
	channel     echo.Channel
	thresholdDB float64
	fftSize     int
}

// responseFrequencies are the octave points of the filter response table.
var responseFrequencies = []float64{31.25, 62.5, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

func analyze(w io.Writer, e *stereodelay.Engine, opts analyzeOptions) error {
	if err := printParams(w, e); err != nil {
		return err
	}

	left, right, err := echo.RenderImpulse(e, opts.seconds, opts.channel)
	if err != nil {
		return err
	}
	times := e.DelayTimes()
	fmt.Fprintf(w, "\nDelay: left %.1f ms, right %.1f ms\n\n", times.Left*1000, times.Right*1000)

	a := echo.NewAnalyzer(e.SampleRate())
	a.ThresholdDB = opts.thresholdDB

	type result struct {
		name   string
		echoes []echo.Echo
	}
	var results []result
	for _, ch := range []struct {
		name string
		data []float64
	}{{"left", left}, {"right", right}} {
		echoes, err := a.FindEchoes(ch.data)
		if err != nil {
			return err
		}
		results = append(results, result{ch.name, echoes})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Channel\t#\tTime [ms]\tLevel [dB]\tAmplitude\n")
	fmt.Fprintf(tw, "-------\t-\t---------\t----------\t---------\n")
	for _, r := range results {
		for i, x := range r.echoes {
			fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.2f\t%+.4f\n", r.name, i+1, x.Time*1000, x.Level, x.Amplitude)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%s: %d echoes, spacing %.1f ms, decay %.2f dB/repeat\n",
			r.name, len(r.echoes), echo.Spacing(r.echoes)*1000, echo.DecayPerRepeat(r.echoes))
	}

	p := e.Params().Snapshot()
	mag, err := echo.FilterResponse(p.HighPass, p.LowPass, opts.fftSize)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nFeedback filter (HP %s, LP %s):\n\n",
		stereodelay.Display(p, stereodelay.ParamHighPass), stereodelay.Display(p, stereodelay.ParamLowPass))
	return printResponse(w, mag, opts.fftSize, e.SampleRate())
}

func printResponse(w io.Writer, mag []float64, size int, sampleRate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frequency [Hz]\tGain [dB]\n")
	fmt.Fprintf(tw, "--------------\t---------\n")
	for _, f := range responseFrequencies {
		if f >= sampleRate/2 {
			break
		}
		k := int(math.Round(f * float64(size) / sampleRate))
		if k >= len(mag) {
			break
		}
		fmt.Fprintf(tw, "%.1f\t%.2f\n", echo.BinFrequency(k, size, sampleRate), core.LinearToDB(mag[k]))
	}
	return tw.Flush()
}

func printParams(w io.Writer, e *stereodelay.Engine) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tKey\tName\tValue\tNormalized\n")
	fmt.Fprintf(tw, "-\t---\t----\t-----\t----------\n")
	p := e.Params().Snapshot()
	for i := stereodelay.Param(0); i < stereodelay.NumParams; i++ {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.3f\n", i, stereodelay.Key(i), stereodelay.Name(i),
			stereodelay.Display(p, i), p.Get(i))
	}
	return tw.Flush()
}
