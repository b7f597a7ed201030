package main

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi"
	"gitlab.com/gomidi/rtmididrv"
)

// midiInput is an open MIDI input port with a listener installed.
type midiInput struct {
	drv *rtmididrv.Driver
	in  midi.In
}

// openMIDI opens the first input port whose name contains match and
// installs listener on it.
func openMIDI(match string, listener func(data []byte, deltaMicroseconds int64)) (*midiInput, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MIDI driver: %w", err)
	}

	in, err := selectInput(drv, match)
	if err != nil {
		return nil, errors.Join(err, drv.Close())
	}
	if err := in.Open(); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to open MIDI IN: %w", err), drv.Close())
	}
	if err := in.SetListener(listener); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to set listener: %w", err), in.Close(), drv.Close())
	}

	return &midiInput{drv: drv, in: in}, nil
}

func selectInput(drv *rtmididrv.Driver, match string) (midi.In, error) {
	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("failed to get MIDI IN: %w", err)
	}

	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	idx := matchPort(names, match)
	if idx < 0 {
		if len(names) == 0 {
			return nil, errors.New("no MIDI inputs found")
		}
		return nil, fmt.Errorf("no MIDI input matching %q (available: %s)", match, strings.Join(names, ", "))
	}
	return ins[idx], nil
}

// matchPort returns the index of the first name containing match, ignoring
// case, or -1.
func matchPort(names []string, match string) int {
	want := strings.ToLower(strings.TrimSpace(match))
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), want) {
			return i
		}
	}
	return -1
}

func (m *midiInput) String() string { return m.in.String() }

func (m *midiInput) Close() error {
	return errors.Join(m.in.StopListening(), m.in.Close(), m.drv.Close())
}
