// Package midiclock derives a tempo from MIDI timing clock messages.
package midiclock

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/gema/dsp/tempo"
)

// PulsesPerQuarter is the MIDI timing clock resolution.
const PulsesPerQuarter = 24

// MIDI system real-time status bytes.
const (
	statusClock    = 0xF8
	statusStart    = 0xFA
	statusContinue = 0xFB
	statusStop     = 0xFC
)

// Tracker averages the interval between timing clocks over one beat.
//
// Feed is meant to be installed as a MIDI input listener and may be called
// from one goroutine at a time. Transport may be called concurrently from
// the audio goroutine and never blocks.
type Tracker struct {
	mu         sync.Mutex
	running    bool
	haveClock  bool
	sinceClock int64
	intervals  [PulsesPerQuarter]int64
	count      int
	next       int
	sum        int64

	// bpm holds the published tempo as float64 bits; 0 means no valid tempo.
	bpm atomic.Uint64
}

// New returns a stopped tracker.
func New() *Tracker {
	return &Tracker{}
}

// Feed consumes one MIDI message together with the time in microseconds
// since the previous message, as delivered by a MIDI input listener.
func (t *Tracker) Feed(data []byte, deltaMicroseconds int64) {
	if len(data) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if deltaMicroseconds > 0 {
		t.sinceClock += deltaMicroseconds
	}

	switch data[0] {
	case statusClock:
		t.clockLocked()
	case statusStart, statusContinue:
		t.resetLocked()
		t.running = true
	case statusStop:
		t.running = false
	}
	t.publishLocked()
}

// Reset stops the tracker and forgets all timing.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resetLocked()
	t.running = false
	t.publishLocked()
}

// BPM returns the published tempo and whether it is valid.
func (t *Tracker) BPM() (float64, bool) {
	bits := t.bpm.Load()
	if bits == 0 {
		return 0, false
	}
	return math.Float64frombits(bits), true
}

// Transport implements tempo.Source.
func (t *Tracker) Transport() tempo.Transport {
	bpm, ok := t.BPM()
	return tempo.Transport{BPM: bpm, Valid: ok}
}

func (t *Tracker) clockLocked() {
	if t.haveClock {
		t.pushLocked(t.sinceClock)
	}
	t.haveClock = true
	t.sinceClock = 0
}

func (t *Tracker) pushLocked(interval int64) {
	if t.count == len(t.intervals) {
		t.sum -= t.intervals[t.next]
	} else {
		t.count++
	}
	t.intervals[t.next] = interval
	t.sum += interval
	t.next = (t.next + 1) % len(t.intervals)
}

func (t *Tracker) resetLocked() {
	t.haveClock = false
	t.sinceClock = 0
	t.count = 0
	t.next = 0
	t.sum = 0
}

// publishLocked stores the tempo when running with a full beat of
// intervals, and clears it otherwise.
func (t *Tracker) publishLocked() {
	if !t.running || t.count < len(t.intervals) || t.sum <= 0 {
		t.bpm.Store(0)
		return
	}
	bpm := 60e6 / float64(t.sum)
	t.bpm.Store(math.Float64bits(bpm))
}
