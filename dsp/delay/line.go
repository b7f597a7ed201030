package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/gema/dsp/core"
)

// Line is a fixed-capacity circular delay line with independent write and
// read cursors. Both cursors advance once per sample, so the distance set
// by SetReadOffset stays constant until the next call to SetReadOffset.
type Line struct {
	buffer   []float64
	writePos int
	readPos  int
}

// New returns a zero-filled delay line holding size samples.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// NewForDuration returns a delay line holding seconds of audio at sampleRate.
func NewForDuration(seconds, sampleRate float64) (*Line, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("delay sample rate must be > 0: %f", sampleRate)
	}
	if seconds <= 0 || !core.IsFinite(seconds) {
		return nil, fmt.Errorf("delay duration must be > 0: %f", seconds)
	}
	return New(int(math.Ceil(seconds * sampleRate)))
}

// Len returns the capacity in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write stores sample at the write cursor and advances it.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample at the read cursor and advances it.
func (d *Line) Read() float64 {
	v := d.buffer[d.readPos]
	d.readPos++
	if d.readPos >= len(d.buffer) {
		d.readPos = 0
	}
	return v
}

// SetReadOffset places the read cursor samples behind the write cursor.
// A Read followed by a Write then returns the value written samples calls
// earlier. Offsets are taken modulo the capacity; negative offsets count
// as zero.
func (d *Line) SetReadOffset(samples int) {
	size := len(d.buffer)
	if samples < 0 {
		samples = 0
	}
	// Bias by enough whole buffers that the dividend is never negative.
	k := samples/size + 1
	d.readPos = (d.writePos - samples + k*size) % size
}

// Offset returns the current distance between the write and read cursors.
func (d *Line) Offset() int {
	size := len(d.buffer)
	return (d.writePos - d.readPos + size) % size
}

// Reset clears the stored samples and rewinds both cursors, keeping the
// current offset.
func (d *Line) Reset() {
	offset := d.Offset()
	core.Zero(d.buffer)
	d.writePos = 0
	d.SetReadOffset(offset)
}
