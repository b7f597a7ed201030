package delay

import (
	"testing"

	"github.com/cwbudde/gema/internal/testutil"
)

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for size=0")
	}

	if _, err := New(-1); err == nil {
		t.Fatal("expected error for size=-1")
	}
}

func TestNewForDuration(t *testing.T) {
	d, err := NewForDuration(10, 44100)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 441000 {
		t.Fatalf("Len: got %d want 441000", d.Len())
	}

	if _, err := NewForDuration(10, 0); err == nil {
		t.Fatal("expected error for sampleRate=0")
	}

	if _, err := NewForDuration(-1, 48000); err == nil {
		t.Fatal("expected error for negative duration")
	}
}

func TestNewIsZeroFilled(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < d.Len(); i++ {
		if got := d.Read(); got != 0 {
			t.Fatalf("Read %d: got %v want 0", i, got)
		}
	}
}

// --- cursor behaviour ---

func TestWriteAdvancesAndWraps(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 6; i++ {
		d.Write(float64(i))
	}

	if d.writePos != 2 {
		t.Fatalf("WritePos: got %d want 2", d.writePos)
	}
}

func TestReadReturnsValueWrittenOffsetSamplesEarlier(t *testing.T) {
	const size = 64

	input := testutil.DeterministicNoise(7, 1, 10*size)

	for offset := 1; offset < size; offset++ {
		d, err := New(size)
		if err != nil {
			t.Fatal(err)
		}
		// Start from an arbitrary write position.
		for i := 0; i < 13; i++ {
			d.Write(0)
		}
		d.SetReadOffset(offset)

		for k, x := range input {
			got := d.Read()
			d.Write(x)

			want := 0.0
			if k >= offset {
				want = input[k-offset]
			}
			if got != want {
				t.Fatalf("offset %d step %d: got %v want %v", offset, k, got, want)
			}
		}
	}
}

func TestOffsetStaysConstant(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}

	d.SetReadOffset(9)

	for i := 0; i < 1000; i++ {
		d.Read()
		d.Write(float64(i))

		if got := d.Offset(); got != 9 {
			t.Fatalf("step %d: offset %d want 9", i, got)
		}
	}
}

func TestSetReadOffsetNormalizesNegativeIntermediate(t *testing.T) {
	tests := []struct {
		name     string
		writes   int
		offset   int
		wantRead int
	}{
		{name: "offset beyond write cursor", writes: 3, offset: 10, wantRead: 9},
		{name: "offset equal to capacity", writes: 5, offset: 16, wantRead: 5},
		{name: "offset several buffers long", writes: 1, offset: 16*3 + 2, wantRead: 15},
		{name: "negative offset", writes: 4, offset: -5, wantRead: 4},
		{name: "zero offset", writes: 7, offset: 0, wantRead: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(16)
			if err != nil {
				t.Fatal(err)
			}

			for i := 0; i < tt.writes; i++ {
				d.Write(1)
			}

			d.SetReadOffset(tt.offset)

			if d.readPos != tt.wantRead {
				t.Fatalf("ReadPos: got %d want %d", d.readPos, tt.wantRead)
			}
			if d.readPos < 0 || d.readPos >= d.Len() {
				t.Fatalf("ReadPos %d out of range", d.readPos)
			}
		})
	}
}

func TestZeroOffsetReadsOldestSample(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 4; i++ {
		d.Write(float64(i))
	}
	d.SetReadOffset(0)

	// Write cursor wrapped to 0, so the read sees the sample written a
	// full capacity ago.
	if got := d.Read(); got != 1 {
		t.Fatalf("got %v want 1", got)
	}
}

func TestReset(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	d.SetReadOffset(3)
	for i := 0; i < 11; i++ {
		d.Read()
		d.Write(float64(i + 1))
	}

	d.Reset()

	if d.writePos != 0 {
		t.Fatalf("WritePos after reset: got %d want 0", d.writePos)
	}
	if d.Offset() != 3 {
		t.Fatalf("Offset after reset: got %d want 3", d.Offset())
	}
	for i := 0; i < d.Len(); i++ {
		if got := d.Read(); got != 0 {
			t.Fatalf("after reset Read %d: got %v want 0", i, got)
		}
	}
}

// --- benchmarks ---

func BenchmarkReadWrite(b *testing.B) {
	d, _ := New(48000)
	d.SetReadOffset(12000)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.Write(d.Read() * 0.5)
	}
}
