package tempo

import (
	"math"
	"testing"
)

func TestResolveSyncedQuarterAt120(t *testing.T) {
	got := Resolve(Settings{Sync: true, Division: Quarter}, Transport{BPM: 120, Valid: true})
	if got.Left != 0.5 || got.Right != 0.5 {
		t.Fatalf("Resolve() = %+v, want both 0.5 s", got)
	}
}

func TestResolvePingPongStretchesRight(t *testing.T) {
	for _, bpm := range []float64{60, 97.3, 120, 174} {
		for d := Quarter; d <= ThirtySecondTriplet; d++ {
			got := Resolve(Settings{Sync: true, PingPong: true, Division: d}, Transport{BPM: bpm, Valid: true})
			if got.Right != got.Left*1.5 {
				t.Fatalf("bpm %v %v: right %v, want 1.5 x %v", bpm, d, got.Right, got.Left)
			}
			want := 60 / bpm * d.Factor()
			if got.Left != want {
				t.Fatalf("bpm %v %v: left %v, want %v", bpm, d, got.Left, want)
			}
		}
	}
}

func TestResolveManualTimes(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
		tr   Transport
	}{
		{name: "sync off", s: Settings{TimeL: 0.25, TimeR: 0.5}, tr: Transport{BPM: 140, Valid: true}},
		{name: "no transport", s: Settings{TimeL: 0.25, TimeR: 0.5, Sync: true}, tr: Transport{BPM: 140}},
		{name: "ping-pong without sync", s: Settings{TimeL: 0.25, TimeR: 0.5, PingPong: true}, tr: Transport{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.s, tt.tr)
			if got.Left != 0.5 || got.Right != 1.0 {
				t.Fatalf("Resolve() = %+v, want {0.5 1}", got)
			}
		})
	}
}

func TestInvalidTempoFallsBackTo120(t *testing.T) {
	for _, bpm := range []float64{0, -1, -120, math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := Resolve(Settings{Sync: true, Division: Quarter}, Transport{BPM: bpm, Valid: true})
		if got.Left != 0.5 || got.Right != 0.5 {
			t.Errorf("bpm %v: Resolve() = %+v, want 0.5 s", bpm, got)
		}
		if EffectiveBPM(bpm) != FallbackBPM {
			t.Errorf("EffectiveBPM(%v) = %v", bpm, EffectiveBPM(bpm))
		}
	}
}

func TestManualSeconds(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.3, 0.6},
		{1, 2},
		{-1, 0},
		{3, 2},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := ManualSeconds(tt.in); got != tt.want {
			t.Errorf("ManualSeconds(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTimesSamples(t *testing.T) {
	l, r := Times{Left: 0.5, Right: 0.75}.Samples(48000)
	if l != 24000 || r != 36000 {
		t.Fatalf("Samples() = (%d, %d), want (24000, 36000)", l, r)
	}

	if n := SecondsToSamples(-1, 48000); n != 0 {
		t.Fatalf("negative seconds gave %d", n)
	}
	if n := SecondsToSamples(math.NaN(), 48000); n != 0 {
		t.Fatalf("NaN seconds gave %d", n)
	}
	if n := SecondsToSamples(1e30, 48000); n != math.MaxInt32 {
		t.Fatalf("huge seconds gave %d", n)
	}
}

func TestFixedSource(t *testing.T) {
	var src Source = Fixed{BPM: 90, Valid: true}
	if got := src.Transport(); got != (Transport{BPM: 90, Valid: true}) {
		t.Fatalf("Transport() = %+v", got)
	}
}
