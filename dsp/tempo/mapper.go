package tempo

import "math"

const (
	// MaxManualSeconds is the delay time selected by a normalized time of 1.
	MaxManualSeconds = 2.0
	// PingPongRatio stretches the right channel's synced time when
	// ping-pong is on.
	PingPongRatio = 1.5
)

// Settings are the inputs of the delay-time resolution.
type Settings struct {
	// TimeL and TimeR are normalized manual times in [0, 1].
	TimeL, TimeR float64
	Sync         bool
	PingPong     bool
	Division     Division
}

// Times holds the effective delay duration per channel in seconds.
type Times struct {
	Left, Right float64
}

// Resolve returns the effective delay durations. Manual times are used
// when sync is off or the transport is not valid; otherwise both channels
// follow the selected division of a beat, with the right channel
// stretched by PingPongRatio when ping-pong is on.
func Resolve(s Settings, tr Transport) Times {
	if !s.Sync || !tr.Valid {
		return Times{
			Left:  ManualSeconds(s.TimeL),
			Right: ManualSeconds(s.TimeR),
		}
	}

	base := BeatSeconds(tr.BPM) * s.Division.Factor()
	t := Times{Left: base, Right: base}
	if s.PingPong {
		t.Right = base * PingPongRatio
	}
	return t
}

// ManualSeconds maps a normalized time to seconds.
func ManualSeconds(normalized float64) float64 {
	if math.IsNaN(normalized) || normalized < 0 {
		return 0
	}
	if normalized > 1 {
		normalized = 1
	}
	return normalized * MaxManualSeconds
}

// Samples converts both durations to whole samples at sampleRate.
func (t Times) Samples(sampleRate float64) (left, right int) {
	return SecondsToSamples(t.Left, sampleRate), SecondsToSamples(t.Right, sampleRate)
}

// SecondsToSamples rounds seconds*sampleRate to the nearest sample.
// Negative or non-finite products give 0.
func SecondsToSamples(seconds, sampleRate float64) int {
	n := math.Round(seconds * sampleRate)
	if !(n > 0) || math.IsInf(n, 0) {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}
