package tempo

// FallbackBPM replaces tempos that are not positive and finite.
const FallbackBPM = 120.0

// Transport is the host's tempo report.
type Transport struct {
	// BPM is the tempo in beats per minute.
	BPM float64
	// Valid reports whether the host currently provides tempo information.
	Valid bool
}

// Source supplies the current transport. Implementations are queried from
// the audio thread and must not block.
type Source interface {
	Transport() Transport
}

// Fixed is a Source reporting a constant transport.
type Fixed Transport

// Transport implements Source.
func (f Fixed) Transport() Transport { return Transport(f) }

// EffectiveBPM returns bpm, or FallbackBPM when bpm is not a positive
// finite number.
func EffectiveBPM(bpm float64) float64 {
	if !(bpm > 0) || bpm > maxBPM {
		return FallbackBPM
	}
	return bpm
}

// BeatSeconds returns the length of one beat at bpm, applying EffectiveBPM.
func BeatSeconds(bpm float64) float64 {
	return 60 / EffectiveBPM(bpm)
}

// maxBPM rejects +Inf; anything that large is treated as a bad report.
const maxBPM = 1e9
