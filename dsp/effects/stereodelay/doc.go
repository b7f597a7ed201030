// Package stereodelay implements a stereo feedback delay with a filtered
// feedback path, optional ping-pong cross-feedback and tempo-synchronized
// delay times.
//
// Per frame the engine reads the delayed sample of each channel, runs it
// through the channel's feedback filter chain, optionally swaps the two
// filtered values, scales them by the feedback gain, adds the fresh input
// and writes the sum back into the delay line. The output mixes the dry
// input with the delayed sample as read, before filtering.
//
// Parameters use the normalized 0..1 protocol of plugin hosts and are
// published as immutable snapshots. ProcessStereo picks up the latest
// snapshot and the host transport at the start of each call and recomputes
// the read offsets only when one of them changed; the per-sample loop never
// allocates, locks or blocks.
//
// The delay lines hold CapacitySeconds of audio at the sample rate given to
// New. Changing sample rate requires a new Engine.
package stereodelay
