// Package tempo maps musical time to delay durations.
//
// A delay either runs on manual times (normalized 0..1 mapped to 0..2 s)
// or, when synchronized and the host reports a valid tempo, on one of
// eight note divisions of a beat: straight and triplet quarter, eighth,
// sixteenth and thirty-second notes.
package tempo
