// Package delay provides the fixed-capacity circular buffer used by the
// echo engine.
//
// A Line owns a single contiguous allocation made at construction and is
// never resized. Integer delays only: the read cursor trails the write
// cursor by a whole number of samples.
package delay
