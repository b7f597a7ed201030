package core

// Zero sets all samples in buf to zero.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// MinLen returns the shortest length among bufs, or 0 when none are given.
func MinLen(bufs ...[]float64) int {
	if len(bufs) == 0 {
		return 0
	}
	n := len(bufs[0])
	for _, b := range bufs[1:] {
		if len(b) < n {
			n = len(b)
		}
	}
	return n
}
