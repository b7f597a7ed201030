package stereodelay

// route returns the feedback for the left and right delay lines. With
// ping-pong on, each side's filtered echo is fed to the opposite line.
func route(left, right float64, pingPong bool) (float64, float64) {
	if pingPong {
		return right, left
	}
	return left, right
}
