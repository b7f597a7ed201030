// Package echo measures the output of a feedback delay.
//
// FindEchoes locates the discrete repeats in an impulse response and
// reports their times and levels relative to the strongest one, which is
// enough to check delay times, ping-pong alternation and feedback decay
// of a rendered patch. FilterResponse returns the magnitude response of
// the feedback filter chain.
//
// # Usage
//
//	left, right, err := echo.RenderImpulse(engine, 2, echo.Left)
//	echoes, err := echo.NewAnalyzer(engine.SampleRate()).FindEchoes(left)
//	fmt.Printf("spacing = %.3f s\n", echo.Spacing(echoes))
package echo
