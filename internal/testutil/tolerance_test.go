package testutil

import "testing"

func TestRequireHelpersPass(t *testing.T) {
	a := []float64{0.5, -1, 2}
	RequireSliceEqual(t, a, []float64{0.5, -1, 2})
	RequireSliceNearlyEqual(t, a, []float64{0.5, -1, 2 + 1e-12}, 1e-9)
	RequireFinite(t, a)
	RequireFinite(t, nil)
}
