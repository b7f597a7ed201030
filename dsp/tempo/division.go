package tempo

import "math"

// Division selects a note length relative to one beat (a quarter note).
type Division int

const (
	Quarter Division = iota
	QuarterTriplet
	Eighth
	EighthTriplet
	Sixteenth
	SixteenthTriplet
	ThirtySecond
	ThirtySecondTriplet
)

// NumDivisions is the number of selectable divisions.
const NumDivisions = 8

// divisionScale maps a normalized value onto the division indices. It is
// slightly below NumDivisions so that 1.0 lands on the last index; the top
// division therefore covers a marginally narrower range than the others.
const divisionScale = 7.99

var divisionFactors = [NumDivisions]float64{
	1,
	2.0 / 3.0,
	1.0 / 2.0,
	1.0 / 3.0,
	1.0 / 4.0,
	1.0 / 6.0,
	1.0 / 8.0,
	1.0 / 12.0,
}

var divisionLabels = [NumDivisions]string{
	"1/4", "1/4T", "1/8", "1/8T", "1/16", "1/16T", "1/32", "1/32T",
}

// ClampDivision limits i to a valid division index.
func ClampDivision(i int) Division {
	if i < 0 {
		return Quarter
	}
	if i >= NumDivisions {
		return ThirtySecondTriplet
	}
	return Division(i)
}

// DivisionFromNormalized maps a normalized [0, 1] value to a division via
// floor(value*7.99), clamped to the valid range. NaN selects Quarter. A value
// produced by Normalized selects its own division even where the product
// rounds just below the index.
func DivisionFromNormalized(value float64) Division {
	if math.IsNaN(value) {
		return Quarter
	}
	scaled := math.Floor(value * divisionScale)
	if scaled < 0 {
		return Quarter
	}
	if scaled >= NumDivisions {
		return ThirtySecondTriplet
	}
	d := Division(scaled)
	if d < ThirtySecondTriplet && (d+1).Normalized() == value {
		d++
	}
	return d
}

// Normalized returns the normalized value that selects d.
func (d Division) Normalized() float64 {
	return float64(ClampDivision(int(d))) / divisionScale
}

// Factor returns the division length in beats.
func (d Division) Factor() float64 {
	return divisionFactors[ClampDivision(int(d))]
}

// String returns the note label, e.g. "1/8T".
func (d Division) String() string {
	return divisionLabels[ClampDivision(int(d))]
}

// ParseDivision looks a division up by its label.
func ParseDivision(label string) (Division, bool) {
	for i, l := range divisionLabels {
		if l == label {
			return Division(i), true
		}
	}
	return Quarter, false
}
