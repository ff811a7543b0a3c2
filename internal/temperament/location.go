package temperament

import (
	"math"

	"github.com/verte-zerg/edotune/internal/ratio"
)

// Location compares where a ratio lands when built from the val against
// where direct rounding puts it. The two may disagree.
type Location struct {
	Ratio ratio.Ratio
	// Tempered is the raw val sum; valid only when HasTempered is set.
	Tempered       int
	TemperedDegree int
	HasTempered    bool
	// Patent is round(steps * log2(ratio)).
	Patent       int
	PatentDegree int
}

// referenceRatios are printed in every report.
var referenceRatios = []string{"3/2", "5/4", "6/5", "7/4", "7/6", "9/8", "11/8", "13/8"}

// ReferenceRatios returns the fixed ratios reported for every temperament.
func ReferenceRatios() []ratio.Ratio {
	out := make([]ratio.Ratio, len(referenceRatios))
	for i, s := range referenceRatios {
		out[i] = ratio.MustParse(s)
	}
	return out
}

// Locate computes the tempered and patent locations of r.
func Locate(t Temperament, r ratio.Ratio) Location {
	loc := Location{Ratio: r}
	loc.Patent = int(math.Round(float64(t.steps) * r.Octaves()))
	loc.PatentDegree = Degree(loc.Patent, t.steps)
	monzo, err := ratio.Factorize(r, t.primes)
	if err != nil {
		return loc
	}
	steps, err := monzo.Dot(t.val)
	if err != nil {
		return loc
	}
	loc.Tempered = steps
	loc.TemperedDegree = Degree(steps, t.steps)
	loc.HasTempered = true
	return loc
}

// Consistent reports whether both computations agree.
func (l Location) Consistent() bool {
	return l.HasTempered && l.Tempered == l.Patent
}

// Degree reduces a raw step count into [0, steps).
func Degree(raw, steps int) int {
	d := raw % steps
	if d < 0 {
		d += steps
	}
	return d
}
