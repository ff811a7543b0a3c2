package temperament

import (
	"math"
)

// badnessScale calibrates TE simple badness to per-mille reference values.
// 13-EDO over 2.3.5.7.11.13 must come out at 100.661.
const badnessScale = 10103.0

// accurateThreshold is the relative error (percent of a step) below which a
// prime counts as well approximated.
const accurateThreshold = 25.0

// PrimeError describes how far one prime's mapping is from just.
type PrimeError struct {
	Prime int
	// AbsoluteCents is the signed deviation of the tempered prime in cents.
	AbsoluteCents float64
	// RelativePercent is AbsoluteCents in percent of one step.
	RelativePercent float64
}

// ErrorReport summarizes the tempering error of a temperament.
type ErrorReport struct {
	Errors          []PrimeError
	TESimpleBadness float64
}

// Analyze computes per-prime errors and TE simple badness.
func Analyze(t Temperament) ErrorReport {
	stepSize := t.StepSizeCents()
	errs := make([]PrimeError, len(t.primes))
	sumSquares := 0.0
	for i, p := range t.primes {
		justCents := 1200 * math.Log2(float64(p))
		abs := float64(t.val[i])/float64(t.steps)*1200 - justCents
		errs[i] = PrimeError{
			Prime:           p,
			AbsoluteCents:   abs,
			RelativePercent: abs / stepSize * 100,
		}
		weighted := abs / justCents
		sumSquares += weighted * weighted
	}
	rms := math.Sqrt(sumSquares / float64(len(t.primes)))
	return ErrorReport{
		Errors:          errs,
		TESimpleBadness: rms * badnessScale,
	}
}

// AbsoluteCents returns the absolute errors in subgroup order.
func (r ErrorReport) AbsoluteCents() []float64 {
	out := make([]float64, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.AbsoluteCents
	}
	return out
}

// RelativePercent returns the relative errors in subgroup order.
func (r ErrorReport) RelativePercent() []float64 {
	out := make([]float64, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.RelativePercent
	}
	return out
}

// AccurateSubgroup lists the primes approximated within a quarter step.
func (r ErrorReport) AccurateSubgroup() []int {
	var primes []int
	for _, e := range r.Errors {
		if math.Abs(e.RelativePercent) < accurateThreshold {
			primes = append(primes, e.Prime)
		}
	}
	return primes
}
