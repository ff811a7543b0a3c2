// Package temperament maps just-intonation subgroups onto equal divisions of the octave.
package temperament

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/verte-zerg/edotune/internal/ratio"
)

const valCacheSize = 512

// valCache memoizes patent vals per (steps, subgroup).
var valCache = mustValCache()

func mustValCache() *lru.Cache[string, Val] {
	c, err := lru.New[string, Val](valCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}

// Val lists the number of steps each subgroup prime maps to.
type Val []int

func (v Val) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return "<" + strings.Join(parts, ", ") + "|"
}

// Temperament is an equal division of the octave restricted to a prime subgroup.
type Temperament struct {
	steps  int
	primes []int
	val    Val
}

// New returns the patent-val temperament of steps-EDO over primes.
func New(steps int, primes []int) (Temperament, error) {
	if steps <= 0 {
		return Temperament{}, fmt.Errorf("%w: %d", ErrInvalidStepCount, steps)
	}
	if err := validatePrimes(primes); err != nil {
		return Temperament{}, err
	}
	key := cacheKey(steps, primes)
	val, ok := valCache.Get(key)
	if !ok {
		val = patentVal(steps, primes)
		valCache.Add(key, val)
	}
	return Temperament{
		steps:  steps,
		primes: append([]int(nil), primes...),
		val:    append(Val(nil), val...),
	}, nil
}

// NewWithVal builds a temperament from an explicit val, e.g. a non-patent
// mapping. The val needs one entry per prime.
func NewWithVal(steps int, primes []int, val Val) (Temperament, error) {
	if steps <= 0 {
		return Temperament{}, fmt.Errorf("%w: %d", ErrInvalidStepCount, steps)
	}
	if err := validatePrimes(primes); err != nil {
		return Temperament{}, err
	}
	if len(val) != len(primes) {
		return Temperament{}, fmt.Errorf("%w: val has %d entries for %d primes", ErrInvalidSubgroup, len(val), len(primes))
	}
	return Temperament{
		steps:  steps,
		primes: append([]int(nil), primes...),
		val:    append(Val(nil), val...),
	}, nil
}

// NewWithLimit expands limit into the list of primes up to it.
func NewWithLimit(steps, limit int) (Temperament, error) {
	primes := ratio.PrimesUpTo(limit)
	if len(primes) == 0 {
		return Temperament{}, fmt.Errorf("%w: no primes up to %d", ErrInvalidSubgroup, limit)
	}
	return New(steps, primes)
}

// PatentVal rounds steps*log2(p) for every prime, halves away from zero.
func PatentVal(steps int, primes []int) (Val, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStepCount, steps)
	}
	if err := validatePrimes(primes); err != nil {
		return nil, err
	}
	return patentVal(steps, primes), nil
}

func patentVal(steps int, primes []int) Val {
	val := make(Val, len(primes))
	for i, p := range primes {
		val[i] = int(math.Round(float64(steps) * math.Log2(float64(p))))
	}
	return val
}

// StepSizeCents returns 1200/steps.
func StepSizeCents(steps int) (float64, error) {
	if steps <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStepCount, steps)
	}
	return 1200 / float64(steps), nil
}

// FretConstant returns 1/(1 - 2^(-1/steps)), the string length in fret spacings.
func FretConstant(steps int) float64 {
	return 1 / (1 - math.Exp2(-1/float64(steps)))
}

func validatePrimes(primes []int) error {
	if len(primes) == 0 {
		return fmt.Errorf("%w: prime list is empty", ErrInvalidSubgroup)
	}
	seen := make(map[int]struct{}, len(primes))
	for _, p := range primes {
		if !ratio.IsPrime(p) {
			return fmt.Errorf("%w: %d is not a prime", ErrInvalidSubgroup, p)
		}
		if _, ok := seen[p]; ok {
			return fmt.Errorf("%w: prime %d listed twice", ErrInvalidSubgroup, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

func cacheKey(steps int, primes []int) string {
	return strconv.Itoa(steps) + ":" + ratio.FormatPrimes(primes)
}

// Steps returns the number of steps per octave.
func (t Temperament) Steps() int { return t.steps }

// Primes returns a copy of the subgroup prime list.
func (t Temperament) Primes() []int { return append([]int(nil), t.primes...) }

// Val returns a copy of the patent val.
func (t Temperament) Val() Val { return append(Val(nil), t.val...) }

// StepSizeCents returns the size of one step in cents.
func (t Temperament) StepSizeCents() float64 { return 1200 / float64(t.steps) }

// Limit returns the largest prime of the subgroup.
func (t Temperament) Limit() int {
	limit := 0
	for _, p := range t.primes {
		if p > limit {
			limit = p
		}
	}
	return limit
}

// StepsOf maps a monzo over the subgroup to a step count.
func (t Temperament) StepsOf(m ratio.Monzo) (int, error) {
	return m.Dot(t.val)
}

// Fifth returns the number of steps of the patent 3/2, built from the
// patent 3 even if 3 is not part of the subgroup.
func (t Temperament) Fifth() int {
	return int(math.Round(float64(t.steps)*math.Log2(3))) - t.steps
}
