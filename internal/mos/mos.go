// Package mos finds moment-of-symmetry scales along a generator chain.
package mos

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/edotune/internal/notation"
)

// ErrInvalidGenerator is returned for generators that do not produce a chain.
var ErrInvalidGenerator = errors.New("mos: invalid generator")

// Scale is a chain segment with exactly two step sizes.
type Scale struct {
	Notes      int
	LargeCount int
	SmallCount int
	Large      int
	Small      int
	// Pattern spells the steps from degree 0 upwards with L and s.
	Pattern string
}

// Name renders the step counts, e.g. "5L2s".
func (s Scale) Name() string {
	return fmt.Sprintf("%dL%ds", s.LargeCount, s.SmallCount)
}

// Generators returns the step pair as notation generators, large step first.
func (s Scale) Generators() notation.GeneratorSpec {
	return notation.GeneratorSpec{Primary: s.Large, Secondary: s.Small, Accidental: s.Large - s.Small}
}

// Match is a generator whose chain contains a scale with the requested steps.
type Match struct {
	Generator int
	Scale     Scale
}

// Chain stacks generator inside a period of steps and returns every MOS it
// passes through, by ascending note count. The chain ends once all steps are
// equal.
func Chain(steps, generator int) ([]Scale, error) {
	if steps < 2 {
		return nil, fmt.Errorf("%w: period of %d steps", ErrInvalidGenerator, steps)
	}
	g := generator % steps
	if g < 0 {
		g += steps
	}
	if g == 0 {
		return nil, fmt.Errorf("%w: %d is a multiple of %d", ErrInvalidGenerator, generator, steps)
	}

	large, small := max(g, steps-g), min(g, steps-g)
	largeCount, smallCount := 1, 1
	var out []Scale
	for large != small {
		notes := largeCount + smallCount
		out = append(out, Scale{
			Notes:      notes,
			LargeCount: largeCount,
			SmallCount: smallCount,
			Large:      large,
			Small:      small,
			Pattern:    pattern(steps, g, notes, large),
		})
		// Every large step splits into a small step and the remainder.
		rest := large - small
		if rest > small {
			large = rest
			smallCount += largeCount
		} else {
			large, small = small, rest
			largeCount, smallCount = largeCount+smallCount, largeCount
		}
	}
	return out, nil
}

// FindGenerators lists the generators up to half the period whose chain
// reaches a MOS with g.Primary large and g.Secondary small steps.
func FindGenerators(steps int, g notation.GeneratorSpec) ([]Match, error) {
	if g.Secondary <= 0 || g.Primary <= g.Secondary {
		return nil, fmt.Errorf("%w: need large > small > 0, got %s", ErrInvalidGenerator, g)
	}
	var out []Match
	for gen := 1; gen <= steps/2; gen++ {
		scales, err := Chain(steps, gen)
		if err != nil {
			return nil, err
		}
		for _, s := range scales {
			if s.Large == g.Primary && s.Small == g.Secondary {
				out = append(out, Match{Generator: gen, Scale: s})
			}
		}
	}
	return out, nil
}

func pattern(steps, g, notes, large int) string {
	degrees := make([]int, notes)
	for i := range degrees {
		degrees[i] = i * g % steps
	}
	sort.Ints(degrees)
	var b strings.Builder
	for i, d := range degrees {
		next := steps
		if i+1 < len(degrees) {
			next = degrees[i+1]
		}
		if next-d == large {
			b.WriteByte('L')
		} else {
			b.WriteByte('s')
		}
	}
	return b.String()
}
