// Package ratio provides exact rational and prime-exponent (monzo) arithmetic.
package ratio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ratio is a positive rational number kept in lowest terms.
type Ratio struct {
	numer uint64
	denom uint64
}

// New returns the reduced ratio p/q.
func New(p, q int64) (Ratio, error) {
	if p <= 0 || q <= 0 {
		return Ratio{}, fmt.Errorf("%w: %d/%d must be positive", ErrInvalidRatio, p, q)
	}
	return reduced(uint64(p), uint64(q)), nil
}

// MustParse is Parse for compile-time constants. It panics on invalid input.
func MustParse(s string) Ratio {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Parse reads "p/q" or "p" into a reduced Ratio.
func Parse(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, hasDenom := strings.Cut(s, "/")
	if !hasDenom {
		denStr = "1"
	}
	numer, err := parseTerm(numStr)
	if err != nil {
		return Ratio{}, fmt.Errorf("%w: %q: numerator %v", ErrInvalidRatio, s, err)
	}
	denom, err := parseTerm(denStr)
	if err != nil {
		return Ratio{}, fmt.Errorf("%w: %q: denominator %v", ErrInvalidRatio, s, err)
	}
	return reduced(numer, denom), nil
}

func parseTerm(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("is empty")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("must be positive")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("is not a 64-bit integer")
	}
	if v == 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return v, nil
}

func reduced(numer, denom uint64) Ratio {
	g := gcd(numer, denom)
	return Ratio{numer: numer / g, denom: denom / g}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Numer returns the numerator.
func (r Ratio) Numer() uint64 { return r.numer }

// Denom returns the denominator.
func (r Ratio) Denom() uint64 { return r.denom }

// IsZero reports whether r is the zero value, which is not a valid ratio.
func (r Ratio) IsZero() bool { return r.denom == 0 }

// Octaves returns log2(p/q).
func (r Ratio) Octaves() float64 {
	// Subtracting logs keeps precision for ratios close to 1 with large terms.
	return math.Log2(float64(r.numer)) - math.Log2(float64(r.denom))
}

// Cents returns 1200 * log2(p/q).
func (r Ratio) Cents() float64 {
	return 1200 * r.Octaves()
}

// Inv returns q/p.
func (r Ratio) Inv() Ratio {
	return Ratio{numer: r.denom, denom: r.numer}
}

// Less orders ratios by value using exact 128-bit cross multiplication.
func (r Ratio) Less(o Ratio) bool {
	return cmp128(r.numer, o.denom, o.numer, r.denom) < 0
}

func (r Ratio) String() string {
	if r.denom == 1 {
		return strconv.FormatUint(r.numer, 10)
	}
	return strconv.FormatUint(r.numer, 10) + "/" + strconv.FormatUint(r.denom, 10)
}
