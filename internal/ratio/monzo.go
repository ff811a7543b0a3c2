package ratio

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Monzo holds prime exponents over an ordered prime list.
type Monzo []int

// Factorize expresses r as a monzo over primes.
// A factor left over after dividing by every listed prime yields ErrUnsupportedPrimeFactor.
func Factorize(r Ratio, primes []int) (Monzo, error) {
	if r.IsZero() {
		return nil, ErrInvalidRatio
	}
	numer, denom := r.numer, r.denom
	monzo := make(Monzo, len(primes))
	for i, p := range primes {
		if p < 2 {
			return nil, fmt.Errorf("%w: %d is not a prime", ErrUnsupportedPrimeFactor, p)
		}
		prime := uint64(p)
		for numer%prime == 0 {
			numer /= prime
			monzo[i]++
		}
		for denom%prime == 0 {
			denom /= prime
			monzo[i]--
		}
	}
	if numer != 1 || denom != 1 {
		return nil, fmt.Errorf("%w: %s leaves %d/%d over %s", ErrUnsupportedPrimeFactor, r, numer, denom, FormatPrimes(primes))
	}
	return monzo, nil
}

// Ratio reconstructs the ratio the monzo represents over primes.
func (m Monzo) Ratio(primes []int) (Ratio, error) {
	if len(m) != len(primes) {
		return Ratio{}, fmt.Errorf("%w: monzo has %d entries, prime list %d", ErrLengthMismatch, len(m), len(primes))
	}
	numer, denom := uint64(1), uint64(1)
	for i, exp := range m {
		target := &numer
		if exp < 0 {
			target = &denom
			exp = -exp
		}
		for j := 0; j < exp; j++ {
			hi, lo := bits.Mul64(*target, uint64(primes[i]))
			if hi != 0 {
				return Ratio{}, fmt.Errorf("%w: %s", ErrOverflow, m)
			}
			*target = lo
		}
	}
	return reduced(numer, denom), nil
}

// Add stacks two intervals.
func (m Monzo) Add(o Monzo) (Monzo, error) {
	if len(m) != len(o) {
		return nil, ErrLengthMismatch
	}
	out := make(Monzo, len(m))
	for i := range m {
		out[i] = m[i] + o[i]
	}
	return out, nil
}

// Sub removes o from m.
func (m Monzo) Sub(o Monzo) (Monzo, error) {
	return m.Add(o.Neg())
}

// Neg inverts the interval.
func (m Monzo) Neg() Monzo {
	return m.Scale(-1)
}

// Scale repeats the interval n times.
func (m Monzo) Scale(n int) Monzo {
	out := make(Monzo, len(m))
	for i, v := range m {
		out[i] = v * n
	}
	return out
}

// Dot returns the integer dot product with a val of the same length.
func (m Monzo) Dot(val []int) (int, error) {
	if len(m) != len(val) {
		return 0, fmt.Errorf("%w: monzo has %d entries, val %d", ErrLengthMismatch, len(m), len(val))
	}
	sum := 0
	for i := range m {
		sum += m[i] * val[i]
	}
	return sum, nil
}

// Project re-expresses m (over from) as a monzo over to.
// Non-zero exponents of primes missing from to yield ErrUnsupportedPrimeFactor.
func (m Monzo) Project(from, to []int) (Monzo, error) {
	if len(m) != len(from) {
		return nil, fmt.Errorf("%w: monzo has %d entries, prime list %d", ErrLengthMismatch, len(m), len(from))
	}
	index := make(map[int]int, len(to))
	for i, p := range to {
		index[p] = i
	}
	out := make(Monzo, len(to))
	for i, exp := range m {
		if exp == 0 {
			continue
		}
		j, ok := index[from[i]]
		if !ok {
			return nil, fmt.Errorf("%w: %d not in %s", ErrUnsupportedPrimeFactor, from[i], FormatPrimes(to))
		}
		out[j] += exp
	}
	return out, nil
}

// ParseMonzo reads "[-4 4 -1>" or "-4, 4, -1" notation.
func ParseMonzo(s string) (Monzo, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, ">")
	s = strings.TrimSuffix(s, "]")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("monzo %q is empty", s)
	}
	out := make(Monzo, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("monzo entry %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}

func (m Monzo) String() string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, " ") + ">"
}

// cmp128 compares a*b with c*d without overflow.
func cmp128(a, b, c, d uint64) int {
	hi1, lo1 := bits.Mul64(a, b)
	hi2, lo2 := bits.Mul64(c, d)
	switch {
	case hi1 < hi2:
		return -1
	case hi1 > hi2:
		return 1
	case lo1 < lo2:
		return -1
	case lo1 > lo2:
		return 1
	default:
		return 0
	}
}
