package ratio

import (
	"fmt"
	"strconv"
	"strings"
)

// PrimesUpTo returns all primes p <= limit in ascending order.
func PrimesUpTo(limit int) []int {
	if limit < 2 {
		return nil
	}
	composite := make([]bool, limit+1)
	var primes []int
	for n := 2; n <= limit; n++ {
		if composite[n] {
			continue
		}
		primes = append(primes, n)
		for k := n * n; k <= limit; k += n {
			composite[k] = true
		}
	}
	return primes
}

// IsPrime reports whether n is prime.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// LargestPrimeFactor returns the prime limit of r (1 for the unison).
func LargestPrimeFactor(r Ratio) uint64 {
	largest := uint64(1)
	for _, v := range []uint64{r.numer, r.denom} {
		for d := uint64(2); d <= v/d; d++ {
			for v%d == 0 {
				v /= d
				if d > largest {
					largest = d
				}
			}
		}
		if v > largest {
			largest = v
		}
	}
	return largest
}

// ParsePrimes reads subgroup notation such as "2.3.5" or "2,5,11".
// Entries must be distinct primes.
func ParsePrimes(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("prime list %q is empty", s)
	}
	seen := make(map[int]struct{}, len(fields))
	primes := make([]int, 0, len(fields))
	for _, f := range fields {
		p, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("prime %q: %w", f, err)
		}
		if !IsPrime(p) {
			return nil, fmt.Errorf("%d is not a prime", p)
		}
		if _, ok := seen[p]; ok {
			return nil, fmt.Errorf("prime %d listed twice", p)
		}
		seen[p] = struct{}{}
		primes = append(primes, p)
	}
	return primes, nil
}

// FormatPrimes renders a prime list in subgroup notation ("2.3.5").
func FormatPrimes(primes []int) string {
	parts := make([]string, len(primes))
	for i, p := range primes {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ".")
}
