// Package comma loads named comma catalogs and finds the commas a temperament tempers out.
package comma

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/edotune/internal/ratio"
)

// Record is one catalog entry as it appears in TOML, YAML or the store.
type Record struct {
	Ratio string `toml:"ratio" yaml:"ratio"`
	Name  string `toml:"name" yaml:"name"`
	Limit int    `toml:"limit,omitempty" yaml:"limit,omitempty"`
	Monzo []int  `toml:"monzo,omitempty" yaml:"monzo,omitempty"`
}

// Comma is a validated, named just interval.
type Comma struct {
	Ratio ratio.Ratio
	// Monzo is expressed over the primes up to Limit.
	Monzo ratio.Monzo
	Name  string
	Limit int
}

// Primes returns the prime list the comma's monzo is expressed over.
func (c Comma) Primes() []int {
	return ratio.PrimesUpTo(c.Limit)
}

// Record converts the comma back into its catalog form.
func (c Comma) Record() Record {
	return Record{
		Ratio: c.Ratio.String(),
		Name:  c.Name,
		Limit: c.Limit,
		Monzo: append([]int(nil), c.Monzo...),
	}
}

// LimitLabel renders the limit as "5-limit".
func (c Comma) LimitLabel() string {
	return fmt.Sprintf("%d-limit", c.Limit)
}

// FromRecord validates a record and builds the comma.
func FromRecord(rec Record) (Comma, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return Comma{}, fmt.Errorf("%w: %q has no name", ErrInvalidRecord, rec.Ratio)
	}
	r, err := ratio.Parse(rec.Ratio)
	if err != nil {
		return Comma{}, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, name, err)
	}
	largest := ratio.LargestPrimeFactor(r)
	if largest < 2 {
		return Comma{}, fmt.Errorf("%w: %s: unison is not a comma", ErrInvalidRecord, name)
	}
	limit := rec.Limit
	if limit == 0 {
		limit = int(largest)
	}
	if !ratio.IsPrime(limit) {
		return Comma{}, fmt.Errorf("%w: %s: limit %d is not a prime", ErrInvalidRecord, name, limit)
	}
	if uint64(limit) < largest {
		return Comma{}, fmt.Errorf("%w: %s: %s needs limit %d, got %d", ErrInvalidRecord, name, r, largest, limit)
	}
	primes := ratio.PrimesUpTo(limit)
	monzo, err := ratio.Factorize(r, primes)
	if err != nil {
		return Comma{}, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, name, err)
	}
	if len(rec.Monzo) > 0 {
		explicit := fitMonzo(rec.Monzo, len(primes))
		if len(explicit) != len(primes) || !equalMonzo(explicit, monzo) {
			return Comma{}, fmt.Errorf("%w: %s: monzo %s does not match %s", ErrInvalidRecord, name, ratio.Monzo(rec.Monzo), r)
		}
	}
	return Comma{Ratio: r, Monzo: monzo, Name: name, Limit: limit}, nil
}

// fitMonzo resizes a monzo to n entries. Trailing zeros may be omitted or
// added for primes the limit does not need.
func fitMonzo(m []int, n int) ratio.Monzo {
	end := len(m)
	for end > n && m[end-1] == 0 {
		end--
	}
	if end > n {
		return ratio.Monzo(m[:end])
	}
	out := make(ratio.Monzo, n)
	copy(out, m[:end])
	return out
}

func equalMonzo(a, b ratio.Monzo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
