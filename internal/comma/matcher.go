package comma

import (
	"sort"

	"github.com/verte-zerg/edotune/internal/temperament"
)

// LimitGroup collects tempered commas sharing a prime limit.
type LimitGroup struct {
	Limit  int
	Commas []Comma
}

// IsTemperedOut reports whether t maps c to zero steps. The test is exact
// integer arithmetic. Commas outside the subgroup return
// ratio.ErrUnsupportedPrimeFactor.
func IsTemperedOut(t temperament.Temperament, c Comma) (bool, error) {
	monzo, err := c.Monzo.Project(c.Primes(), t.Primes())
	if err != nil {
		return false, err
	}
	steps, err := t.StepsOf(monzo)
	if err != nil {
		return false, err
	}
	return steps == 0, nil
}

// TemperedOut returns the catalog commas t tempers out, smallest first.
// Only commas expressible within the subgroup are considered.
func TemperedOut(t temperament.Temperament, cat *Catalog) []Comma {
	var out []Comma
	for _, c := range Expressible(cat, t.Primes()) {
		if ok, err := IsTemperedOut(t, c); err == nil && ok {
			out = append(out, c)
		}
	}
	return out
}

// Expressible returns the catalog commas that factor within primes.
func Expressible(cat *Catalog, primes []int) []Comma {
	var out []Comma
	for _, c := range cat.commas {
		if _, err := c.Monzo.Project(c.Primes(), primes); err != nil {
			continue
		}
		out = append(out, c)
	}
	sortCommas(out)
	return out
}

// GroupByLimit regroups commas by ascending limit, keeping their order within a group.
func GroupByLimit(commas []Comma) []LimitGroup {
	byLimit := map[int][]Comma{}
	for _, c := range commas {
		byLimit[c.Limit] = append(byLimit[c.Limit], c)
	}
	limits := make([]int, 0, len(byLimit))
	for limit := range byLimit {
		limits = append(limits, limit)
	}
	sort.Ints(limits)
	groups := make([]LimitGroup, 0, len(limits))
	for _, limit := range limits {
		groups = append(groups, LimitGroup{Limit: limit, Commas: byLimit[limit]})
	}
	return groups
}

func sortCommas(commas []Comma) {
	sort.SliceStable(commas, func(i, j int) bool {
		a, b := commas[i].Ratio, commas[j].Ratio
		if a != b {
			return a.Less(b)
		}
		return commas[i].Name < commas[j].Name
	})
}
