package scan

import "sort"

// Top returns the n results with the lowest badness. Ties go to the smaller
// EDO.
func Top(results []Result, n int) []Result {
	if n <= 0 || len(results) == 0 {
		return nil
	}
	items := append([]Result(nil), results...)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Badness == items[j].Badness {
			return items[i].Steps < items[j].Steps
		}
		return items[i].Badness < items[j].Badness
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
