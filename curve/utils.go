package curve

import (
	"sort"
	"time"
)

// findBracketOrBoundary finds two adjacent dates that bracket the target.
// If the target is outside the range, returns the nearest boundary pair.
func findBracketOrBoundary(dates []time.Time, target time.Time) (d1, d2 time.Time) {
	if len(dates) < 2 {
		panic("findBracketOrBoundary: need at least 2 dates")
	}

	// Binary search for first date >= target
	idx := sort.Search(len(dates), func(i int) bool {
		return !dates[i].Before(target)
	})

	if idx <= 0 {
		return dates[0], dates[1]
	}
	if idx >= len(dates) {
		return dates[len(dates)-2], dates[len(dates)-1]
	}
	return dates[idx-1], dates[idx]
}
