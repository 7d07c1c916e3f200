// Package metrics preprocesses raw health-source readings into the
// clean daily records the scoring and nutrition calculators consume.
package metrics

import (
	"time"

	"vitalcoach/internal/store"
)

// Day strips the time-of-day from a timestamp, keeping calendar-day
// granularity in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Dedupe collapses multiple readings per (user, calendar day) down to
// one, keeping the reading with the highest completeness score. Ties
// keep the first-seen reading, so deduplicating an already-deduplicated
// list returns it unchanged.
func Dedupe(readings []store.BodyMetrics) []store.BodyMetrics {
	type key struct {
		userID string
		day    time.Time
	}

	best := make(map[key]int) // key -> index into result
	var result []store.BodyMetrics

	for _, r := range readings {
		r.Day = Day(r.Day)
		k := key{userID: r.UserID, day: r.Day}

		idx, seen := best[k]
		if !seen {
			best[k] = len(result)
			result = append(result, r)
			continue
		}
		if r.Completeness() > result[idx].Completeness() {
			result[idx] = r
		}
	}

	return result
}
