// File: services/schedule/slots.go
package schedule

import (
	"sort"
	"time"
)

// DayGroup is one calendar day of bookable slot times, ordered ascending.
type DayGroup struct {
	Day   string      `json:"day"`
	Slots []time.Time `json:"slots"`
}

// FormatDay renders the calendar-day label used to group slots.
func FormatDay(t time.Time) string {
	return t.UTC().Format("Mon, Jan 2")
}

// PruneExpired returns the entries of slots strictly after now, preserving
// relative order. Entries at exactly now count as expired.
func PruneExpired(slots []time.Time, now time.Time) []time.Time {
	kept := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		if s.After(now) {
			kept = append(kept, s)
		}
	}
	return kept
}

// GroupByDay removes taken and past timestamps, dedupes, sorts ascending and
// partitions the remainder into per-day groups ordered by day. The union of
// all grouped entries equals slots minus taken minus past.
func GroupByDay(slots, taken []time.Time, now time.Time) []DayGroup {
	takenSet := make(map[int64]struct{}, len(taken))
	for _, t := range taken {
		takenSet[t.Unix()] = struct{}{}
	}

	seen := make(map[int64]struct{}, len(slots))
	var bookable []time.Time
	for _, s := range slots {
		if !s.After(now) {
			continue
		}
		key := s.Unix()
		if _, dup := seen[key]; dup {
			continue
		}
		if _, isTaken := takenSet[key]; isTaken {
			continue
		}
		seen[key] = struct{}{}
		bookable = append(bookable, s.UTC())
	}

	sort.Slice(bookable, func(i, j int) bool { return bookable[i].Before(bookable[j]) })

	var groups []DayGroup
	for _, s := range bookable {
		day := FormatDay(s)
		if n := len(groups); n > 0 && groups[n-1].Day == day {
			groups[n-1].Slots = append(groups[n-1].Slots, s)
			continue
		}
		groups = append(groups, DayGroup{Day: day, Slots: []time.Time{s}})
	}
	return groups
}

// IsJoinable reports whether now falls within the closed interval
// [selectedTime - lead, selectedTime + trail].
func IsJoinable(selectedTime, now time.Time, lead, trail time.Duration) bool {
	open := selectedTime.Add(-lead)
	close := selectedTime.Add(trail)
	return !now.Before(open) && !now.After(close)
}
