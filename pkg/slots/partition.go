// Package slots splits an availability window into bookable intervals.
package slots

import "slotlink/pkg/civil"

// Slot is a half-open interval [Start, End) on a single day.
type Slot struct {
	Start civil.Clock `json:"startTime"`
	End   civil.Clock `json:"endTime"`
}

// Partition returns back-to-back slots of durationMinutes starting at start.
// A trailing interval shorter than durationMinutes is dropped, so every slot
// ends at or before end. A non-positive duration or an empty window yields nil.
func Partition(start, end civil.Clock, durationMinutes int) []Slot {
	if durationMinutes <= 0 || !start.Before(end) {
		return nil
	}

	out := make([]Slot, 0, (end.Minutes()-start.Minutes())/durationMinutes)
	for cur := start; cur.Add(durationMinutes) <= end; cur = cur.Add(durationMinutes) {
		out = append(out, Slot{Start: cur, End: cur.Add(durationMinutes)})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Exclude drops every slot whose start matches one of taken.
func Exclude(all []Slot, taken []civil.Clock) []Slot {
	if len(taken) == 0 {
		return all
	}
	booked := make(map[civil.Clock]struct{}, len(taken))
	for _, t := range taken {
		booked[t] = struct{}{}
	}

	free := make([]Slot, 0, len(all))
	for _, s := range all {
		if _, ok := booked[s.Start]; !ok {
			free = append(free, s)
		}
	}
	return free
}

// Contains reports whether [start, end) lies inside [windowStart, windowEnd].
func Contains(windowStart, windowEnd, start, end civil.Clock) bool {
	return !start.Before(windowStart) && !end.After(windowEnd)
}
