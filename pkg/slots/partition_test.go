package slots

import (
	"encoding/json"
	"reflect"
	"testing"

	"slotlink/pkg/civil"
)

func clock(s string) civil.Clock {
	return civil.MustParseClock(s)
}

func starts(ss []Slot) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Start.String()
	}
	return out
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		duration   int
		wantStarts []string
	}{
		{
			name:       "even split",
			start:      "09:00",
			end:        "11:00",
			duration:   30,
			wantStarts: []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:       "trailing partial slot dropped",
			start:      "09:00",
			end:        "10:45",
			duration:   30,
			wantStarts: []string{"09:00", "09:30", "10:00"},
		},
		{
			name:       "window shorter than one slot",
			start:      "09:00",
			end:        "09:20",
			duration:   30,
			wantStarts: nil,
		},
		{
			name:       "window exactly one slot",
			start:      "09:00",
			end:        "09:30",
			duration:   30,
			wantStarts: []string{"09:00"},
		},
		{name: "zero duration", start: "09:00", end: "17:00", duration: 0},
		{name: "negative duration", start: "09:00", end: "17:00", duration: -15},
		{name: "empty window", start: "10:00", end: "10:00", duration: 15},
		{name: "inverted window", start: "11:00", end: "10:00", duration: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Partition(clock(tt.start), clock(tt.end), tt.duration)
			if len(tt.wantStarts) == 0 {
				if got != nil {
					t.Fatalf("expected nil, got %v", starts(got))
				}
				return
			}
			if !reflect.DeepEqual(starts(got), tt.wantStarts) {
				t.Errorf("starts = %v, want %v", starts(got), tt.wantStarts)
			}
		})
	}
}

func TestPartitionShape(t *testing.T) {
	windows := []struct {
		start, end string
		duration   int
	}{
		{"00:00", "23:59", 7},
		{"08:15", "17:40", 25},
		{"9:00", "12:00", 60},
		{"13:00", "13:59", 1},
	}

	for _, w := range windows {
		start, end := clock(w.start), clock(w.end)
		got := Partition(start, end, w.duration)

		if len(got) == 0 {
			t.Fatalf("%v: expected slots", w)
		}
		if got[0].Start != start {
			t.Errorf("%v: first slot starts at %s", w, got[0].Start)
		}
		for i, s := range got {
			if s.End.Minutes()-s.Start.Minutes() != w.duration {
				t.Errorf("%v: slot %d has length %d", w, i, s.End.Minutes()-s.Start.Minutes())
			}
			if s.End.After(end) {
				t.Errorf("%v: slot %d ends after the window", w, i)
			}
			if i > 0 && got[i-1].End != s.Start {
				t.Errorf("%v: slots %d and %d are not contiguous", w, i-1, i)
			}
		}
		// No room for one more slot after the last one.
		if last := got[len(got)-1]; !last.End.Add(w.duration).After(end) {
			t.Errorf("%v: partition stopped early at %s", w, last.End)
		}
		if again := Partition(start, end, w.duration); !reflect.DeepEqual(got, again) {
			t.Errorf("%v: partition is not deterministic", w)
		}
	}
}

func TestExclude(t *testing.T) {
	all := Partition(clock("09:00"), clock("11:00"), 30)

	free := Exclude(all, []civil.Clock{clock("09:30")})
	if want := []string{"09:00", "10:00", "10:30"}; !reflect.DeepEqual(starts(free), want) {
		t.Errorf("free = %v, want %v", starts(free), want)
	}

	// An off-grid booking does not match any slot start.
	free = Exclude(all, []civil.Clock{clock("09:15")})
	if len(free) != len(all) {
		t.Errorf("off-grid start should exclude nothing, got %v", starts(free))
	}

	if got := Exclude(all, nil); !reflect.DeepEqual(got, all) {
		t.Error("no bookings should leave the partition untouched")
	}
}

func TestContains(t *testing.T) {
	ws, we := clock("09:00"), clock("17:00")
	tests := []struct {
		start, end string
		want       bool
	}{
		{"09:00", "09:30", true},
		{"16:30", "17:00", true},
		{"08:30", "09:00", false},
		{"16:45", "17:15", false},
		{"18:00", "18:30", false},
	}
	for _, tt := range tests {
		if got := Contains(ws, we, clock(tt.start), clock(tt.end)); got != tt.want {
			t.Errorf("Contains(%s-%s) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestSlotJSON(t *testing.T) {
	s := Slot{Start: clock("9:00"), End: clock("9:30")}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"startTime":"09:00","endTime":"09:30"}` {
		t.Errorf("json = %s", data)
	}
}
