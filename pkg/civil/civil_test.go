package civil

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      int
		wantError bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:30", want: 570},
		{name: "single digit hour", input: "9:05", want: 545},
		{name: "last minute of day", input: "23:59", want: 1439},
		{name: "surrounding whitespace", input: " 10:00 ", want: 600},
		{name: "hour out of range", input: "24:00", wantError: true},
		{name: "minute out of range", input: "10:60", wantError: true},
		{name: "single digit minute", input: "10:5", wantError: true},
		{name: "non numeric", input: "ab:cd", wantError: true},
		{name: "signed", input: "-1:00", wantError: true},
		{name: "missing colon", input: "0930", wantError: true},
		{name: "dash separator", input: "09-30", wantError: true},
		{name: "with seconds", input: "09:30:00", wantError: true},
		{name: "empty", input: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinutes(tt.input)
			if tt.wantError {
				var fe *FormatError
				if !errors.As(err, &fe) {
					t.Fatalf("expected FormatError for %q, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromMinutes(t *testing.T) {
	tests := []struct {
		input     int
		want      string
		wantError bool
	}{
		{input: 0, want: "00:00"},
		{input: 545, want: "09:05"},
		{input: 1439, want: "23:59"},
		{input: 1440, wantError: true},
		{input: -1, wantError: true},
	}

	for _, tt := range tests {
		got, err := FromMinutes(tt.input)
		if tt.wantError {
			if err == nil {
				t.Errorf("FromMinutes(%d): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("FromMinutes(%d): unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("FromMinutes(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToMinutesFromMinutesRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		s, err := FromMinutes(m)
		if err != nil {
			t.Fatalf("FromMinutes(%d): %v", m, err)
		}
		back, err := ToMinutes(s)
		if err != nil {
			t.Fatalf("ToMinutes(%q): %v", s, err)
		}
		if back != m {
			t.Fatalf("round trip of %d produced %d", m, back)
		}
	}
}

func TestClockStringOrderMatchesNumericOrder(t *testing.T) {
	a := MustParseClock("9:00")
	b := MustParseClock("10:00")
	if !a.Before(b) {
		t.Fatal("09:00 should be before 10:00")
	}
	if !(a.String() < b.String()) {
		t.Errorf("formatted %q should sort before %q", a, b)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input     string
		want      Date
		wantError bool
	}{
		{input: "2026-10-14", want: Date{Year: 2026, Month: time.October, Day: 14}},
		{input: "2024-02-29", want: Date{Year: 2024, Month: time.February, Day: 29}},
		{input: "2025-02-29", wantError: true},
		{input: "2026-1-14", wantError: true},
		{input: "14/10/2026", wantError: true},
		{input: "2026-10-14T00:00:00Z", wantError: true},
		{input: "", wantError: true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if tt.wantError {
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("ParseDate(%q): expected FormatError, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDate(%q): unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
		if got.String() != tt.input {
			t.Errorf("String() = %q, want %q", got.String(), tt.input)
		}
	}
}

func TestDateCompare(t *testing.T) {
	a := MustParseDate("2026-10-14")
	b := MustParseDate("2026-11-01")
	if !a.Before(b) || !b.After(a) {
		t.Error("expected 2026-10-14 < 2026-11-01")
	}
	if a.Compare(a) != 0 {
		t.Error("a date must compare equal to itself")
	}
	if !(a.String() < b.String()) {
		t.Error("string order must match calendar order")
	}
}

func TestTodayUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2026, 10, 15, 5, 0, 0, 0, loc) // 2026-10-14 19:00 UTC
	if got := Today(now).String(); got != "2026-10-14" {
		t.Errorf("Today() = %s, want 2026-10-14", got)
	}
}

func TestJSONBoundaryUsesStrings(t *testing.T) {
	type payload struct {
		Date  Date  `json:"date"`
		Start Clock `json:"startTime"`
	}

	data, err := json.Marshal(payload{Date: MustParseDate("2026-10-14"), Start: MustParseClock("9:00")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"date":"2026-10-14","startTime":"09:00"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var decoded payload
	if err := json.Unmarshal([]byte(`{"date":"2026-10-14","startTime":"25:00"}`), &decoded); err == nil {
		t.Error("expected an error for an out of range time")
	}
}
