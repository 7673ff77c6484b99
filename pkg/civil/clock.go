package civil

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay bounds every Clock value: a wall-clock time is in [0, MinutesPerDay).
const MinutesPerDay = 24 * 60

// FormatError reports malformed wall-clock or calendar-date input.
type FormatError struct {
	Kind   string
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Input, e.Reason)
}

// Clock is a wall-clock time of day without a zone, stored as minutes since midnight.
type Clock int

// ParseClock accepts "H:MM" or "HH:MM" in 24-hour notation.
func ParseClock(s string) (Clock, error) {
	m, err := ToMinutes(s)
	if err != nil {
		return 0, err
	}
	return Clock(m), nil
}

// MustParseClock is ParseClock for constants and tests.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ToMinutes parses a wall-clock string and returns minutes since midnight.
func ToMinutes(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, &FormatError{Kind: "time", Input: s, Reason: "expected HH:MM"}
	}
	if len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !digits(hh) || !digits(mm) {
		return 0, &FormatError{Kind: "time", Input: s, Reason: "expected HH:MM"}
	}

	hour, _ := strconv.Atoi(hh)
	minute, _ := strconv.Atoi(mm)
	if hour > 23 {
		return 0, &FormatError{Kind: "time", Input: s, Reason: "hour must be between 00 and 23"}
	}
	if minute > 59 {
		return 0, &FormatError{Kind: "time", Input: s, Reason: "minute must be between 00 and 59"}
	}
	return hour*60 + minute, nil
}

// FromMinutes formats minutes since midnight as zero-padded HH:MM.
// Values outside [0, MinutesPerDay) cross midnight and are rejected.
func FromMinutes(m int) (string, error) {
	if m < 0 || m >= MinutesPerDay {
		return "", &FormatError{Kind: "time", Input: strconv.Itoa(m), Reason: "minutes must be in [0, 1440)"}
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60), nil
}

func (c Clock) Minutes() int {
	return int(c)
}

// Add returns c shifted by d minutes. The result may leave the valid range;
// callers check Valid before formatting.
func (c Clock) Add(d int) Clock {
	return c + Clock(d)
}

func (c Clock) Before(o Clock) bool {
	return c < o
}

func (c Clock) After(o Clock) bool {
	return c > o
}

func (c Clock) Valid() bool {
	return c >= 0 && c < MinutesPerDay
}

func (c Clock) String() string {
	s, err := FromMinutes(int(c))
	if err != nil {
		return fmt.Sprintf("invalid(%d)", int(c))
	}
	return s
}

func (c Clock) MarshalText() ([]byte, error) {
	s, err := FromMinutes(int(c))
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
